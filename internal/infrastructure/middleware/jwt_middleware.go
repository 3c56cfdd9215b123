package middleware

import (
	"net/http"
	"strings"

	"cine_social_server/pkg/errorx"
	"cine_social_server/pkg/util/jwt"

	"github.com/gin-gonic/gin"
)

// ContextUserKey 鉴权通过后当前用户 UUID 在 gin.Context 中的 key
const ContextUserKey = "user_id"

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code": errorx.CodeUnauthorized,
		"msg":  msg,
	})
}

// JWTAuth 校验 Bearer Access Token，并把用户 UUID 写入上下文
// 好友与推荐接口的操作者身份只从这里获取，不信任请求体
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "请先登录")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "Token 格式错误，请使用 Bearer Token")
			return
		}

		claims, err := jwt.ParseToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "Token 已过期或无效，请重新登录")
			return
		}
		if claims.Subject != "access_token" || claims.UserID == "" {
			abortUnauthorized(c, "请使用 Access Token 访问此接口")
			return
		}

		c.Set(ContextUserKey, claims.UserID)
		c.Next()
	}
}
