package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterRecommendRoutes 注册推荐路由（需要认证）
func (rt *Router) RegisterRecommendRoutes(rg *gin.RouterGroup) {
	rg.GET("/recommend", rt.handlers.Recommend.Recommend)
}
