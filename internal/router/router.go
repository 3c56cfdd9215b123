// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"cine_social_server/internal/handler"
	"cine_social_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// Router 持有 Handler 聚合，按模块注册路由
type Router struct {
	handlers *handler.Handlers
}

func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes 注册所有路由
// 在 https_server.Init() 中调用
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	// 健康检查，不需要认证
	r.GET("/ping", func(c *gin.Context) {
		handler.HandleSuccess(c, "pong")
	})

	authed := r.Group("/")
	authed.Use(middleware.JWTAuth())
	rt.RegisterFriendRoutes(authed)
	rt.RegisterRecommendRoutes(authed)
}
