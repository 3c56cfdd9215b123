// Package router 提供 HTTP 路由注册
// 本文件定义好友相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterFriendRoutes 注册好友相关路由（需要认证）
func (rt *Router) RegisterFriendRoutes(rg *gin.RouterGroup) {
	friendGroup := rg.Group("/friend")
	{
		// ===== 查询 =====
		friendGroup.GET("/list", rt.handlers.Friendship.ListFriends)            // 好友列表
		friendGroup.GET("/pending", rt.handlers.Friendship.ListPendingRequests) // 收到的和发出的申请

		// ===== 好友申请 =====
		friendGroup.POST("/request", rt.handlers.Friendship.SendRequest)  // 发送申请
		friendGroup.POST("/accept", rt.handlers.Friendship.AcceptRequest) // 同意申请
		friendGroup.POST("/reject", rt.handlers.Friendship.RejectRequest) // 拒绝申请

		// ===== 好友关系管理 =====
		friendGroup.POST("/remove", rt.handlers.Friendship.RemoveFriendship) // 删除好友/撤回申请
	}
}
