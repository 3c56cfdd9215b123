// Package handler 提供 HTTP 请求处理器
// 通过构造函数注入 Service 依赖
package handler

import (
	"cine_social_server/internal/infrastructure/mq"
	"cine_social_server/internal/service"
)

// Handlers 聚合所有 Handler 实例，Router 层通过此结构访问各个 Handler
type Handlers struct {
	Friendship *FriendshipHandler
	Recommend  *RecommendHandler
}

// NewHandlers 创建并注入所有 Handler 实例
// sink 可以为 nil，此时不投递通知
func NewHandlers(svc *service.Services, sink mq.NotificationSink) *Handlers {
	return &Handlers{
		Friendship: NewFriendshipHandler(svc.Friendship, sink),
		Recommend:  NewRecommendHandler(svc.Recommend),
	}
}
