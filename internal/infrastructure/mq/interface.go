// Package mq 投递好友相关的通知事件
// 投递是尽力而为的：失败只记日志，不影响已经完成的好友操作
package mq

import (
	"context"
	"encoding/json"
	"time"

	"cine_social_server/pkg/constants"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationType 通知类型
type NotificationType string

const (
	NotifyFriendRequest  NotificationType = "friend_request"
	NotifyFriendAccepted NotificationType = "friend_accepted"
)

// Notification 一条发给某个用户的通知
type Notification struct {
	EventId     string            `json:"event_id"`
	RecipientId string            `json:"recipient_id"`
	Type        NotificationType  `json:"type"`
	Payload     map[string]string `json:"payload"`
	CreatedAt   time.Time         `json:"created_at"`
}

// NewNotification 生成带事件 id 的通知
func NewNotification(recipientId string, typ NotificationType, payload map[string]string) Notification {
	return Notification{
		EventId:     uuid.NewString(),
		RecipientId: recipientId,
		Type:        typ,
		Payload:     payload,
		CreatedAt:   time.Now(),
	}
}

func (n Notification) encode() ([]byte, error) {
	return json.Marshal(n)
}

// NotificationSink 通知投递接口
type NotificationSink interface {
	Notify(ctx context.Context, n Notification) error
	Close() error
}

// NotifyAsync 在后台投递通知，调用方不等待结果
func NotifyAsync(sink NotificationSink, n Notification) {
	if sink == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), constants.NOTIFY_TIMEOUT_SECONDS*time.Second)
		defer cancel()
		if err := sink.Notify(ctx, n); err != nil {
			zap.L().Warn("notification dropped",
				zap.String("event_id", n.EventId),
				zap.String("recipient_id", n.RecipientId),
				zap.String("type", string(n.Type)),
				zap.Error(err),
			)
		}
	}()
}
