package mq

import (
	"context"

	"go.uber.org/zap"
)

// logSink messageMode = "none" 时使用，只把通知写进日志
type logSink struct{}

func NewLogSink() NotificationSink {
	return logSink{}
}

func (logSink) Notify(_ context.Context, n Notification) error {
	zap.L().Info("notification",
		zap.String("event_id", n.EventId),
		zap.String("recipient_id", n.RecipientId),
		zap.String("type", string(n.Type)),
		zap.Any("payload", n.Payload),
	)
	return nil
}

func (logSink) Close() error { return nil }
