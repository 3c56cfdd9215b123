package mq

import (
	"context"
	"time"

	"cine_social_server/internal/config"
	"cine_social_server/pkg/errorx"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// messageWriter kafka.Writer 中用到的部分
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaSink struct {
	writer messageWriter
	topic  string
}

// NewKafkaSink 通知写入 notifyTopic，按接收人做 key，保证同一用户的事件有序
func NewKafkaSink(conf *config.KafkaConfig) NotificationSink {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(conf.HostPort),
		Topic:                  conf.NotifyTopic,
		Balancer:               &kafka.Hash{},
		WriteTimeout:           conf.Timeout * time.Second,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	zap.L().Info("kafka notification sink ready",
		zap.String("host", conf.HostPort),
		zap.String("topic", conf.NotifyTopic),
	)
	return &kafkaSink{writer: writer, topic: conf.NotifyTopic}
}

func (k *kafkaSink) Notify(ctx context.Context, n Notification) error {
	value, err := n.encode()
	if err != nil {
		return errorx.Wrap(err, errorx.CodeServerBusy, "编码通知失败")
	}
	msg := kafka.Message{
		Key:   []byte(n.RecipientId),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(n.Type)},
		},
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return errorx.Wrapf(err, errorx.CodeUnavailable, "写入 kafka topic=%s", k.topic)
	}
	return nil
}

func (k *kafkaSink) Close() error {
	return k.writer.Close()
}
