package mq

import (
	"cine_social_server/internal/config"
)

// NewSink 按 kafkaConfig.messageMode 选择投递方式
func NewSink(conf *config.KafkaConfig) NotificationSink {
	if conf.MessageMode == "kafka" {
		return NewKafkaSink(conf)
	}
	return NewLogSink()
}
