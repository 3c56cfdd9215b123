package redis

import (
	"context"
	"strconv"
	"time"

	"cine_social_server/internal/config"
	"cine_social_server/pkg/constants"

	"github.com/redis/go-redis/v9"
)

// Init 按配置建立 Redis 连接并启动缓存任务 Worker
// 连接不可用时返回错误，由调用方决定是否降级为无缓存运行
func Init(conf *config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         conf.Host + ":" + strconv.Itoa(conf.Port),
		Password:     conf.Password,
		DB:           conf.Db,
		PoolSize:     50,
		MinIdleConns: constants.CACHE_WORKER_NUM, // 与 Worker 数量匹配
	})

	ctx, cancel := context.WithTimeout(context.Background(), constants.REDIS_TIMEOUT*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return NewRedisCache(client, constants.CACHE_WORKER_NUM, constants.CACHE_TASK_BUF_SIZE), nil
}
