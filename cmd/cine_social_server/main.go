package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cine_social_server/internal/config"
	"cine_social_server/internal/dao/memory"
	dao "cine_social_server/internal/dao/mysql"
	"cine_social_server/internal/dao/mysql/repository"
	myredis "cine_social_server/internal/dao/redis"
	"cine_social_server/internal/handler"
	"cine_social_server/internal/https_server"
	"cine_social_server/internal/infrastructure/catalog"
	"cine_social_server/internal/infrastructure/logger"
	"cine_social_server/internal/infrastructure/mq"
	"cine_social_server/internal/service"
	"cine_social_server/pkg/util/jwt"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, conf.MainConfig.Mode); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer zap.L().Sync()
	zap.L().Info("日志初始化成功")

	// 3. 初始化 JWT（只校验，不签发）
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry)

	// 4. 初始化存储
	repos, err := initStorage(conf)
	if err != nil {
		zap.L().Fatal("存储初始化失败", zap.String("driver", conf.StorageConfig.Driver), zap.Error(err))
	}
	zap.L().Info("存储初始化成功", zap.String("driver", conf.StorageConfig.Driver))

	// 5. 初始化 Redis，不可用时以无缓存模式运行
	var cache myredis.AsyncCacheService
	redisCache, err := myredis.Init(&conf.RedisConfig)
	if err != nil {
		zap.L().Warn("Redis 不可用，推荐结果与影片信息不做缓存", zap.Error(err))
	} else {
		cache = redisCache
		defer redisCache.Close()
		zap.L().Info("Redis 初始化成功")
	}

	// 6. 外部依赖：影片目录与通知投递
	metadata := catalog.NewService(&conf.CatalogConfig, cache)
	if metadata == nil {
		zap.L().Info("未配置 catalog apiKey，推荐结果不附带影片信息")
	}
	sink := mq.NewSink(&conf.KafkaConfig)
	defer sink.Close()

	// 7. Service / Handler / 路由
	svc := service.NewServices(service.Deps{
		Repos:     repos,
		Cache:     cache,
		Catalog:   metadata,
		Recommend: conf.RecommendConfig,
	})
	engine := https_server.Init(handler.NewHandlers(svc, sink), &conf.MainConfig)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port),
		Handler: engine,
	}
	go func() {
		zap.L().Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()

	// 设置信号监听
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("关闭服务器...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Error("server shutdown", zap.Error(err))
	}
	zap.L().Info("服务器已关闭")
}

// initStorage 按 storageConfig.driver 选择存储实现
func initStorage(conf *config.Config) (*repository.Repositories, error) {
	switch conf.StorageConfig.Driver {
	case "memory":
		repos := memory.NewRepositories()
		if err := memory.Seed(context.Background(), repos, conf.StorageConfig.SeedUsers); err != nil {
			return nil, err
		}
		zap.L().Info("memory storage seeded", zap.Int("users", len(conf.StorageConfig.SeedUsers)))
		return repos, nil
	case "mysql":
		return dao.Init(&conf.MysqlConfig)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", conf.StorageConfig.Driver)
	}
}
