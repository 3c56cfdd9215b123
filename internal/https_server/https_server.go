// Package https_server 提供 HTTP/HTTPS 服务器的初始化和配置
// 负责创建 Gin 引擎实例并配置中间件和路由
package https_server

import (
	"cine_social_server/internal/config"
	"cine_social_server/internal/handler"
	"cine_social_server/internal/infrastructure/logger"
	"cine_social_server/internal/infrastructure/middleware"
	"cine_social_server/internal/router"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Init 创建 Gin 引擎并挂载中间件与业务路由
// 配置顺序：
//  1. 空白引擎（不使用 gin.Default() 以便完全控制中间件）
//  2. Zap 日志和 panic 恢复
//  3. CORS
//  4. 可选的 HTTPS 重定向
//  5. validator 中文翻译和业务路由
func Init(handlers *handler.Handlers, conf *config.MainConfig) *gin.Engine {
	if conf.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	engine.Use(logger.GinLogger())
	engine.Use(logger.GinRecovery(true))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"} // 生产环境应指定具体域名
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	// 由 Nginx 终止 TLS 时保持 forceTLS=false
	if conf.ForceTLS {
		engine.Use(middleware.TlsHandler(conf.Host, conf.Port))
	}

	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Warn("init validator translator failed", zap.Error(err))
	}

	router.NewRouter(handlers).RegisterRoutes(engine)
	return engine
}
