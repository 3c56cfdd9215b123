// Package config 提供应用程序的配置加载和管理功能
// 使用 TOML 格式的配置文件，支持多路径查找
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml" // TOML 配置文件解析库
)

// MainConfig 主配置，包含应用基本信息
type MainConfig struct {
	AppName  string `toml:"appName"`  // 应用名称，用于日志标识等
	Host     string `toml:"host"`     // 服务器监听地址，如 "0.0.0.0"
	Port     int    `toml:"port"`     // 服务器监听端口，如 8000
	Mode     string `toml:"mode"`     // 运行模式：dev 或 release
	ForceTLS bool   `toml:"forceTLS"` // 是否将 HTTP 请求重定向到 HTTPS
}

// MysqlConfig MySQL 数据库连接配置
type MysqlConfig struct {
	Host         string `toml:"host"`         // MySQL 服务器地址
	Port         int    `toml:"port"`         // MySQL 端口，默认 3306
	User         string `toml:"user"`         // 数据库用户名
	Password     string `toml:"password"`     // 数据库密码
	DatabaseName string `toml:"databaseName"` // 数据库名称
}

// StorageConfig 存储后端选择
type StorageConfig struct {
	Driver    string     `toml:"driver"`    // "mysql" 或 "memory"（本地调试用）
	SeedUsers []SeedUser `toml:"seedUsers"` // memory 模式启动时写入的用户，mysql 模式忽略
}

// SeedUser 预置用户及其片单
type SeedUser struct {
	Uuid      string  `toml:"uuid"`
	Nickname  string  `toml:"nickname"`
	Avatar    string  `toml:"avatar"`
	Watchlist []int64 `toml:"watchlist"` // 影片 id，按加入顺序
}

// RedisConfig Redis 连接配置
type RedisConfig struct {
	Host     string `toml:"host"`     // Redis 服务器地址
	Port     int    `toml:"port"`     // Redis 端口，默认 6379
	Password string `toml:"password"` // Redis 密码，无密码留空
	Db       int    `toml:"db"`       // Redis 数据库编号，默认 0
}

// LogConfig 日志配置，使用 lumberjack 进行日志轮转
type LogConfig struct {
	LogPath    string `toml:"logPath"`    // 日志文件存储目录
	FileName   string `toml:"fileName"`   // 日志文件名
	MaxSize    int    `toml:"maxSize"`    // 单个日志文件最大大小（MB）
	MaxBackups int    `toml:"maxBackups"` // 保留旧日志文件的最大个数
	MaxAge     int    `toml:"maxAge"`     // 保留旧日志文件的最大天数
	Level      string `toml:"level"`      // 日志级别：debug, info, warn, error
}

// KafkaConfig Kafka 消息队列配置
type KafkaConfig struct {
	MessageMode string        `toml:"messageMode"` // 通知模式："none" 或 "kafka"
	HostPort    string        `toml:"hostPort"`    // Kafka 服务器地址，如 "localhost:9092"
	NotifyTopic string        `toml:"notifyTopic"` // 通知事件主题
	Timeout     time.Duration `toml:"timeout"`     // 写超时（秒）
}

// JWTConfig JWT 认证配置
type JWTConfig struct {
	Secret            string `toml:"secret"`            // JWT 签名密钥，建议 32 字符以上
	AccessTokenExpiry int    `toml:"accessTokenExpiry"` // Access Token 有效期（分钟）
}

// CatalogConfig 影片目录服务配置（TMDB 兼容接口）
type CatalogConfig struct {
	BaseURL         string `toml:"baseURL"`         // 接口地址，如 "https://api.themoviedb.org/3"
	APIKey          string `toml:"apiKey"`          // API Key，留空则不装饰影片信息
	TimeoutSeconds  int    `toml:"timeoutSeconds"`  // 单次请求超时（秒）
	CacheTTLMinutes int    `toml:"cacheTTLMinutes"` // 影片信息缓存时间（分钟）
}

// RecommendConfig 推荐引擎配置
type RecommendConfig struct {
	DefaultLimit          int `toml:"defaultLimit"`          // 默认返回条数
	MaxLimit              int `toml:"maxLimit"`              // 返回条数上限（不超过 50）
	MaxFanout             int `toml:"maxFanout"`             // 并发拉取好友片单的上限
	SnapshotTimeoutMillis int `toml:"snapshotTimeoutMillis"` // 单个片单拉取超时（毫秒）
	CacheTTLSeconds       int `toml:"cacheTTLSeconds"`       // 推荐结果缓存时间（秒），0 表示不缓存
}

// Config 应用程序总配置，聚合所有子配置
type Config struct {
	MainConfig      `toml:"mainConfig"`      // 主配置
	MysqlConfig     `toml:"mysqlConfig"`     // MySQL 配置
	StorageConfig   `toml:"storageConfig"`   // 存储配置
	RedisConfig     `toml:"redisConfig"`     // Redis 配置
	LogConfig       `toml:"logConfig"`       // 日志配置
	KafkaConfig     `toml:"kafkaConfig"`     // Kafka 配置
	JWTConfig       `toml:"jwtConfig"`       // JWT 配置
	CatalogConfig   `toml:"catalogConfig"`   // 影片目录配置
	RecommendConfig `toml:"recommendConfig"` // 推荐配置
}

// config 全局配置单例，延迟加载
var config *Config

// LoadConfig 从多个候选路径加载配置文件
// 按顺序尝试加载，找到第一个可用的配置文件即停止
func LoadConfig() error {
	// 候选配置文件路径（优先加载本地配置）
	paths := []string{
		"configs/config_local.toml",       // 本地开发配置（优先）
		"configs/config.toml",             // 默认配置
		"../../configs/config_local.toml", // 从子目录运行时的路径
		"../../configs/config.toml",       // 从子目录运行时的路径
	}

	for _, path := range paths {
		if _, err := toml.DecodeFile(path, config); err == nil {
			return nil
		}
	}

	return fmt.Errorf("could not find configuration file in any of the search paths")
}

// Decode 从 TOML 文本解析配置并补齐默认值
func Decode(data string) (*Config, error) {
	conf := new(Config)
	if _, err := toml.Decode(data, conf); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	conf.applyDefaults()
	return conf, nil
}

// GetConfig 获取全局配置实例（单例模式）
// 首次调用时会自动加载配置文件
func GetConfig() *Config {
	if config == nil {
		config = new(Config)
		_ = LoadConfig() // 忽略加载错误，使用默认值
		config.applyDefaults()
	}
	return config
}

// applyDefaults 为零值字段补齐默认值
func (c *Config) applyDefaults() {
	if c.MainConfig.Port == 0 {
		c.MainConfig.Port = 8000
	}
	if c.MainConfig.Mode == "" {
		c.MainConfig.Mode = "dev"
	}
	if c.StorageConfig.Driver == "" {
		c.StorageConfig.Driver = "mysql"
	}
	if c.KafkaConfig.MessageMode == "" {
		c.KafkaConfig.MessageMode = "none"
	}
	if c.KafkaConfig.Timeout == 0 {
		c.KafkaConfig.Timeout = 1
	}
	if c.JWTConfig.AccessTokenExpiry == 0 {
		c.JWTConfig.AccessTokenExpiry = 30
	}
	if c.CatalogConfig.TimeoutSeconds == 0 {
		c.CatalogConfig.TimeoutSeconds = 3
	}
	if c.CatalogConfig.CacheTTLMinutes == 0 {
		c.CatalogConfig.CacheTTLMinutes = 60
	}

	r := &c.RecommendConfig
	if r.MaxLimit <= 0 || r.MaxLimit > 50 {
		r.MaxLimit = 50
	}
	if r.DefaultLimit <= 0 {
		r.DefaultLimit = 20
	}
	if r.DefaultLimit > r.MaxLimit {
		r.DefaultLimit = r.MaxLimit
	}
	if r.MaxFanout <= 0 {
		r.MaxFanout = 200
	}
	if r.SnapshotTimeoutMillis <= 0 {
		r.SnapshotTimeoutMillis = 800
	}
}
