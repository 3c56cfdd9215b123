// Package mysql 负责建立 MySQL 连接、迁移表结构，并组装基于 GORM 的 Repository
package mysql

import (
	"fmt"

	"cine_social_server/internal/config"
	"cine_social_server/internal/dao/mysql/repository"
	"cine_social_server/internal/model"

	mysqldriver "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN 按配置拼接连接串
// 格式：user:password@tcp(host:port)/database?params
func DSN(conf *config.MysqlConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		conf.User,
		conf.Password,
		conf.Host,
		conf.Port,
		conf.DatabaseName,
	)
}

// Open 建立连接并执行 AutoMigrate
// TranslateError 让唯一索引冲突以 gorm.ErrDuplicatedKey 返回，好友关系的用户对唯一性依赖于此
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysqldriver.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	// 不会删除已有字段或数据
	if err := db.AutoMigrate(
		&model.UserInfo{},
		&model.Relationship{},
		&model.WatchlistItem{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return db, nil
}

// Init 连接数据库并返回 Repository 集合
func Init(conf *config.MysqlConfig) (*repository.Repositories, error) {
	db, err := Open(DSN(conf))
	if err != nil {
		return nil, err
	}
	return repository.NewRepositories(db), nil
}
