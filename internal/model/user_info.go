// Package model 定义数据库实体模型
package model

import (
	"time"
)

// UserInfo 用户资料
// 账号与登录由认证服务负责，这里只保存好友与推荐需要的字段
// FriendsCount 由 accepted 关系重新计数得到，不做增减
type UserInfo struct {
	Id           uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Uuid         string    `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:用户唯一id"`
	Nickname     string    `gorm:"column:nickname;type:varchar(20);not null;comment:昵称"`
	Avatar       string    `gorm:"column:avatar;type:varchar(255);comment:头像"`
	FriendsCount int       `gorm:"column:friends_count;not null;default:0;comment:好友数"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (UserInfo) TableName() string {
	return "user_info"
}
