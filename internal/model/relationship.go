package model

import (
	"time"
)

// RelationshipStatus 好友关系状态
type RelationshipStatus string

const (
	StatusPending  RelationshipStatus = "pending"
	StatusAccepted RelationshipStatus = "accepted"
	StatusRejected RelationshipStatus = "rejected"
	// StatusBlocked 只读：由其它系统写入，本服务只识别
	StatusBlocked RelationshipStatus = "blocked"
)

// Valid 判断是否为已知状态
func (s RelationshipStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusBlocked:
		return true
	}
	return false
}

// PendingDirection 待处理申请的方向
type PendingDirection string

const (
	PendingReceived PendingDirection = "received"
	PendingSent     PendingDirection = "sent"
)

// Relationship 两个用户之间的好友关系
// 同一对用户（不分方向）最多一条记录，由 pair_key 唯一索引保证
type Relationship struct {
	Id          uint               `gorm:"column:id;primaryKey;autoIncrement"`
	Uuid        string             `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:关系id"`
	RequesterId string             `gorm:"column:requester_id;index;type:char(20);not null;comment:发起人"`
	RecipientId string             `gorm:"column:recipient_id;index;type:char(20);not null;comment:接收人"`
	PairKey     string             `gorm:"column:pair_key;uniqueIndex:uidx_pair_key;type:varchar(41);not null;comment:无序用户对"`
	Status      RelationshipStatus `gorm:"column:status;index;type:varchar(16);not null;comment:pending/accepted/rejected/blocked"`
	CreatedAt   time.Time          `gorm:"column:created_at;index"`
	UpdatedAt   time.Time          `gorm:"column:updated_at"`
	AcceptedAt  *time.Time         `gorm:"column:accepted_at;comment:成为好友时间"`
}

func (Relationship) TableName() string {
	return "relationship"
}

// PairKey 返回两个用户 id 的规范化组合，与参数顺序无关
func PairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

// Involves 判断用户是否为关系的一方
func (r *Relationship) Involves(userId string) bool {
	return r.RequesterId == userId || r.RecipientId == userId
}

// Other 返回关系中另一方的 id
func (r *Relationship) Other(userId string) string {
	if r.RequesterId == userId {
		return r.RecipientId
	}
	return r.RequesterId
}
