package model

import "time"

// WatchlistItem 用户片单中的一部影片
type WatchlistItem struct {
	Id      uint      `gorm:"column:id;primaryKey;autoIncrement"`
	UserId  string    `gorm:"column:user_id;uniqueIndex:uidx_user_item;type:char(20);not null"`
	ItemId  int64     `gorm:"column:item_id;uniqueIndex:uidx_user_item;not null;comment:影片id"`
	AddedAt time.Time `gorm:"column:added_at;index;not null"`
}

func (WatchlistItem) TableName() string {
	return "watchlist_item"
}
