package model

import (
	"github.com/haierkeys/smart-mark-service/pkg/timex"
)

// Notification 通知表，只追加与标记已读
type Notification struct {
	ID        string     `gorm:"column:id;primaryKey" json:"id"`
	UID       int64      `gorm:"column:uid;index" json:"uid"`
	Type      string     `gorm:"column:type" json:"type"`
	Title     string     `gorm:"column:title" json:"title"`
	Message   string     `gorm:"column:message" json:"message"`
	Icon      string     `gorm:"column:icon" json:"icon"`
	Color     string     `gorm:"column:color" json:"color"`
	IsRead    bool       `gorm:"column:is_read;index" json:"isRead"`
	CreatedAt timex.Time `gorm:"column:created_at;index" json:"createdAt"`
}

func (Notification) TableName() string {
	return "notification"
}
