package model

import (
	"github.com/haierkeys/smart-mark-service/pkg/timex"
)

// Bookmark 书签表
type Bookmark struct {
	ID            string     `gorm:"column:id;primaryKey" json:"id"`
	UID           int64      `gorm:"column:uid;index" json:"uid"`
	URL           string     `gorm:"column:url" json:"url"`
	Title         string     `gorm:"column:title" json:"title"`
	Domain        string     `gorm:"column:domain;index" json:"domain"`
	Category      string     `gorm:"column:category" json:"category"`
	IsFuture      bool       `gorm:"column:is_future" json:"isFuture"`
	ScheduledDate timex.Time `gorm:"column:scheduled_date" json:"scheduledDate"`
	CreatedAt     timex.Time `gorm:"column:created_at;index" json:"createdAt"`
	UpdatedAt     timex.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Bookmark) TableName() string {
	return "bookmark"
}
