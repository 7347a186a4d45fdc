package model

import (
	"github.com/haierkeys/smart-mark-service/pkg/timex"
)

// Alarm 闹钟表
// TriggeredDay 登记最近触发的自然日，实现每天至多触发一次
type Alarm struct {
	ID           string     `gorm:"column:id;primaryKey" json:"id"`
	UID          int64      `gorm:"column:uid;index" json:"uid"`
	Time         string     `gorm:"column:alarm_time" json:"time"`
	Message      string     `gorm:"column:message" json:"message"`
	Enabled      bool       `gorm:"column:enabled;index" json:"enabled"`
	TriggeredDay string     `gorm:"column:triggered_day" json:"triggeredDay"`
	CreatedAt    timex.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt    timex.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Alarm) TableName() string {
	return "alarm"
}
