package model

import (
	"github.com/haierkeys/smart-mark-service/pkg/timex"
)

// Setting 用户偏好设置表
type Setting struct {
	ID                int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UID               int64      `gorm:"column:uid;uniqueIndex" json:"uid"`
	AlarmSoundEnabled bool       `gorm:"column:alarm_sound_enabled" json:"alarmSoundEnabled"`
	DefaultFilterMode string     `gorm:"column:default_filter_mode" json:"defaultFilterMode"`
	Lang              string     `gorm:"column:lang" json:"lang"`
	CreatedAt         timex.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt         timex.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Setting) TableName() string {
	return "setting"
}
