package domain

import "time"

// Setting 用户偏好设置领域模型
type Setting struct {
	ID                int64
	UID               int64
	AlarmSoundEnabled bool
	DefaultFilterMode string
	Lang              string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DefaultSetting 返回新用户的默认偏好
func DefaultSetting(uid int64) *Setting {
	return &Setting{
		UID:               uid,
		AlarmSoundEnabled: true,
		DefaultFilterMode: string(FilterModeAll),
	}
}
