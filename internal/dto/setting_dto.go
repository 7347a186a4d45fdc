package dto

import "github.com/haierkeys/smart-mark-service/pkg/timex"

// SettingSaveRequest Request parameters for saving user preferences
// 保存用户偏好设置请求参数
type SettingSaveRequest struct {
	AlarmSoundEnabled *bool  `json:"alarmSoundEnabled" form:"alarmSoundEnabled"`
	DefaultFilterMode string `json:"defaultFilterMode" form:"defaultFilterMode"`
	Lang              string `json:"lang" form:"lang"`
}

// ---------------- DTO / Response ----------------

// SettingDTO User preference data transfer object
// SettingDTO 用户偏好设置数据传输对象
type SettingDTO struct {
	AlarmSoundEnabled bool       `json:"alarmSoundEnabled"`
	DefaultFilterMode string     `json:"defaultFilterMode"`
	Lang              string     `json:"lang"`
	UpdatedAt         timex.Time `json:"updatedAt"`
}
