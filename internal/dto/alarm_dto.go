package dto

import "github.com/haierkeys/smart-mark-service/pkg/timex"

// AlarmCreateRequest Request parameters for creating an alarm
// 创建闹钟请求参数
type AlarmCreateRequest struct {
	Time    string `json:"time" form:"time"`       // HH:MM, 24-hour
	Message string `json:"message" form:"message"` // 提醒文案，为空时使用默认值
	Enabled *bool  `json:"enabled" form:"enabled"` // 缺省为启用
}

// AlarmUpdateRequest Request parameters for updating an alarm
// 更新闹钟请求参数
type AlarmUpdateRequest struct {
	ID      string `json:"id" form:"id" binding:"required"`
	Time    string `json:"time" form:"time"`
	Message string `json:"message" form:"message"`
	Enabled *bool  `json:"enabled" form:"enabled"`
}

// AlarmToggleRequest Request parameters for toggling an alarm's enabled flag
// 切换闹钟启用状态请求参数
type AlarmToggleRequest struct {
	ID string `json:"id" form:"id" binding:"required"`
}

// AlarmDeleteRequest Request parameters for deleting an alarm
// 删除闹钟请求参数
type AlarmDeleteRequest struct {
	ID string `json:"id" form:"id" binding:"required"`
}

// ---------------- DTO / Response ----------------

// AlarmDTO Alarm data transfer object
// AlarmDTO 闹钟数据传输对象
type AlarmDTO struct {
	ID           string     `json:"id"`
	Time         string     `json:"time"`
	Message      string     `json:"message"`
	Enabled      bool       `json:"enabled"`
	TriggeredDay string     `json:"triggeredDay,omitempty"`
	CreatedAt    timex.Time `json:"createdAt"`
	UpdatedAt    timex.Time `json:"updatedAt"`
}
