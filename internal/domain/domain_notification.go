package domain

import "time"

// NotificationType 定义通知类型
type NotificationType string

const (
	NotificationTypeSystem   NotificationType = "system"
	NotificationTypeReminder NotificationType = "reminder"
	NotificationTypeAlarm    NotificationType = "alarm"
)

// Notification 通知领域模型
// 通知只追加与标记已读，不支持内容修改
// Icon 和 Color 仅作展示提示，不参与业务逻辑
type Notification struct {
	ID        string
	UID       int64
	Type      NotificationType
	Title     string
	Message   string
	Icon      string
	Color     string
	IsRead    bool
	CreatedAt time.Time
}
