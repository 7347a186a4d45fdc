package dto

import "github.com/haierkeys/smart-mark-service/pkg/timex"

// NotificationReadRequest Request parameters for marking one notification read
// 标记单条通知已读请求参数
type NotificationReadRequest struct {
	ID string `json:"id" form:"id" binding:"required"`
}

// ---------------- DTO / Response ----------------

// NotificationDTO Notification data transfer object
// NotificationDTO 通知数据传输对象
type NotificationDTO struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Icon      string     `json:"icon,omitempty"`  // Presentation hint // 展示提示
	Color     string     `json:"color,omitempty"` // Presentation hint // 展示提示
	IsRead    bool       `json:"isRead"`
	CreatedAt timex.Time `json:"createdAt"`
}

// NotificationUnreadDTO Unread counter
// NotificationUnreadDTO 未读数量
type NotificationUnreadDTO struct {
	Unread int64 `json:"unread"`
}
