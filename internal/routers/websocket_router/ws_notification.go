package websocket_router

import (
	"encoding/json"

	"github.com/haierkeys/smart-mark-service/internal/app"
	"github.com/haierkeys/smart-mark-service/internal/dto"
	pkgapp "github.com/haierkeys/smart-mark-service/pkg/app"
	"github.com/haierkeys/smart-mark-service/pkg/code"
)

// NotificationWSHandler WebSocket notification handler
// NotificationWSHandler WebSocket 通知处理器
// Uses App Container to inject dependencies
// 使用 App Container 注入依赖
type NotificationWSHandler struct {
	*WSHandler
}

// NewNotificationWSHandler 创建 NotificationWSHandler 实例
func NewNotificationWSHandler(a *app.App) *NotificationWSHandler {
	return &NotificationWSHandler{
		WSHandler: NewWSHandler(a),
	}
}

// NotificationRead handles read-marking messages sent over the socket
// NotificationRead 处理客户端发送的通知已读消息，标记后回传最新未读数量
func (h *NotificationWSHandler) NotificationRead(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	params := &dto.NotificationReadRequest{}
	if err := json.Unmarshal(msg.Data, params); err != nil {
		h.respondError(c, code.ErrorInvalidParams, err, "websocket_router.notification.NotificationRead.Unmarshal", "NotificationRead")
		return
	}
	if params.ID == "" {
		c.ToResponse(code.ErrorInvalidParams.Clone().WithDetails("id is required"), "NotificationRead")
		return
	}

	ctx := h.ctx(c)
	uid := c.User.UID

	if err := h.App.NotificationService.MarkRead(ctx, uid, params.ID); err != nil {
		h.respondError(c, code.ErrorNotificationMarkRead, err, "websocket_router.notification.NotificationRead", "NotificationRead")
		return
	}

	unread, err := h.App.NotificationService.UnreadCount(ctx, uid)
	if err != nil {
		h.respondError(c, code.ErrorDBQuery, err, "websocket_router.notification.NotificationRead.UnreadCount", "NotificationRead")
		return
	}

	c.ToResponse(code.Success.Clone().WithData(&dto.NotificationUnreadDTO{Unread: unread}), "NotificationRead")
}

// NotificationUnread 处理未读数量查询消息
func (h *NotificationWSHandler) NotificationUnread(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	ctx := h.ctx(c)
	uid := c.User.UID

	unread, err := h.App.NotificationService.UnreadCount(ctx, uid)
	if err != nil {
		h.respondError(c, code.ErrorDBQuery, err, "websocket_router.notification.NotificationUnread", "NotificationUnread")
		return
	}

	c.ToResponse(code.Success.Clone().WithData(&dto.NotificationUnreadDTO{Unread: unread}), "NotificationUnread")
}
