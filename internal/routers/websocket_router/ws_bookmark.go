package websocket_router

import (
	"encoding/json"

	"github.com/haierkeys/smart-mark-service/internal/app"
	"github.com/haierkeys/smart-mark-service/internal/dto"
	pkgapp "github.com/haierkeys/smart-mark-service/pkg/app"
	"github.com/haierkeys/smart-mark-service/pkg/code"
)

// BookmarkWSHandler WebSocket bookmark handler
// BookmarkWSHandler WebSocket 书签处理器
type BookmarkWSHandler struct {
	*WSHandler
}

// NewBookmarkWSHandler 创建 BookmarkWSHandler 实例
func NewBookmarkWSHandler(a *app.App) *BookmarkWSHandler {
	return &BookmarkWSHandler{
		WSHandler: NewWSHandler(a),
	}
}

// BookmarkSync 处理客户端发送的书签拉取消息，按筛选模式返回列表
// 客户端断线重连后用这条消息刷新本地视图
func (h *BookmarkWSHandler) BookmarkSync(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	params := &dto.BookmarkListRequest{}
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, params); err != nil {
			h.respondError(c, code.ErrorInvalidParams, err, "websocket_router.bookmark.BookmarkSync.Unmarshal", "BookmarkSync")
			return
		}
	}

	ctx := h.ctx(c)
	uid := c.User.UID

	list, err := h.App.BookmarkService.List(ctx, uid, params)
	if err != nil {
		h.respondError(c, code.ErrorDBQuery, err, "websocket_router.bookmark.BookmarkSync", "BookmarkSync")
		return
	}

	c.ToResponse(code.Success.Clone().WithData(list), "BookmarkSync")
}

// BookmarkModify 处理客户端发送的书签创建消息，创建后把结果推给该用户的其他连接
func (h *BookmarkWSHandler) BookmarkModify(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	params := &dto.BookmarkCreateRequest{}
	if err := json.Unmarshal(msg.Data, params); err != nil {
		h.respondError(c, code.ErrorInvalidParams, err, "websocket_router.bookmark.BookmarkModify.Unmarshal", "BookmarkModify")
		return
	}

	ctx := h.ctx(c)
	uid := c.User.UID

	bookmarkDTO, err := h.App.BookmarkService.Create(ctx, uid, params)
	if err != nil {
		h.respondError(c, code.ErrorBookmarkCreate, err, "websocket_router.bookmark.BookmarkModify", "BookmarkModify")
		return
	}

	c.ToResponse(code.Success.Clone().WithData(bookmarkDTO), "BookmarkModify")
	h.App.WSS.PushToUser(uid, "BookmarkSync", bookmarkDTO)
}
