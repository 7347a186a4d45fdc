// Package websocket_router 提供 WebSocket 路由处理器
package websocket_router

import (
	"context"
	"strings"

	"github.com/haierkeys/smart-mark-service/internal/app"
	pkgapp "github.com/haierkeys/smart-mark-service/pkg/app"
	"github.com/haierkeys/smart-mark-service/pkg/code"

	"go.uber.org/zap"
)

// WSHandler WebSocket 基础 Handler 结构体，封装 App Container
// 所有 WebSocket Handler 都应该嵌入此结构体以获得依赖注入能力
type WSHandler struct {
	App *app.App
}

// NewWSHandler 创建 WebSocket 基础 Handler 实例
func NewWSHandler(a *app.App) *WSHandler {
	return &WSHandler{App: a}
}

// ctx 获取客户端关联的请求上下文
func (h *WSHandler) ctx(c *pkgapp.WebsocketClient) context.Context {
	if c != nil && c.Ctx != nil {
		return c.Ctx.Request.Context()
	}
	return context.Background()
}

// logError 记录错误日志
func (h *WSHandler) logError(c *pkgapp.WebsocketClient, method string, err error) {
	if isNetworkClosedError(err) {
		h.App.Logger().Debug(method, zap.Error(err))
		return
	}
	h.App.Logger().Error(method, zap.Error(err))
}

// respondError 统一错误响应方法
// 记录错误日志并发送包含 Details 的错误响应给客户端
func (h *WSHandler) respondError(c *pkgapp.WebsocketClient, codeErr *code.Code, err error, method string, action string) {
	h.logError(c, method, err)
	c.ToResponse(codeErr.Clone().WithDetails(err.Error()), action)
}

// isNetworkClosedError 检查是否为网络关闭相关的错误
func isNetworkClosedError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "use of closed network connection") ||
		strings.Contains(msg, "connection reset by peer") ||
		strings.Contains(msg, "broken pipe") ||
		err == context.Canceled
}
