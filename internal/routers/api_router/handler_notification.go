package api_router

import (
	"context"

	"github.com/haierkeys/smart-mark-service/internal/app"
	"github.com/haierkeys/smart-mark-service/internal/dto"
	"github.com/haierkeys/smart-mark-service/internal/middleware"
	pkgapp "github.com/haierkeys/smart-mark-service/pkg/app"
	"github.com/haierkeys/smart-mark-service/pkg/code"
	apperrors "github.com/haierkeys/smart-mark-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotificationHandler notification API router handler
// NotificationHandler 通知 API 路由处理器
type NotificationHandler struct {
	*Handler
}

// NewNotificationHandler 创建 NotificationHandler 实例
func NewNotificationHandler(a *app.App) *NotificationHandler {
	return &NotificationHandler{
		Handler: NewHandler(a),
	}
}

// List list notifications
// @Summary List notifications
// @Description 分页获取当前用户的通知列表，按创建时间倒序
// @Tags Notification
// @Produce json
// @Param page query int false "Page"
// @Param pageSize query int false "Page Size"
// @Success 200 {object} pkgapp.ListRes{data=[]dto.NotificationDTO} "Success"
// @Router /api/notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)

	list, total, err := h.App.NotificationService.List(ctx, uid, pkgapp.GetPage(c), pkgapp.GetPageSize(c))
	if err != nil {
		h.logError(ctx, "NotificationHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success.Clone(), list, int(total))
}

// Read mark one notification as read
// @Summary Mark notification read
// @Description 标记单条通知为已读。已读通知重复标记直接返回成功，不会改写状态。
// @Tags Notification
// @Accept json
// @Produce json
// @Param params body dto.NotificationReadRequest true "Read Parameters"
// @Success 200 {object} pkgapp.Res "Success"
// @Router /api/notification/read [post]
func (h *NotificationHandler) Read(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NotificationReadRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NotificationHandler.Read.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.Clone().WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)

	if err := h.App.NotificationService.MarkRead(ctx, uid, params.ID); err != nil {
		h.logError(ctx, "NotificationHandler.Read", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// ReadAll mark all notifications as read
// @Summary Mark all notifications read
// @Description 标记当前用户的全部通知为已读，没有未读通知时同样返回成功
// @Tags Notification
// @Produce json
// @Success 200 {object} pkgapp.Res "Success"
// @Router /api/notification/read_all [post]
func (h *NotificationHandler) ReadAll(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)

	if err := h.App.NotificationService.MarkAllRead(ctx, uid); err != nil {
		h.logError(ctx, "NotificationHandler.ReadAll", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// Unread get unread notification count
// @Summary Unread count
// @Description 获取当前用户的未读通知数量
// @Tags Notification
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.NotificationUnreadDTO} "Success"
// @Router /api/notification/unread [get]
func (h *NotificationHandler) Unread(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)

	count, err := h.App.NotificationService.UnreadCount(ctx, uid)
	if err != nil {
		h.logError(ctx, "NotificationHandler.Unread", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(&dto.NotificationUnreadDTO{Unread: count}))
}

// logError 记录错误日志，包含 Trace ID
func (h *NotificationHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}
