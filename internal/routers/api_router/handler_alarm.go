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

// AlarmHandler alarm API router handler
// AlarmHandler 闹钟 API 路由处理器
type AlarmHandler struct {
	*Handler
}

// NewAlarmHandler 创建 AlarmHandler 实例
func NewAlarmHandler(a *app.App) *AlarmHandler {
	return &AlarmHandler{
		Handler: NewHandler(a),
	}
}

// Add create an alarm
// @Summary Create alarm
// @Description 创建闹钟，时间格式为 HH:MM，每天触发一次
// @Tags Alarm
// @Accept json
// @Produce json
// @Param params body dto.AlarmCreateRequest true "Create Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.AlarmDTO} "Success"
// @Router /api/alarm [post]
func (h *AlarmHandler) Add(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.AlarmCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("AlarmHandler.Add.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.Clone().WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)

	alarmDTO, err := h.App.AlarmService.Add(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "AlarmHandler.Add", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(alarmDTO))
}

// Update update an alarm
// @Summary Update alarm
// @Description 更新闹钟。修改触发时间会清除当日已触发标记。
// @Tags Alarm
// @Accept json
// @Produce json
// @Param params body dto.AlarmUpdateRequest true "Update Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.AlarmDTO} "Success"
// @Router /api/alarm [put]
func (h *AlarmHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.AlarmUpdateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("AlarmHandler.Update.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.Clone().WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)

	alarmDTO, err := h.App.AlarmService.Update(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "AlarmHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(alarmDTO))
}

// Toggle toggle alarm enabled state
// @Summary Toggle alarm
// @Description 切换闹钟的启用状态
// @Tags Alarm
// @Accept json
// @Produce json
// @Param params body dto.AlarmToggleRequest true "Toggle Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.AlarmDTO} "Success"
// @Router /api/alarm/toggle [post]
func (h *AlarmHandler) Toggle(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.AlarmToggleRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("AlarmHandler.Toggle.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.Clone().WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)

	alarmDTO, err := h.App.AlarmService.Toggle(ctx, uid, params.ID)
	if err != nil {
		h.logError(ctx, "AlarmHandler.Toggle", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(alarmDTO))
}

// Delete delete an alarm
// @Summary Delete alarm
// @Description 删除闹钟，目标不存在时同样返回成功
// @Tags Alarm
// @Accept json
// @Produce json
// @Param params body dto.AlarmDeleteRequest true "Delete Parameters"
// @Success 200 {object} pkgapp.Res "Success"
// @Router /api/alarm [delete]
func (h *AlarmHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.AlarmDeleteRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("AlarmHandler.Delete.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.Clone().WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)

	if err := h.App.AlarmService.Delete(ctx, uid, params.ID); err != nil {
		h.logError(ctx, "AlarmHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// List list alarms
// @Summary List alarms
// @Description 获取当前用户的闹钟列表
// @Tags Alarm
// @Produce json
// @Success 200 {object} pkgapp.ListRes{data=[]dto.AlarmDTO} "Success"
// @Router /api/alarms [get]
func (h *AlarmHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)

	list, err := h.App.AlarmService.List(ctx, uid)
	if err != nil {
		h.logError(ctx, "AlarmHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success.Clone(), list, len(list))
}

// logError 记录错误日志，包含 Trace ID
func (h *AlarmHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}
