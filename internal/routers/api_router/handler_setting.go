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

// SettingHandler user setting API router handler
// SettingHandler 用户偏好 API 路由处理器
type SettingHandler struct {
	*Handler
}

// NewSettingHandler 创建 SettingHandler 实例
func NewSettingHandler(a *app.App) *SettingHandler {
	return &SettingHandler{
		Handler: NewHandler(a),
	}
}

// Get get user settings
// @Summary Get settings
// @Description 获取当前用户的偏好设置，没有记录时返回默认值
// @Tags Setting
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.SettingDTO} "Success"
// @Router /api/setting [get]
func (h *SettingHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)

	settingDTO, err := h.App.SettingService.Get(ctx, uid)
	if err != nil {
		h.logError(ctx, "SettingHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(settingDTO))
}

// Save save user settings
// @Summary Save settings
// @Description 保存当前用户的偏好设置，只更新请求中给出的字段
// @Tags Setting
// @Accept json
// @Produce json
// @Param params body dto.SettingSaveRequest true "Save Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.SettingDTO} "Success"
// @Router /api/setting [post]
func (h *SettingHandler) Save(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.SettingSaveRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("SettingHandler.Save.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.Clone().WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)

	settingDTO, err := h.App.SettingService.Save(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "SettingHandler.Save", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(settingDTO))
}

// logError 记录错误日志，包含 Trace ID
func (h *SettingHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}
