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

// AdminHandler admin API router handler
// AdminHandler 管理端 API 路由处理器
// All routes require the admin auth middleware in front
// 所有路由都需要前置管理员认证中间件
type AdminHandler struct {
	*Handler
}

// NewAdminHandler 创建 AdminHandler 实例
func NewAdminHandler(a *app.App) *AdminHandler {
	return &AdminHandler{
		Handler: NewHandler(a),
	}
}

// Stats get site-wide aggregated counters
// @Summary Admin stats
// @Description 获取全站聚合统计：用户数、书签数、预定书签数、今日新增、人均书签数等
// @Tags Admin
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.AdminStatsDTO} "Success"
// @Router /api/admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	statsDTO, err := h.App.AdminService.Stats(ctx)
	if err != nil {
		h.logError(ctx, "AdminHandler.Stats", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(statsDTO))
}

// Users list all users with bookmark counts
// @Summary Admin user list
// @Description 分页获取全部用户，附带书签数量，按注册时间倒序
// @Tags Admin
// @Produce json
// @Param page query int false "Page"
// @Param pageSize query int false "Page Size"
// @Success 200 {object} pkgapp.ListRes{data=[]dto.AdminUserDTO} "Success"
// @Router /api/admin/users [get]
func (h *AdminHandler) Users(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	list, total, err := h.App.AdminService.ListUsers(ctx, pkgapp.GetPage(c), pkgapp.GetPageSize(c))
	if err != nil {
		h.logError(ctx, "AdminHandler.Users", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success.Clone(), list, int(total))
}

// Bookmarks list all bookmarks with owner info
// @Summary Admin bookmark list
// @Description 分页获取全站书签，附带归属用户信息
// @Tags Admin
// @Produce json
// @Param page query int false "Page"
// @Param pageSize query int false "Page Size"
// @Success 200 {object} pkgapp.ListRes{data=[]dto.AdminBookmarkDTO} "Success"
// @Router /api/admin/bookmarks [get]
func (h *AdminHandler) Bookmarks(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	list, total, err := h.App.AdminService.ListBookmarks(ctx, pkgapp.GetPage(c), pkgapp.GetPageSize(c))
	if err != nil {
		h.logError(ctx, "AdminHandler.Bookmarks", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success.Clone(), list, int(total))
}

// DeleteBookmark delete any user's bookmark
// @Summary Admin delete bookmark
// @Description 删除任意用户的书签，目标不存在时同样返回成功
// @Tags Admin
// @Accept json
// @Produce json
// @Param params body dto.AdminBookmarkDeleteRequest true "Delete Parameters"
// @Success 200 {object} pkgapp.Res "Success"
// @Router /api/admin/bookmark [delete]
func (h *AdminHandler) DeleteBookmark(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.AdminBookmarkDeleteRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("AdminHandler.DeleteBookmark.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.Clone().WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	if err := h.App.AdminService.DeleteBookmark(ctx, params.ID); err != nil {
		h.logError(ctx, "AdminHandler.DeleteBookmark", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// DeleteUser delete a user and all owned data
// @Summary Admin delete user
// @Description 删除用户及其全部数据，管理员账号不可删除
// @Tags Admin
// @Accept json
// @Produce json
// @Param params body dto.AdminUserDeleteRequest true "Delete Parameters"
// @Success 200 {object} pkgapp.Res "Success"
// @Router /api/admin/user [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.AdminUserDeleteRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("AdminHandler.DeleteUser.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.Clone().WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	if err := h.App.AdminService.DeleteUser(ctx, params.UID); err != nil {
		h.logError(ctx, "AdminHandler.DeleteUser", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// Domains list bookmark counts grouped by domain
// @Summary Admin domain stats
// @Description 按域名聚合书签数量，按数量倒序
// @Tags Admin
// @Produce json
// @Success 200 {object} pkgapp.ListRes{data=[]dto.DomainCountDTO} "Success"
// @Router /api/admin/domains [get]
func (h *AdminHandler) Domains(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	list, err := h.App.AdminService.TopDomains(ctx)
	if err != nil {
		h.logError(ctx, "AdminHandler.Domains", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success.Clone(), list, len(list))
}

// logError 记录错误日志，包含 Trace ID
func (h *AdminHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}
