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

// BookmarkHandler bookmark API router handler
// BookmarkHandler 书签 API 路由处理器
type BookmarkHandler struct {
	*Handler
}

// NewBookmarkHandler 创建 BookmarkHandler 实例
func NewBookmarkHandler(a *app.App) *BookmarkHandler {
	return &BookmarkHandler{
		Handler: NewHandler(a),
	}
}

// Create create a bookmark
// @Summary Create bookmark
// @Description 创建书签。isFuture 为 true 且带日期时记为预定书签并追加提醒通知；
// @Description isFuture 为 false 且带日期时按给定日期回填创建时间。
// @Tags Bookmark
// @Accept json
// @Produce json
// @Param params body dto.BookmarkCreateRequest true "Create Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.BookmarkDTO} "Success"
// @Router /api/bookmark [post]
func (h *BookmarkHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.BookmarkCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("BookmarkHandler.Create.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.Clone().WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)

	bookmarkDTO, err := h.App.BookmarkService.Create(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "BookmarkHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(bookmarkDTO))
}

// Update update a bookmark
// @Summary Update bookmark
// @Description 更新书签内容与预定状态，取消预定时清除生效日期
// @Tags Bookmark
// @Accept json
// @Produce json
// @Param params body dto.BookmarkUpdateRequest true "Update Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.BookmarkDTO} "Success"
// @Router /api/bookmark [put]
func (h *BookmarkHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.BookmarkUpdateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("BookmarkHandler.Update.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.Clone().WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)

	bookmarkDTO, err := h.App.BookmarkService.Update(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "BookmarkHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(bookmarkDTO))
}

// Delete delete a bookmark
// @Summary Delete bookmark
// @Description 删除书签，目标不存在时同样返回成功
// @Tags Bookmark
// @Accept json
// @Produce json
// @Param params body dto.BookmarkDeleteRequest true "Delete Parameters"
// @Success 200 {object} pkgapp.Res "Success"
// @Router /api/bookmark [delete]
func (h *BookmarkHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.BookmarkDeleteRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("BookmarkHandler.Delete.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.Clone().WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)

	if err := h.App.BookmarkService.Delete(ctx, uid, params.ID); err != nil {
		h.logError(ctx, "BookmarkHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// Get get a single bookmark
// @Summary Get bookmark
// @Description 获取单个书签
// @Tags Bookmark
// @Produce json
// @Param id query string true "Bookmark ID"
// @Success 200 {object} pkgapp.Res{data=dto.BookmarkDTO} "Success"
// @Router /api/bookmark [get]
func (h *BookmarkHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	id := c.Query("id")
	if id == "" {
		response.ToResponse(code.ErrorInvalidParams.Clone().WithDetails("id is required"))
		return
	}

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)

	bookmarkDTO, err := h.App.BookmarkService.Get(ctx, uid, id)
	if err != nil {
		h.logError(ctx, "BookmarkHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(bookmarkDTO))
}

// List list bookmarks by filter mode
// @Summary List bookmarks
// @Description 按筛选模式获取书签列表。支持 all/today/week/month/future/date，
// @Description 未识别的模式按 all 处理。
// @Tags Bookmark
// @Produce json
// @Param mode query string false "Filter mode"
// @Param date query string false "Target date for mode=date"
// @Success 200 {object} pkgapp.ListRes{data=[]dto.BookmarkDTO} "Success"
// @Router /api/bookmarks [get]
func (h *BookmarkHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.BookmarkListRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("BookmarkHandler.List.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.Clone().WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)

	list, err := h.App.BookmarkService.List(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "BookmarkHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success.Clone(), list, len(list))
}

// logError 记录错误日志，包含 Trace ID
func (h *BookmarkHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}
