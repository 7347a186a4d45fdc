package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/haierkeys/smart-mark-service/internal/domain"
	"github.com/haierkeys/smart-mark-service/internal/dto"
	"github.com/haierkeys/smart-mark-service/pkg/code"
	"github.com/haierkeys/smart-mark-service/pkg/timex"
	"github.com/haierkeys/smart-mark-service/pkg/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BookmarkService 定义书签业务服务接口
type BookmarkService interface {
	// Create 创建书签，预定书签附带日期时追加 reminder 通知
	Create(ctx context.Context, uid int64, params *dto.BookmarkCreateRequest) (*dto.BookmarkDTO, error)

	// Update 更新书签
	Update(ctx context.Context, uid int64, params *dto.BookmarkUpdateRequest) (*dto.BookmarkDTO, error)

	// Delete 删除书签，目标不存在时视为成功
	Delete(ctx context.Context, uid int64, id string) error

	// Get 获取单个书签
	Get(ctx context.Context, uid int64, id string) (*dto.BookmarkDTO, error)

	// List 按筛选模式获取书签列表，保持创建时间倒序
	List(ctx context.Context, uid int64, params *dto.BookmarkListRequest) ([]*dto.BookmarkDTO, error)
}

// bookmarkService 实现 BookmarkService 接口
type bookmarkService struct {
	bookmarkRepo        domain.BookmarkRepository
	notificationService NotificationService
	logger              *zap.Logger
	now                 func() time.Time
}

// NewBookmarkService 创建 BookmarkService 实例
func NewBookmarkService(bookmarkRepo domain.BookmarkRepository, notificationService NotificationService, logger *zap.Logger) BookmarkService {
	return &bookmarkService{
		bookmarkRepo:        bookmarkRepo,
		notificationService: notificationService,
		logger:              logger,
		now:                 time.Now,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *bookmarkService) domainToDTO(b *domain.Bookmark) *dto.BookmarkDTO {
	if b == nil {
		return nil
	}
	return &dto.BookmarkDTO{
		ID:            b.ID,
		URL:           b.URL,
		Title:         b.Title,
		Domain:        b.Domain,
		Category:      b.Category,
		IsFuture:      b.IsFuture,
		ScheduledDate: timex.Time(b.ScheduledDate),
		EffectiveDate: timex.Time(b.EffectiveDate()),
		CreatedAt:     timex.Time(b.CreatedAt),
		UpdatedAt:     timex.Time(b.UpdatedAt),
	}
}

// Create 创建书签，预定书签附带日期时追加 reminder 通知
func (s *bookmarkService) Create(ctx context.Context, uid int64, params *dto.BookmarkCreateRequest) (*dto.BookmarkDTO, error) {
	// 纯空白的链接归一化后为空串，按空链接拒绝
	if strings.TrimSpace(params.URL) == "" {
		return nil, code.ErrorBookmarkURLEmpty
	}

	now := s.now()
	normalized := util.NormalizeURL(params.URL)

	// 标题缺省时回落到链接本身
	title := params.Title
	if title == "" {
		title = normalized
	}

	bookmark := &domain.Bookmark{
		ID:        uuid.NewString(),
		UID:       uid,
		URL:       normalized,
		Title:     title,
		Domain:    util.ParseDomain(params.URL),
		Category:  params.Category,
		IsFuture:  params.IsFuture,
		CreatedAt: now,
	}

	if params.Date != "" {
		date, ok := parseDate(params.Date)
		if !ok {
			return nil, code.ErrorBookmarkDate
		}
		if params.IsFuture {
			bookmark.ScheduledDate = date
		} else {
			// 非预定书签给出日期时按补录处理，直接回写创建时间
			bookmark.CreatedAt = date
		}
	}

	created, err := s.bookmarkRepo.Create(ctx, bookmark, uid)
	if err != nil {
		return nil, code.ErrorBookmarkCreate.Clone().WithDetails(err.Error())
	}

	// 预定书签追加 reminder 通知，通知失败不回滚书签
	if created.HasSchedule() {
		_, err := s.notificationService.Append(ctx, uid, &domain.Notification{
			Type:    domain.NotificationTypeReminder,
			Title:   created.Title,
			Message: fmt.Sprintf("scheduled for %s", util.CalendarDate(created.ScheduledDate)),
			Icon:    "calendar",
			Color:   "blue",
		})
		if err != nil && s.logger != nil {
			s.logger.Warn("BookmarkService.Create reminder append failed",
				zap.Int64("uid", uid),
				zap.String("bookmarkId", created.ID),
				zap.Error(err),
			)
		}
	}

	return s.domainToDTO(created), nil
}

// Update 更新书签
// 目标不存在报 NotFound，归属他人报无权限
func (s *bookmarkService) Update(ctx context.Context, uid int64, params *dto.BookmarkUpdateRequest) (*dto.BookmarkDTO, error) {
	existing, err := s.bookmarkRepo.GetAnyByID(ctx, params.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorBookmarkNotFound
		}
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	if existing.UID != uid {
		return nil, code.ErrorNoPermission
	}

	if strings.TrimSpace(params.URL) == "" {
		return nil, code.ErrorBookmarkURLEmpty
	}

	normalized := util.NormalizeURL(params.URL)
	existing.URL = normalized
	existing.Domain = util.ParseDomain(params.URL)
	existing.Category = params.Category
	existing.IsFuture = params.IsFuture

	if params.Title != "" {
		existing.Title = params.Title
	}

	if params.IsFuture {
		if params.Date != "" {
			date, ok := parseDate(params.Date)
			if !ok {
				return nil, code.ErrorBookmarkDate
			}
			existing.ScheduledDate = date
		}
	} else {
		// 取消预定后生效日期回到创建时间
		// 给出日期时按补录处理，直接回写创建时间
		existing.ScheduledDate = time.Time{}
		if params.Date != "" {
			date, ok := parseDate(params.Date)
			if !ok {
				return nil, code.ErrorBookmarkDate
			}
			existing.CreatedAt = date
		}
	}

	updated, err := s.bookmarkRepo.Update(ctx, existing, uid)
	if err != nil {
		return nil, code.ErrorBookmarkUpdate.Clone().WithDetails(err.Error())
	}
	return s.domainToDTO(updated), nil
}

// Delete 删除书签，目标不存在时视为成功，归属他人报无权限
func (s *bookmarkService) Delete(ctx context.Context, uid int64, id string) error {
	existing, err := s.bookmarkRepo.GetAnyByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	if existing.UID != uid {
		return code.ErrorNoPermission
	}

	if err := s.bookmarkRepo.Delete(ctx, id, uid); err != nil {
		return code.ErrorBookmarkDelete.Clone().WithDetails(err.Error())
	}
	return nil
}

// Get 获取单个书签
func (s *bookmarkService) Get(ctx context.Context, uid int64, id string) (*dto.BookmarkDTO, error) {
	b, err := s.bookmarkRepo.GetByID(ctx, id, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorBookmarkNotFound
		}
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	return s.domainToDTO(b), nil
}

// List 按筛选模式获取书签列表，保持创建时间倒序
func (s *bookmarkService) List(ctx context.Context, uid int64, params *dto.BookmarkListRequest) ([]*dto.BookmarkDTO, error) {
	query := domain.FilterQuery{Mode: domain.FilterMode(params.Mode)}
	if query.Mode == "" {
		query.Mode = domain.FilterModeAll
	}

	// date 模式没给目标日期时退回 all，给出但解析失败时报错
	if query.Mode == domain.FilterModeDate {
		if params.Date == "" {
			query.Mode = domain.FilterModeAll
		} else {
			date, ok := parseDate(params.Date)
			if !ok {
				return nil, code.ErrorBookmarkDate
			}
			query.Date = date
		}
	}

	list, err := s.bookmarkRepo.ListByUID(ctx, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	out := make([]*dto.BookmarkDTO, 0, len(list))
	for b := range domain.FilterBookmarks(list, query, s.now()) {
		out = append(out, s.domainToDTO(b))
	}
	return out, nil
}

// 确保 bookmarkService 实现了 BookmarkService 接口
var _ BookmarkService = (*bookmarkService)(nil)
