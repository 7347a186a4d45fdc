package service

import (
	"context"
	"errors"
	"time"

	"github.com/haierkeys/smart-mark-service/internal/domain"
	"github.com/haierkeys/smart-mark-service/internal/dto"
	"github.com/haierkeys/smart-mark-service/pkg/code"
	"github.com/haierkeys/smart-mark-service/pkg/timex"
	"github.com/haierkeys/smart-mark-service/pkg/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// defaultDomainTopLimit 域名聚合默认返回条目数
const defaultDomainTopLimit = 10

// AdminService 定义管理端业务服务接口，全部操作需要管理员权限
type AdminService interface {
	// Stats 获取全站聚合统计
	Stats(ctx context.Context) (*dto.AdminStatsDTO, error)

	// ListUsers 分页获取用户列表，附带书签数量，按注册时间倒序
	ListUsers(ctx context.Context, page, pageSize int) ([]*dto.AdminUserDTO, int64, error)

	// ListBookmarks 分页获取全站书签，附带归属用户信息
	ListBookmarks(ctx context.Context, page, pageSize int) ([]*dto.AdminBookmarkDTO, int64, error)

	// DeleteBookmark 删除任意用户的书签，目标不存在时视为成功
	DeleteBookmark(ctx context.Context, id string) error

	// DeleteUser 删除用户及其全部数据，管理员账号不可删除
	DeleteUser(ctx context.Context, uid int64) error

	// TopDomains 按域名聚合书签数量，按数量倒序
	TopDomains(ctx context.Context) ([]*dto.DomainCountDTO, error)
}

// adminService 实现 AdminService 接口
type adminService struct {
	userRepo         domain.UserRepository
	bookmarkRepo     domain.BookmarkRepository
	notificationRepo domain.NotificationRepository
	alarmRepo        domain.AlarmRepository
	userService      UserService
	logger           *zap.Logger
	config           *ServiceConfig
	now              func() time.Time
}

// NewAdminService 创建 AdminService 实例
func NewAdminService(
	userRepo domain.UserRepository,
	bookmarkRepo domain.BookmarkRepository,
	notificationRepo domain.NotificationRepository,
	alarmRepo domain.AlarmRepository,
	userService UserService,
	logger *zap.Logger,
	config *ServiceConfig,
) AdminService {
	return &adminService{
		userRepo:         userRepo,
		bookmarkRepo:     bookmarkRepo,
		notificationRepo: notificationRepo,
		alarmRepo:        alarmRepo,
		userService:      userService,
		logger:           logger,
		config:           config,
		now:              time.Now,
	}
}

// Stats 获取全站聚合统计
// newUsersToday / newBookmarksToday 按记录自身的 createdAt 统计，不使用生效日期
func (s *adminService) Stats(ctx context.Context) (*dto.AdminStatsDTO, error) {
	now := s.now()
	dayStart := util.GetZeroTime(now)

	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	totalBookmarks, err := s.bookmarkRepo.CountAll(ctx)
	if err != nil {
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	futureBookmarks, err := s.bookmarkRepo.CountFutureAll(ctx)
	if err != nil {
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	newUsersToday, err := s.userRepo.CountCreatedSince(ctx, dayStart)
	if err != nil {
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	newBookmarksToday, err := s.bookmarkRepo.CountCreatedSince(ctx, dayStart)
	if err != nil {
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	totalNotifications, err := s.notificationRepo.CountAll(ctx)
	if err != nil {
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	unreadNotifications, err := s.notificationRepo.CountUnreadAll(ctx)
	if err != nil {
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	activeAlarms, err := s.alarmRepo.CountEnabledAll(ctx)
	if err != nil {
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	// 没有用户时平均值为 0，避免除零
	avg := float64(0)
	if totalUsers > 0 {
		avg = util.Round1(float64(totalBookmarks) / float64(totalUsers))
	}

	return &dto.AdminStatsDTO{
		TotalUsers:          totalUsers,
		TotalBookmarks:      totalBookmarks,
		FutureBookmarks:     futureBookmarks,
		NewUsersToday:       newUsersToday,
		NewBookmarksToday:   newBookmarksToday,
		TotalNotifications:  totalNotifications,
		UnreadNotifications: unreadNotifications,
		ActiveAlarms:        activeAlarms,
		AvgBookmarksPerUser: avg,
	}, nil
}

// ListUsers 分页获取用户列表，附带书签数量，按注册时间倒序
func (s *adminService) ListUsers(ctx context.Context, page, pageSize int) ([]*dto.AdminUserDTO, int64, error) {
	users, err := s.userRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	out := make([]*dto.AdminUserDTO, 0, len(users))
	for _, user := range users {
		count, err := s.bookmarkRepo.CountByUID(ctx, user.UID)
		if err != nil {
			return nil, 0, code.ErrorDBQuery.Clone().WithDetails(err.Error())
		}
		out = append(out, &dto.AdminUserDTO{
			UID:           user.UID,
			Email:         user.Email,
			Username:      user.Username,
			IsAdmin:       user.IsAdmin,
			BookmarkCount: count,
			CreatedAt:     timex.Time(user.CreatedAt),
		})
	}
	return out, total, nil
}

// ListBookmarks 分页获取全站书签，附带归属用户信息
func (s *adminService) ListBookmarks(ctx context.Context, page, pageSize int) ([]*dto.AdminBookmarkDTO, int64, error) {
	bookmarks, err := s.bookmarkRepo.ListAllPage(ctx, page, pageSize)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	total, err := s.bookmarkRepo.CountAll(ctx)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	// 同页书签通常集中在少量用户，按 UID 缓存归属查询
	owners := make(map[int64]*domain.User)
	out := make([]*dto.AdminBookmarkDTO, 0, len(bookmarks))
	for _, b := range bookmarks {
		owner, ok := owners[b.UID]
		if !ok {
			owner, err = s.userRepo.GetByUID(ctx, b.UID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, code.ErrorDBQuery.Clone().WithDetails(err.Error())
			}
			owners[b.UID] = owner
		}

		item := &dto.AdminBookmarkDTO{
			BookmarkDTO: dto.BookmarkDTO{
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
			},
			UID: b.UID,
		}
		if owner != nil {
			item.OwnerUsername = owner.Username
			item.OwnerEmail = owner.Email
		}
		out = append(out, item)
	}
	return out, total, nil
}

// DeleteBookmark 删除任意用户的书签，目标不存在时视为成功
func (s *adminService) DeleteBookmark(ctx context.Context, id string) error {
	if err := s.bookmarkRepo.DeleteAnyByID(ctx, id); err != nil {
		return code.ErrorBookmarkDelete.Clone().WithDetails(err.Error())
	}
	return nil
}

// DeleteUser 删除用户及其全部数据，管理员账号不可删除
func (s *adminService) DeleteUser(ctx context.Context, uid int64) error {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorUserNotFound
		}
		return code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	if user.IsAdmin {
		return code.ErrorUserDeleteAdmin
	}
	return s.userService.DeleteAccount(ctx, uid)
}

// TopDomains 按域名聚合书签数量，按数量倒序
func (s *adminService) TopDomains(ctx context.Context) ([]*dto.DomainCountDTO, error) {
	limit := defaultDomainTopLimit
	if s.config != nil && s.config.App.DomainTopLimit > 0 {
		limit = s.config.App.DomainTopLimit
	}

	rows, err := s.bookmarkRepo.CountByDomain(ctx, limit)
	if err != nil {
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	out := make([]*dto.DomainCountDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, &dto.DomainCountDTO{Domain: row.Domain, Count: row.Count})
	}
	return out, nil
}

// 确保 adminService 实现了 AdminService 接口
var _ AdminService = (*adminService)(nil)
