package service

import (
	"context"
	"errors"
	"time"

	"github.com/haierkeys/smart-mark-service/internal/domain"
	"github.com/haierkeys/smart-mark-service/internal/dto"
	"github.com/haierkeys/smart-mark-service/pkg/code"
	"github.com/haierkeys/smart-mark-service/pkg/timex"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NotificationService 定义通知业务服务接口
// 通知只能由系统事件追加，read 标记只从 false 变为 true
type NotificationService interface {
	// Append 追加一条通知并推送给在线客户端
	Append(ctx context.Context, uid int64, n *domain.Notification) (*dto.NotificationDTO, error)

	// List 分页获取通知列表，按创建时间倒序
	List(ctx context.Context, uid int64, page, pageSize int) ([]*dto.NotificationDTO, int64, error)

	// MarkRead 标记单条通知已读，重复标记视为成功
	MarkRead(ctx context.Context, uid int64, id string) error

	// MarkAllRead 标记全部通知已读，没有未读时不报错
	MarkAllRead(ctx context.Context, uid int64) error

	// UnreadCount 获取未读通知数量
	UnreadCount(ctx context.Context, uid int64) (int64, error)
}

// notificationService 实现 NotificationService 接口
type notificationService struct {
	notificationRepo domain.NotificationRepository
	pusher           Pusher
	logger           *zap.Logger
	now              func() time.Time
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(notificationRepo domain.NotificationRepository, pusher Pusher, logger *zap.Logger) NotificationService {
	if pusher == nil {
		pusher = NopPusher()
	}
	return &notificationService{
		notificationRepo: notificationRepo,
		pusher:           pusher,
		logger:           logger,
		now:              time.Now,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *notificationService) domainToDTO(n *domain.Notification) *dto.NotificationDTO {
	if n == nil {
		return nil
	}
	return &dto.NotificationDTO{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Icon:      n.Icon,
		Color:     n.Color,
		IsRead:    n.IsRead,
		CreatedAt: timex.Time(n.CreatedAt),
	}
}

// Append 追加一条通知并推送给在线客户端
func (s *notificationService) Append(ctx context.Context, uid int64, n *domain.Notification) (*dto.NotificationDTO, error) {
	n.ID = uuid.NewString()
	n.UID = uid
	n.IsRead = false
	n.CreatedAt = s.now()

	created, err := s.notificationRepo.Create(ctx, n, uid)
	if err != nil {
		return nil, code.ErrorNotificationAppend.Clone().WithDetails(err.Error())
	}

	result := s.domainToDTO(created)

	// 推送失败不影响通知落库
	s.pusher.PushToUser(uid, "notification", result)

	return result, nil
}

// List 分页获取通知列表，按创建时间倒序
func (s *notificationService) List(ctx context.Context, uid int64, page, pageSize int) ([]*dto.NotificationDTO, int64, error) {
	list, err := s.notificationRepo.ListByUID(ctx, uid, page, pageSize)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	total, err := s.notificationRepo.CountByUID(ctx, uid)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	out := make([]*dto.NotificationDTO, 0, len(list))
	for _, n := range list {
		out = append(out, s.domainToDTO(n))
	}
	return out, total, nil
}

// MarkRead 标记单条通知已读，重复标记视为成功
// 目标不存在报 NotFound，归属他人报无权限
func (s *notificationService) MarkRead(ctx context.Context, uid int64, id string) error {
	n, err := s.notificationRepo.GetAnyByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorNotificationNotFound
		}
		return code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	if n.UID != uid {
		return code.ErrorNoPermission
	}

	// 已读状态不可逆，重复标记直接返回成功
	if n.IsRead {
		return nil
	}

	if err := s.notificationRepo.MarkRead(ctx, id, uid); err != nil {
		return code.ErrorNotificationMarkRead.Clone().WithDetails(err.Error())
	}
	return nil
}

// MarkAllRead 标记全部通知已读，没有未读时不报错
func (s *notificationService) MarkAllRead(ctx context.Context, uid int64) error {
	if err := s.notificationRepo.MarkAllRead(ctx, uid); err != nil {
		return code.ErrorNotificationMarkRead.Clone().WithDetails(err.Error())
	}
	return nil
}

// UnreadCount 获取未读通知数量
func (s *notificationService) UnreadCount(ctx context.Context, uid int64) (int64, error) {
	count, err := s.notificationRepo.CountUnreadByUID(ctx, uid)
	if err != nil {
		return 0, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	return count, nil
}

// 确保 notificationService 实现了 NotificationService 接口
var _ NotificationService = (*notificationService)(nil)
