package dao

import (
	"context"
	"time"

	"github.com/haierkeys/smart-mark-service/internal/domain"
	"github.com/haierkeys/smart-mark-service/internal/model"
	"github.com/haierkeys/smart-mark-service/pkg/timex"
)

// notificationRepository 实现 domain.NotificationRepository 接口
type notificationRepository struct {
	dao *Dao
}

// NewNotificationRepository 创建 NotificationRepository 实例
func NewNotificationRepository(dao *Dao) domain.NotificationRepository {
	return &notificationRepository{dao: dao}
}

func (r *notificationRepository) toDomain(m *model.Notification) *domain.Notification {
	if m == nil {
		return nil
	}
	return &domain.Notification{
		ID:        m.ID,
		UID:       m.UID,
		Type:      domain.NotificationType(m.Type),
		Title:     m.Title,
		Message:   m.Message,
		Icon:      m.Icon,
		Color:     m.Color,
		IsRead:    m.IsRead,
		CreatedAt: time.Time(m.CreatedAt),
	}
}

func (r *notificationRepository) toModel(n *domain.Notification) *model.Notification {
	if n == nil {
		return nil
	}
	return &model.Notification{
		ID:        n.ID,
		UID:       n.UID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Icon:      n.Icon,
		Color:     n.Color,
		IsRead:    n.IsRead,
		CreatedAt: timex.Time(n.CreatedAt),
	}
}

// GetByID 根据ID获取通知
func (r *notificationRepository) GetByID(ctx context.Context, id string, uid int64) (*domain.Notification, error) {
	var m model.Notification
	err := r.dao.db.WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetAnyByID 不限归属获取通知，供归属校验使用
func (r *notificationRepository) GetAnyByID(ctx context.Context, id string) (*domain.Notification, error) {
	var m model.Notification
	err := r.dao.db.WithContext(ctx).
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 追加通知
func (r *notificationRepository) Create(ctx context.Context, notification *domain.Notification, uid int64) (*domain.Notification, error) {
	m := r.toModel(notification)
	m.UID = uid

	err := r.dao.execWrite(ctx, uid, func() error {
		return r.dao.db.WithContext(ctx).Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// ListByUID 获取用户的通知列表，按创建时间倒序
func (r *notificationRepository) ListByUID(ctx context.Context, uid int64, page, pageSize int) ([]*domain.Notification, error) {
	var ms []*model.Notification
	offset := 0
	if page > 0 {
		offset = (page - 1) * pageSize
	}
	err := r.dao.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Notification, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}

// CountByUID 获取用户的通知数量
func (r *notificationRepository) CountByUID(ctx context.Context, uid int64) (int64, error) {
	var count int64
	err := r.dao.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("uid = ?", uid).
		Count(&count).Error
	return count, err
}

// CountUnreadByUID 获取用户的未读通知数量
func (r *notificationRepository) CountUnreadByUID(ctx context.Context, uid int64) (int64, error) {
	var count int64
	err := r.dao.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("uid = ? AND is_read = ?", uid, false).
		Count(&count).Error
	return count, err
}

// MarkRead 标记单条通知已读
// 已读通知保持已读，操作是单调的
func (r *notificationRepository) MarkRead(ctx context.Context, id string, uid int64) error {
	return r.dao.execWrite(ctx, uid, func() error {
		return r.dao.db.WithContext(ctx).
			Model(&model.Notification{}).
			Where("id = ? AND uid = ?", id, uid).
			Update("is_read", true).Error
	})
}

// MarkAllRead 标记用户全部通知已读
func (r *notificationRepository) MarkAllRead(ctx context.Context, uid int64) error {
	return r.dao.execWrite(ctx, uid, func() error {
		return r.dao.db.WithContext(ctx).
			Model(&model.Notification{}).
			Where("uid = ? AND is_read = ?", uid, false).
			Update("is_read", true).Error
	})
}

// DeleteAllByUID 删除用户的全部通知
func (r *notificationRepository) DeleteAllByUID(ctx context.Context, uid int64) error {
	return r.dao.execWrite(ctx, uid, func() error {
		return r.dao.db.WithContext(ctx).
			Where("uid = ?", uid).
			Delete(&model.Notification{}).Error
	})
}

// CountAll 获取全站通知数量
func (r *notificationRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.dao.db.WithContext(ctx).
		Model(&model.Notification{}).
		Count(&count).Error
	return count, err
}

// CountUnreadAll 获取全站未读通知数量
func (r *notificationRepository) CountUnreadAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.dao.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("is_read = ?", false).
		Count(&count).Error
	return count, err
}
