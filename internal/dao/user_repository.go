package dao

import (
	"context"
	"time"

	"github.com/haierkeys/smart-mark-service/internal/domain"
	"github.com/haierkeys/smart-mark-service/internal/model"
	"github.com/haierkeys/smart-mark-service/pkg/timex"
)

// userRepository 实现 domain.UserRepository 接口
type userRepository struct {
	dao *Dao
}

// NewUserRepository 创建 UserRepository 实例
func NewUserRepository(dao *Dao) domain.UserRepository {
	return &userRepository{dao: dao}
}

func (r *userRepository) toDomain(m *model.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		UID:       m.UID,
		Email:     m.Email,
		Username:  m.Username,
		Password:  m.Password,
		Avatar:    m.Avatar,
		IsAdmin:   m.IsAdmin,
		IsDeleted: m.IsDeleted,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
		DeletedAt: time.Time(m.DeletedAt),
	}
}

func (r *userRepository) toModel(u *domain.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		UID:       u.UID,
		Email:     u.Email,
		Username:  u.Username,
		Password:  u.Password,
		Avatar:    u.Avatar,
		IsAdmin:   u.IsAdmin,
		IsDeleted: u.IsDeleted,
		CreatedAt: timex.Time(u.CreatedAt),
		UpdatedAt: timex.Time(u.UpdatedAt),
		DeletedAt: timex.Time(u.DeletedAt),
	}
}

// GetByUID 根据UID获取用户
func (r *userRepository) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	var m model.User
	err := r.dao.db.WithContext(ctx).
		Where("uid = ? AND is_deleted = ?", uid, false).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByEmail 根据邮箱获取用户
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m model.User
	err := r.dao.db.WithContext(ctx).
		Where("email = ? AND is_deleted = ?", email, false).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByUsername 根据用户名获取用户
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var m model.User
	err := r.dao.db.WithContext(ctx).
		Where("username = ? AND is_deleted = ?", username, false).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m := r.toModel(user)
	m.CreatedAt = timex.Now()
	m.UpdatedAt = timex.Now()

	err := r.dao.db.WithContext(ctx).Create(m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Update 更新用户
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	m := r.toModel(user)
	m.UpdatedAt = timex.Now()

	return r.dao.execWrite(ctx, m.UID, func() error {
		return r.dao.db.WithContext(ctx).
			Where("uid = ?", m.UID).
			Select("email", "username", "password", "avatar", "is_admin", "updated_at").
			Updates(m).Error
	})
}

// Delete 删除用户（软删除）
func (r *userRepository) Delete(ctx context.Context, uid int64) error {
	return r.dao.execWrite(ctx, uid, func() error {
		return r.dao.db.WithContext(ctx).
			Model(&model.User{}).
			Where("uid = ?", uid).
			Updates(map[string]interface{}{
				"is_deleted": true,
				"deleted_at": timex.Now(),
			}).Error
	})
}

// List 分页获取用户列表，按注册时间倒序
func (r *userRepository) List(ctx context.Context, page, pageSize int) ([]*domain.User, error) {
	var ms []*model.User
	offset := 0
	if page > 0 {
		offset = (page - 1) * pageSize
	}
	err := r.dao.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("uid DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	out := make([]*domain.User, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}

// Count 获取用户数量
func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.dao.db.WithContext(ctx).
		Model(&model.User{}).
		Where("is_deleted = ?", false).
		Count(&count).Error
	return count, err
}

// CountCreatedSince 统计指定时间之后注册的用户数量
func (r *userRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.dao.db.WithContext(ctx).
		Model(&model.User{}).
		Where("is_deleted = ? AND created_at >= ?", false, timex.Time(since)).
		Count(&count).Error
	return count, err
}
