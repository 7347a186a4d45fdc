package dao

import (
	"context"
	"time"

	"github.com/haierkeys/smart-mark-service/internal/domain"
	"github.com/haierkeys/smart-mark-service/internal/model"
	"github.com/haierkeys/smart-mark-service/pkg/timex"
)

// bookmarkRepository 实现 domain.BookmarkRepository 接口
type bookmarkRepository struct {
	dao *Dao
}

// NewBookmarkRepository 创建 BookmarkRepository 实例
func NewBookmarkRepository(dao *Dao) domain.BookmarkRepository {
	return &bookmarkRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *bookmarkRepository) toDomain(m *model.Bookmark) *domain.Bookmark {
	if m == nil {
		return nil
	}
	return &domain.Bookmark{
		ID:            m.ID,
		UID:           m.UID,
		URL:           m.URL,
		Title:         m.Title,
		Domain:        m.Domain,
		Category:      m.Category,
		IsFuture:      m.IsFuture,
		ScheduledDate: time.Time(m.ScheduledDate),
		CreatedAt:     time.Time(m.CreatedAt),
		UpdatedAt:     time.Time(m.UpdatedAt),
	}
}

// toModel 将领域模型转换为数据库模型
func (r *bookmarkRepository) toModel(b *domain.Bookmark) *model.Bookmark {
	if b == nil {
		return nil
	}
	return &model.Bookmark{
		ID:            b.ID,
		UID:           b.UID,
		URL:           b.URL,
		Title:         b.Title,
		Domain:        b.Domain,
		Category:      b.Category,
		IsFuture:      b.IsFuture,
		ScheduledDate: timex.Time(b.ScheduledDate),
		CreatedAt:     timex.Time(b.CreatedAt),
		UpdatedAt:     timex.Time(b.UpdatedAt),
	}
}

// GetByID 根据ID获取书签
func (r *bookmarkRepository) GetByID(ctx context.Context, id string, uid int64) (*domain.Bookmark, error) {
	var m model.Bookmark
	err := r.dao.db.WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetAnyByID 不限归属获取书签，供归属校验使用
func (r *bookmarkRepository) GetAnyByID(ctx context.Context, id string) (*domain.Bookmark, error) {
	var m model.Bookmark
	err := r.dao.db.WithContext(ctx).
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建书签
func (r *bookmarkRepository) Create(ctx context.Context, bookmark *domain.Bookmark, uid int64) (*domain.Bookmark, error) {
	m := r.toModel(bookmark)
	m.UID = uid
	m.UpdatedAt = timex.Now()

	err := r.dao.execWrite(ctx, uid, func() error {
		return r.dao.db.WithContext(ctx).Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Update 更新书签
func (r *bookmarkRepository) Update(ctx context.Context, bookmark *domain.Bookmark, uid int64) (*domain.Bookmark, error) {
	m := r.toModel(bookmark)
	m.UID = uid
	m.UpdatedAt = timex.Now()

	err := r.dao.execWrite(ctx, uid, func() error {
		return r.dao.db.WithContext(ctx).
			Where("id = ? AND uid = ?", m.ID, uid).
			Select("url", "title", "domain", "category", "is_future", "scheduled_date", "created_at", "updated_at").
			Updates(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Delete 删除书签，目标不存在时不报错
func (r *bookmarkRepository) Delete(ctx context.Context, id string, uid int64) error {
	return r.dao.execWrite(ctx, uid, func() error {
		return r.dao.db.WithContext(ctx).
			Where("id = ? AND uid = ?", id, uid).
			Delete(&model.Bookmark{}).Error
	})
}

// DeleteAllByUID 删除用户的全部书签
func (r *bookmarkRepository) DeleteAllByUID(ctx context.Context, uid int64) error {
	return r.dao.execWrite(ctx, uid, func() error {
		return r.dao.db.WithContext(ctx).
			Where("uid = ?", uid).
			Delete(&model.Bookmark{}).Error
	})
}

// ListByUID 获取用户的书签列表，按创建时间倒序
func (r *bookmarkRepository) ListByUID(ctx context.Context, uid int64) ([]*domain.Bookmark, error) {
	var ms []*model.Bookmark
	err := r.dao.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Bookmark, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}

// ListPageByUID 分页获取用户的书签列表
func (r *bookmarkRepository) ListPageByUID(ctx context.Context, uid int64, page, pageSize int) ([]*domain.Bookmark, error) {
	var ms []*model.Bookmark
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

	out := make([]*domain.Bookmark, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}

// CountByUID 获取用户的书签数量
func (r *bookmarkRepository) CountByUID(ctx context.Context, uid int64) (int64, error) {
	var count int64
	err := r.dao.db.WithContext(ctx).
		Model(&model.Bookmark{}).
		Where("uid = ?", uid).
		Count(&count).Error
	return count, err
}

// CountAll 获取全站书签数量
func (r *bookmarkRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.dao.db.WithContext(ctx).
		Model(&model.Bookmark{}).
		Count(&count).Error
	return count, err
}

// CountFutureAll 获取全站预定书签数量
func (r *bookmarkRepository) CountFutureAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.dao.db.WithContext(ctx).
		Model(&model.Bookmark{}).
		Where("is_future = ?", true).
		Count(&count).Error
	return count, err
}

// CountFutureByUID 获取用户的预定书签数量
func (r *bookmarkRepository) CountFutureByUID(ctx context.Context, uid int64) (int64, error) {
	var count int64
	err := r.dao.db.WithContext(ctx).
		Model(&model.Bookmark{}).
		Where("uid = ? AND is_future = ?", uid, true).
		Count(&count).Error
	return count, err
}

// CountByDomain 按域名聚合书签数量，按数量倒序
func (r *bookmarkRepository) CountByDomain(ctx context.Context, limit int) ([]*domain.DomainCount, error) {
	var rows []*domain.DomainCount
	err := r.dao.db.WithContext(ctx).
		Model(&model.Bookmark{}).
		Select("domain, COUNT(*) AS count").
		Group("domain").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAllPage 分页获取全站书签，供管理端使用
func (r *bookmarkRepository) ListAllPage(ctx context.Context, page, pageSize int) ([]*domain.Bookmark, error) {
	var ms []*model.Bookmark
	offset := 0
	if page > 0 {
		offset = (page - 1) * pageSize
	}
	err := r.dao.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Bookmark, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}

// CountCreatedSince 统计指定时间之后创建的书签数量
func (r *bookmarkRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.dao.db.WithContext(ctx).
		Model(&model.Bookmark{}).
		Where("created_at >= ?", timex.Time(since)).
		Count(&count).Error
	return count, err
}

// DeleteAnyByID 不限归属删除书签，供管理端使用，目标不存在时不报错
func (r *bookmarkRepository) DeleteAnyByID(ctx context.Context, id string) error {
	return r.dao.execWrite(ctx, 0, func() error {
		return r.dao.db.WithContext(ctx).
			Where("id = ?", id).
			Delete(&model.Bookmark{}).Error
	})
}
