package dao

import (
	"context"
	"time"

	"github.com/haierkeys/smart-mark-service/internal/domain"
	"github.com/haierkeys/smart-mark-service/internal/model"
	"github.com/haierkeys/smart-mark-service/pkg/timex"
)

// alarmRepository 实现 domain.AlarmRepository 接口
type alarmRepository struct {
	dao *Dao
}

// NewAlarmRepository 创建 AlarmRepository 实例
func NewAlarmRepository(dao *Dao) domain.AlarmRepository {
	return &alarmRepository{dao: dao}
}

func (r *alarmRepository) toDomain(m *model.Alarm) *domain.Alarm {
	if m == nil {
		return nil
	}
	return &domain.Alarm{
		ID:           m.ID,
		UID:          m.UID,
		Time:         m.Time,
		Message:      m.Message,
		Enabled:      m.Enabled,
		TriggeredDay: m.TriggeredDay,
		CreatedAt:    time.Time(m.CreatedAt),
		UpdatedAt:    time.Time(m.UpdatedAt),
	}
}

func (r *alarmRepository) toModel(a *domain.Alarm) *model.Alarm {
	if a == nil {
		return nil
	}
	return &model.Alarm{
		ID:           a.ID,
		UID:          a.UID,
		Time:         a.Time,
		Message:      a.Message,
		Enabled:      a.Enabled,
		TriggeredDay: a.TriggeredDay,
		CreatedAt:    timex.Time(a.CreatedAt),
		UpdatedAt:    timex.Time(a.UpdatedAt),
	}
}

// GetByID 根据ID获取闹钟
func (r *alarmRepository) GetByID(ctx context.Context, id string, uid int64) (*domain.Alarm, error) {
	var m model.Alarm
	err := r.dao.db.WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建闹钟
func (r *alarmRepository) Create(ctx context.Context, alarm *domain.Alarm, uid int64) (*domain.Alarm, error) {
	m := r.toModel(alarm)
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

// Update 更新闹钟
func (r *alarmRepository) Update(ctx context.Context, alarm *domain.Alarm, uid int64) (*domain.Alarm, error) {
	m := r.toModel(alarm)
	m.UID = uid
	m.UpdatedAt = timex.Now()

	err := r.dao.execWrite(ctx, uid, func() error {
		return r.dao.db.WithContext(ctx).
			Where("id = ? AND uid = ?", m.ID, uid).
			Select("alarm_time", "message", "enabled", "triggered_day", "updated_at").
			Updates(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Delete 删除闹钟，目标不存在时不报错
func (r *alarmRepository) Delete(ctx context.Context, id string, uid int64) error {
	return r.dao.execWrite(ctx, uid, func() error {
		return r.dao.db.WithContext(ctx).
			Where("id = ? AND uid = ?", id, uid).
			Delete(&model.Alarm{}).Error
	})
}

// DeleteAllByUID 删除用户的全部闹钟
func (r *alarmRepository) DeleteAllByUID(ctx context.Context, uid int64) error {
	return r.dao.execWrite(ctx, uid, func() error {
		return r.dao.db.WithContext(ctx).
			Where("uid = ?", uid).
			Delete(&model.Alarm{}).Error
	})
}

// ListByUID 获取用户的闹钟列表
func (r *alarmRepository) ListByUID(ctx context.Context, uid int64) ([]*domain.Alarm, error) {
	var ms []*model.Alarm
	err := r.dao.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("created_at ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Alarm, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}

// ListEnabled 获取全部已启用的闹钟，供轮询任务使用
func (r *alarmRepository) ListEnabled(ctx context.Context) ([]*domain.Alarm, error) {
	var ms []*model.Alarm
	err := r.dao.db.WithContext(ctx).
		Where("enabled = ?", true).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Alarm, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}

// UpdateTriggeredDay 登记闹钟触发日
func (r *alarmRepository) UpdateTriggeredDay(ctx context.Context, id string, uid int64, day string) error {
	return r.dao.execWrite(ctx, uid, func() error {
		return r.dao.db.WithContext(ctx).
			Model(&model.Alarm{}).
			Where("id = ? AND uid = ?", id, uid).
			Update("triggered_day", day).Error
	})
}

// CountEnabledByUID 获取用户的已启用闹钟数量
func (r *alarmRepository) CountEnabledByUID(ctx context.Context, uid int64) (int64, error) {
	var count int64
	err := r.dao.db.WithContext(ctx).
		Model(&model.Alarm{}).
		Where("uid = ? AND enabled = ?", uid, true).
		Count(&count).Error
	return count, err
}

// CountEnabledAll 获取全站已启用闹钟数量
func (r *alarmRepository) CountEnabledAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.dao.db.WithContext(ctx).
		Model(&model.Alarm{}).
		Where("enabled = ?", true).
		Count(&count).Error
	return count, err
}
