package dao

import (
	"context"
	"errors"

	"github.com/haierkeys/smart-mark-service/internal/domain"
	"github.com/haierkeys/smart-mark-service/internal/model"
	"github.com/haierkeys/smart-mark-service/pkg/convert"
	"github.com/haierkeys/smart-mark-service/pkg/timex"

	"gorm.io/gorm"
)

// settingRepository 实现 domain.SettingRepository 接口
type settingRepository struct {
	dao *Dao
}

// NewSettingRepository 创建 SettingRepository 实例
func NewSettingRepository(dao *Dao) domain.SettingRepository {
	return &settingRepository{dao: dao}
}

// 字段名与类型一一对应，直接用 StructAssign 拷贝
func (r *settingRepository) toDomain(m *model.Setting) *domain.Setting {
	if m == nil {
		return nil
	}
	return convert.StructAssign(m, &domain.Setting{}).(*domain.Setting)
}

// GetByUID 获取用户的偏好设置，不存在时返回默认值
func (r *settingRepository) GetByUID(ctx context.Context, uid int64) (*domain.Setting, error) {
	var m model.Setting
	err := r.dao.db.WithContext(ctx).
		Where("uid = ?", uid).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.DefaultSetting(uid), nil
		}
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Save 创建或更新用户的偏好设置
func (r *settingRepository) Save(ctx context.Context, setting *domain.Setting, uid int64) (*domain.Setting, error) {
	m := &model.Setting{
		UID:               uid,
		AlarmSoundEnabled: setting.AlarmSoundEnabled,
		DefaultFilterMode: setting.DefaultFilterMode,
		Lang:              setting.Lang,
		UpdatedAt:         timex.Now(),
	}

	err := r.dao.execWrite(ctx, uid, func() error {
		var existing model.Setting
		e := r.dao.db.WithContext(ctx).Where("uid = ?", uid).First(&existing).Error
		if errors.Is(e, gorm.ErrRecordNotFound) {
			m.CreatedAt = timex.Now()
			return r.dao.db.WithContext(ctx).Create(m).Error
		}
		if e != nil {
			return e
		}
		m.ID = existing.ID
		m.CreatedAt = existing.CreatedAt
		return r.dao.db.WithContext(ctx).
			Where("uid = ?", uid).
			Select("alarm_sound_enabled", "default_filter_mode", "lang", "updated_at").
			Updates(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// DeleteByUID 删除用户的偏好设置
func (r *settingRepository) DeleteByUID(ctx context.Context, uid int64) error {
	return r.dao.execWrite(ctx, uid, func() error {
		return r.dao.db.WithContext(ctx).
			Where("uid = ?", uid).
			Delete(&model.Setting{}).Error
	})
}
