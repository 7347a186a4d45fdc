package service

import (
	"context"
	"time"

	"github.com/haierkeys/smart-mark-service/internal/domain"
	"github.com/haierkeys/smart-mark-service/internal/dto"
	"github.com/haierkeys/smart-mark-service/pkg/code"
	"github.com/haierkeys/smart-mark-service/pkg/timex"

	"go.uber.org/zap"
)

// SettingService 定义用户偏好设置业务服务接口
type SettingService interface {
	// Get 获取用户偏好，没有记录时返回默认值
	Get(ctx context.Context, uid int64) (*dto.SettingDTO, error)

	// Save 保存用户偏好，只更新请求中给出的字段
	Save(ctx context.Context, uid int64, params *dto.SettingSaveRequest) (*dto.SettingDTO, error)
}

// settingService 实现 SettingService 接口
type settingService struct {
	settingRepo domain.SettingRepository
	logger      *zap.Logger
	now         func() time.Time
}

// NewSettingService 创建 SettingService 实例
func NewSettingService(settingRepo domain.SettingRepository, logger *zap.Logger) SettingService {
	return &settingService{
		settingRepo: settingRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *settingService) domainToDTO(setting *domain.Setting) *dto.SettingDTO {
	if setting == nil {
		return nil
	}
	return &dto.SettingDTO{
		AlarmSoundEnabled: setting.AlarmSoundEnabled,
		DefaultFilterMode: setting.DefaultFilterMode,
		Lang:              setting.Lang,
		UpdatedAt:         timex.Time(setting.UpdatedAt),
	}
}

// Get 获取用户偏好，没有记录时返回默认值
func (s *settingService) Get(ctx context.Context, uid int64) (*dto.SettingDTO, error) {
	setting, err := s.settingRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	return s.domainToDTO(setting), nil
}

// Save 保存用户偏好，只更新请求中给出的字段
func (s *settingService) Save(ctx context.Context, uid int64, params *dto.SettingSaveRequest) (*dto.SettingDTO, error) {
	setting, err := s.settingRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	if params.AlarmSoundEnabled != nil {
		setting.AlarmSoundEnabled = *params.AlarmSoundEnabled
	}
	if params.DefaultFilterMode != "" {
		setting.DefaultFilterMode = params.DefaultFilterMode
	}
	if params.Lang != "" {
		setting.Lang = params.Lang
	}
	setting.UpdatedAt = s.now()

	saved, err := s.settingRepo.Save(ctx, setting, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	return s.domainToDTO(saved), nil
}

// 确保 settingService 实现了 SettingService 接口
var _ SettingService = (*settingService)(nil)
