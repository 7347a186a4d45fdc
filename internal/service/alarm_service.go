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

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// defaultAlarmMessage 闹钟提醒的缺省文案
const defaultAlarmMessage = "Alarm"

// AlarmFiredPush 闹钟触发时推送给客户端的数据
// PlaySound 由用户的声音偏好决定，播放失败不影响通知落库
type AlarmFiredPush struct {
	AlarmID   string `json:"alarmId"`
	Time      string `json:"time"`
	Message   string `json:"message"`
	PlaySound bool   `json:"playSound"`
}

// AlarmService 定义闹钟业务服务接口
// 闹钟按 HH:MM 每日重复，triggeredDay 日期戳保证每天至多触发一次
type AlarmService interface {
	// Add 创建闹钟，时间为空或非法时返回参数错误
	Add(ctx context.Context, uid int64, params *dto.AlarmCreateRequest) (*dto.AlarmDTO, error)

	// Update 更新闹钟
	Update(ctx context.Context, uid int64, params *dto.AlarmUpdateRequest) (*dto.AlarmDTO, error)

	// Toggle 切换闹钟启用状态
	Toggle(ctx context.Context, uid int64, id string) (*dto.AlarmDTO, error)

	// Delete 删除闹钟，目标不存在时视为成功
	Delete(ctx context.Context, uid int64, id string) error

	// List 获取用户的闹钟列表
	List(ctx context.Context, uid int64) ([]*dto.AlarmDTO, error)

	// Poll 轮询一次全部启用的闹钟，触发到点且今日未触发的
	Poll(ctx context.Context) error
}

// alarmService 实现 AlarmService 接口
type alarmService struct {
	alarmRepo           domain.AlarmRepository
	settingRepo         domain.SettingRepository
	notificationService NotificationService
	pusher              Pusher
	logger              *zap.Logger
	config              *ServiceConfig
	now                 func() time.Time
}

// NewAlarmService 创建 AlarmService 实例
func NewAlarmService(
	alarmRepo domain.AlarmRepository,
	settingRepo domain.SettingRepository,
	notificationService NotificationService,
	pusher Pusher,
	logger *zap.Logger,
	config *ServiceConfig,
) AlarmService {
	if pusher == nil {
		pusher = NopPusher()
	}
	return &alarmService{
		alarmRepo:           alarmRepo,
		settingRepo:         settingRepo,
		notificationService: notificationService,
		pusher:              pusher,
		logger:              logger,
		config:              config,
		now:                 time.Now,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *alarmService) domainToDTO(a *domain.Alarm) *dto.AlarmDTO {
	if a == nil {
		return nil
	}
	return &dto.AlarmDTO{
		ID:           a.ID,
		Time:         a.Time,
		Message:      a.Message,
		Enabled:      a.Enabled,
		TriggeredDay: a.TriggeredDay,
		CreatedAt:    timex.Time(a.CreatedAt),
		UpdatedAt:    timex.Time(a.UpdatedAt),
	}
}

// fallbackMessage 返回缺省提醒文案
func (s *alarmService) fallbackMessage() string {
	if s.config != nil && s.config.App.DefaultAlarmMessage != "" {
		return s.config.App.DefaultAlarmMessage
	}
	return defaultAlarmMessage
}

// Add 创建闹钟，时间为空或非法时返回参数错误
func (s *alarmService) Add(ctx context.Context, uid int64, params *dto.AlarmCreateRequest) (*dto.AlarmDTO, error) {
	if params.Time == "" {
		return nil, code.ErrorAlarmTimeEmpty
	}
	if !util.IsValidAlarmTime(params.Time) {
		return nil, code.ErrorAlarmTimeNotValid
	}

	message := params.Message
	if message == "" {
		message = s.fallbackMessage()
	}

	enabled := true
	if params.Enabled != nil {
		enabled = *params.Enabled
	}

	now := s.now()
	alarm := &domain.Alarm{
		ID:        uuid.NewString(),
		UID:       uid,
		Time:      params.Time,
		Message:   message,
		Enabled:   enabled,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.alarmRepo.Create(ctx, alarm, uid)
	if err != nil {
		return nil, code.ErrorAlarmCreate.Clone().WithDetails(err.Error())
	}
	return s.domainToDTO(created), nil
}

// Update 更新闹钟
func (s *alarmService) Update(ctx context.Context, uid int64, params *dto.AlarmUpdateRequest) (*dto.AlarmDTO, error) {
	existing, err := s.alarmRepo.GetByID(ctx, params.ID, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorAlarmNotFound
		}
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	if params.Time != "" {
		if !util.IsValidAlarmTime(params.Time) {
			return nil, code.ErrorAlarmTimeNotValid
		}
		// 时间变更后允许当天重新触发
		if params.Time != existing.Time {
			existing.TriggeredDay = ""
		}
		existing.Time = params.Time
	}
	if params.Message != "" {
		existing.Message = params.Message
	}
	if params.Enabled != nil {
		existing.Enabled = *params.Enabled
	}
	existing.UpdatedAt = s.now()

	updated, err := s.alarmRepo.Update(ctx, existing, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	return s.domainToDTO(updated), nil
}

// Toggle 切换闹钟启用状态
func (s *alarmService) Toggle(ctx context.Context, uid int64, id string) (*dto.AlarmDTO, error) {
	existing, err := s.alarmRepo.GetByID(ctx, id, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorAlarmNotFound
		}
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	existing.Enabled = !existing.Enabled
	existing.UpdatedAt = s.now()

	updated, err := s.alarmRepo.Update(ctx, existing, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	return s.domainToDTO(updated), nil
}

// Delete 删除闹钟，目标不存在时视为成功
func (s *alarmService) Delete(ctx context.Context, uid int64, id string) error {
	if err := s.alarmRepo.Delete(ctx, id, uid); err != nil {
		return code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	return nil
}

// List 获取用户的闹钟列表
func (s *alarmService) List(ctx context.Context, uid int64) ([]*dto.AlarmDTO, error) {
	list, err := s.alarmRepo.ListByUID(ctx, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	out := make([]*dto.AlarmDTO, 0, len(list))
	for _, a := range list {
		out = append(out, s.domainToDTO(a))
	}
	return out, nil
}

// Poll 轮询一次全部启用的闹钟，触发到点且今日未触发的
// 单条闹钟处理失败只记录日志，不中断本轮其余闹钟
func (s *alarmService) Poll(ctx context.Context) error {
	now := s.now()

	alarms, err := s.alarmRepo.ListEnabled(ctx)
	if err != nil {
		return err
	}

	for _, alarm := range alarms {
		if !alarm.ShouldFire(now) {
			continue
		}
		s.fire(ctx, alarm, now)
	}
	return nil
}

// fire 触发单条闹钟：先登记触发日保证当日只触发一次，再追加通知并推送
func (s *alarmService) fire(ctx context.Context, alarm *domain.Alarm, now time.Time) {
	day := util.CalendarDate(now)
	if err := s.alarmRepo.UpdateTriggeredDay(ctx, alarm.ID, alarm.UID, day); err != nil {
		if s.logger != nil {
			s.logger.Error("AlarmService.Poll stamp triggered day failed",
				zap.Int64("uid", alarm.UID),
				zap.String("alarmId", alarm.ID),
				zap.Error(err),
			)
		}
		return
	}

	_, err := s.notificationService.Append(ctx, alarm.UID, &domain.Notification{
		Type:    domain.NotificationTypeAlarm,
		Title:   alarm.Message,
		Message: alarm.Time,
		Icon:    "bell",
		Color:   "orange",
	})
	if err != nil && s.logger != nil {
		s.logger.Error("AlarmService.Poll notification append failed",
			zap.Int64("uid", alarm.UID),
			zap.String("alarmId", alarm.ID),
			zap.Error(err),
		)
	}

	// 声音偏好只影响客户端提示，读取失败按开启处理
	playSound := true
	if setting, err := s.settingRepo.GetByUID(ctx, alarm.UID); err == nil && setting != nil {
		playSound = setting.AlarmSoundEnabled
	}

	s.pusher.PushToUser(alarm.UID, "alarm", &AlarmFiredPush{
		AlarmID:   alarm.ID,
		Time:      alarm.Time,
		Message:   alarm.Message,
		PlaySound: playSound,
	})
}

// 确保 alarmService 实现了 AlarmService 接口
var _ AlarmService = (*alarmService)(nil)
