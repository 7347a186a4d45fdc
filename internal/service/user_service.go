package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/haierkeys/smart-mark-service/internal/domain"
	"github.com/haierkeys/smart-mark-service/internal/dto"
	"github.com/haierkeys/smart-mark-service/pkg/app"
	"github.com/haierkeys/smart-mark-service/pkg/code"
	"github.com/haierkeys/smart-mark-service/pkg/timex"
	"github.com/haierkeys/smart-mark-service/pkg/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// defaultAvatarURL 头像地址模板，%s 替换为用户名
const defaultAvatarURL = "https://api.dicebear.com/7.x/initials/svg?seed=%s"

// UserService 定义用户业务服务接口
type UserService interface {
	// Register 用户注册，成功后追加欢迎通知
	Register(ctx context.Context, params *dto.UserCreateRequest) (*dto.UserDTO, error)

	// Login 用户登录
	Login(ctx context.Context, params *dto.UserLoginRequest, clientIP string) (*dto.UserDTO, error)

	// ChangePassword 修改密码
	ChangePassword(ctx context.Context, uid int64, params *dto.UserChangePasswordRequest) error

	// GetInfo 获取用户信息
	GetInfo(ctx context.Context, uid int64) (*dto.UserDTO, error)

	// Stats 获取单用户聚合统计
	Stats(ctx context.Context, uid int64) (*dto.UserStatsDTO, error)

	// DeleteAccount 删除用户及其全部数据
	DeleteAccount(ctx context.Context, uid int64) error
}

// userService 实现 UserService 接口
type userService struct {
	userRepo         domain.UserRepository
	bookmarkRepo     domain.BookmarkRepository
	notificationRepo domain.NotificationRepository
	alarmRepo        domain.AlarmRepository
	settingRepo      domain.SettingRepository
	tokenManager     app.TokenManager
	logger           *zap.Logger
	config           *ServiceConfig
	now              func() time.Time
}

// NewUserService 创建 UserService 实例
func NewUserService(
	userRepo domain.UserRepository,
	bookmarkRepo domain.BookmarkRepository,
	notificationRepo domain.NotificationRepository,
	alarmRepo domain.AlarmRepository,
	settingRepo domain.SettingRepository,
	tokenManager app.TokenManager,
	logger *zap.Logger,
	config *ServiceConfig,
) UserService {
	return &userService{
		userRepo:         userRepo,
		bookmarkRepo:     bookmarkRepo,
		notificationRepo: notificationRepo,
		alarmRepo:        alarmRepo,
		settingRepo:      settingRepo,
		tokenManager:     tokenManager,
		logger:           logger,
		config:           config,
		now:              time.Now,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *userService) domainToDTO(user *domain.User) *dto.UserDTO {
	if user == nil {
		return nil
	}
	return &dto.UserDTO{
		UID:       user.UID,
		Email:     user.Email,
		Username:  user.Username,
		Avatar:    user.Avatar,
		IsAdmin:   user.IsAdmin,
		UpdatedAt: timex.Time(user.UpdatedAt),
		CreatedAt: timex.Time(user.CreatedAt),
	}
}

// avatarURL 生成用户头像地址
func (s *userService) avatarURL(username string) string {
	template := defaultAvatarURL
	if s.config != nil && s.config.User.AvatarURL != "" {
		template = s.config.User.AvatarURL
	}
	return fmt.Sprintf(template, url.QueryEscape(username))
}

// Register 用户注册，成功后追加欢迎通知
func (s *userService) Register(ctx context.Context, params *dto.UserCreateRequest) (*dto.UserDTO, error) {
	// 检查注册是否启用
	if s.config == nil || !s.config.User.RegisterIsEnable {
		return nil, code.ErrorUserRegisterIsDisable
	}

	// 验证用户名格式
	if !util.IsValidUsername(params.Username) {
		return nil, code.ErrorUserUsernameNotValid
	}

	// 验证密码一致性
	if params.Password != params.ConfirmPassword {
		return nil, code.ErrorPasswordNotValid
	}

	// 检查邮箱是否已存在
	emailUser, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery
	}
	if emailUser != nil {
		return nil, code.ErrorUserEmailAlreadyExists
	}

	// 生成密码哈希
	password, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		return nil, code.ErrorPasswordNotValid
	}

	// 创建用户
	newUser := &domain.User{
		Username: params.Username,
		Email:    params.Email,
		Password: password,
		Avatar:   s.avatarURL(params.Username),
	}

	user, err := s.userRepo.Create(ctx, newUser)
	if err != nil {
		return nil, code.ErrorUserRegister.Clone().WithDetails(err.Error())
	}

	// 欢迎通知失败不影响注册结果
	_, err = s.notificationRepo.Create(ctx, &domain.Notification{
		ID:        uuid.NewString(),
		UID:       user.UID,
		Type:      domain.NotificationTypeSystem,
		Title:     "Welcome to SmartMark",
		Message:   fmt.Sprintf("Hi %s, start saving your first bookmark!", user.Username),
		Icon:      "sparkles",
		Color:     "green",
		CreatedAt: s.now(),
	}, user.UID)
	if err != nil && s.logger != nil {
		s.logger.Warn("UserService.Register welcome notification failed",
			zap.Int64("uid", user.UID),
			zap.Error(err),
		)
	}

	// 生成 Token
	token, err := s.tokenManager.Generate(user.UID, user.Username, "")
	if err != nil {
		return nil, code.ErrorTokenGenerate.Clone().WithDetails(err.Error())
	}

	result := s.domainToDTO(user)
	result.Token = token
	return result, nil
}

// Login 用户登录，账号可以是邮箱或用户名
func (s *userService) Login(ctx context.Context, params *dto.UserLoginRequest, clientIP string) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err != nil {
		user, err = s.userRepo.GetByUsername(ctx, params.Email)
	}
	if err != nil {
		// 安全考虑：不暴露用户是否存在，统一返回用户名或密码错误
		return nil, code.ErrorUserLoginPasswordFailed
	}

	// 验证密码
	if !util.CheckPasswordHash(user.Password, params.Password) {
		return nil, code.ErrorUserLoginPasswordFailed
	}

	// 生成 Token
	token, err := s.tokenManager.Generate(user.UID, user.Username, clientIP)
	if err != nil {
		return nil, code.ErrorTokenGenerate.Clone().WithDetails(err.Error())
	}

	result := s.domainToDTO(user)
	result.Token = token
	return result, nil
}

// ChangePassword 修改密码
func (s *userService) ChangePassword(ctx context.Context, uid int64, params *dto.UserChangePasswordRequest) error {
	// 验证密码一致性
	if params.Password != params.ConfirmPassword {
		return code.ErrorPasswordNotValid
	}

	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorUserNotFound
		}
		return code.ErrorDBQuery
	}

	// 验证旧密码
	if !util.CheckPasswordHash(user.Password, params.OldPassword) {
		return code.ErrorUserLoginPasswordFailed
	}

	password, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		return code.ErrorPasswordNotValid
	}

	user.Password = password
	return s.userRepo.Update(ctx, user)
}

// GetInfo 获取用户信息
func (s *userService) GetInfo(ctx context.Context, uid int64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserNotFound
		}
		return nil, code.ErrorDBQuery
	}
	return s.domainToDTO(user), nil
}

// Stats 获取单用户聚合统计
// futureBookmarks 只统计尚未到期的，today / thisWeek 按生效日期归档
func (s *userService) Stats(ctx context.Context, uid int64) (*dto.UserStatsDTO, error) {
	bookmarks, err := s.bookmarkRepo.ListByUID(ctx, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	now := s.now()
	stats := &dto.UserStatsDTO{
		TotalBookmarks:    int64(len(bookmarks)),
		FutureBookmarks:   domain.CountFiltered(bookmarks, domain.FilterQuery{Mode: domain.FilterModeFuture}, now),
		TodayBookmarks:    domain.CountFiltered(bookmarks, domain.FilterQuery{Mode: domain.FilterModeToday}, now),
		ThisWeekBookmarks: domain.CountFiltered(bookmarks, domain.FilterQuery{Mode: domain.FilterModeWeek}, now),
	}

	unread, err := s.notificationRepo.CountUnreadByUID(ctx, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	stats.UnreadNotifications = unread

	return stats, nil
}

// DeleteAccount 删除用户及其全部数据
// 先清理从属数据再软删用户，中途失败时用户记录保留，可重试
func (s *userService) DeleteAccount(ctx context.Context, uid int64) error {
	if _, err := s.userRepo.GetByUID(ctx, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorUserNotFound
		}
		return code.ErrorDBQuery
	}

	if err := s.bookmarkRepo.DeleteAllByUID(ctx, uid); err != nil {
		return code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	if err := s.notificationRepo.DeleteAllByUID(ctx, uid); err != nil {
		return code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	if err := s.alarmRepo.DeleteAllByUID(ctx, uid); err != nil {
		return code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	if err := s.settingRepo.DeleteByUID(ctx, uid); err != nil {
		return code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	if err := s.userRepo.Delete(ctx, uid); err != nil {
		return code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	return nil
}

// 确保 userService 实现了 UserService 接口
var _ UserService = (*userService)(nil)
