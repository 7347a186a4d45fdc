package service

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/smart-mark-service/internal/domain"
	"github.com/haierkeys/smart-mark-service/internal/dto"
	"github.com/haierkeys/smart-mark-service/pkg/app"
	"github.com/haierkeys/smart-mark-service/pkg/code"
	"github.com/haierkeys/smart-mark-service/pkg/util"

	"gorm.io/gorm"
)

type mockUserRepo struct {
	domain.UserRepository
	users   []*domain.User
	nextUID int64
}

func (m *mockUserRepo) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	for _, u := range m.users {
		if u.UID == uid && !u.IsDeleted {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email && !u.IsDeleted {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Username == username && !u.IsDeleted {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m.nextUID++
	user.UID = m.nextUID
	m.users = append(m.users, user)
	return user, nil
}

func (m *mockUserRepo) Delete(ctx context.Context, uid int64) error {
	for _, u := range m.users {
		if u.UID == uid {
			u.IsDeleted = true
		}
	}
	return nil
}

type mockTokenManager struct{}

func (mockTokenManager) Generate(uid int64, nickname, ip string) (string, error) {
	return "test-token", nil
}
func (mockTokenManager) Parse(token string) (*app.UserEntity, error) { return nil, nil }
func (mockTokenManager) Validate(token string) error                 { return nil }
func (mockTokenManager) GetSecretKey() string                        { return "" }

type mockCascadeSettingRepo struct {
	domain.SettingRepository
	deletedUIDs []int64
}

func (m *mockCascadeSettingRepo) DeleteByUID(ctx context.Context, uid int64) error {
	m.deletedUIDs = append(m.deletedUIDs, uid)
	return nil
}

func newUserServiceForTest(userRepo *mockUserRepo, notificationRepo *mockNotificationRepo) *userService {
	return &userService{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		tokenManager:     mockTokenManager{},
		config:           &ServiceConfig{User: UserServiceConfig{RegisterIsEnable: true}},
		now:              time.Now,
	}
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	userRepo := &mockUserRepo{}
	notificationRepo := &mockNotificationRepo{}
	svc := newUserServiceForTest(userRepo, notificationRepo)

	got, err := svc.Register(ctx, &dto.UserCreateRequest{
		Email:           "alice@example.com",
		Username:        "alice",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if got.Token == "" {
		t.Error("register should return a token")
	}
	if got.Avatar == "" {
		t.Error("register should fill an avatar url")
	}

	// 注册成功后追加欢迎通知
	if len(notificationRepo.notifications) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notificationRepo.notifications))
	}
	welcome := notificationRepo.notifications[0]
	if welcome.Type != domain.NotificationTypeSystem {
		t.Errorf("welcome type = %q, want system", welcome.Type)
	}
	if welcome.UID != got.UID {
		t.Errorf("welcome uid = %d, want %d", welcome.UID, got.UID)
	}
}

func TestUserService_Register_Validation(t *testing.T) {
	ctx := context.Background()
	existing, _ := util.GeneratePasswordHash("pw")

	tests := []struct {
		name     string
		enable   bool
		params   *dto.UserCreateRequest
		wantCode *code.Code
	}{
		{
			name:     "register disabled",
			enable:   false,
			params:   &dto.UserCreateRequest{Email: "a@b.com", Username: "alice", Password: "x", ConfirmPassword: "x"},
			wantCode: code.ErrorUserRegisterIsDisable,
		},
		{
			name:     "password mismatch",
			enable:   true,
			params:   &dto.UserCreateRequest{Email: "a@b.com", Username: "alice", Password: "x", ConfirmPassword: "y"},
			wantCode: code.ErrorPasswordNotValid,
		},
		{
			name:     "email taken",
			enable:   true,
			params:   &dto.UserCreateRequest{Email: "taken@example.com", Username: "alice", Password: "x", ConfirmPassword: "x"},
			wantCode: code.ErrorUserEmailAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := &mockUserRepo{users: []*domain.User{
				{UID: 1, Email: "taken@example.com", Password: existing},
			}, nextUID: 1}
			svc := newUserServiceForTest(userRepo, &mockNotificationRepo{})
			svc.config.User.RegisterIsEnable = tt.enable

			_, err := svc.Register(ctx, tt.params)
			if err != tt.wantCode {
				t.Errorf("Register error = %v, want %v", err, tt.wantCode)
			}
		})
	}
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	hash, _ := util.GeneratePasswordHash("secret123")
	userRepo := &mockUserRepo{users: []*domain.User{
		{UID: 1, Email: "alice@example.com", Username: "alice", Password: hash},
	}}
	svc := newUserServiceForTest(userRepo, &mockNotificationRepo{})

	got, err := svc.Login(ctx, &dto.UserLoginRequest{Email: "alice@example.com", Password: "secret123"}, "127.0.0.1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if got.Token == "" {
		t.Error("login should return a token")
	}

	// 账号字段也接受用户名
	got, err = svc.Login(ctx, &dto.UserLoginRequest{Email: "alice", Password: "secret123"}, "127.0.0.1")
	if err != nil {
		t.Fatalf("Login by username failed: %v", err)
	}
	if got.Token == "" {
		t.Error("login by username should return a token")
	}

	// 密码错误和用户不存在返回同一个错误
	_, err = svc.Login(ctx, &dto.UserLoginRequest{Email: "alice@example.com", Password: "wrong"}, "127.0.0.1")
	if err != code.ErrorUserLoginPasswordFailed {
		t.Errorf("wrong password error = %v, want %v", err, code.ErrorUserLoginPasswordFailed)
	}
	_, err = svc.Login(ctx, &dto.UserLoginRequest{Email: "nobody@example.com", Password: "secret123"}, "127.0.0.1")
	if err != code.ErrorUserLoginPasswordFailed {
		t.Errorf("unknown user error = %v, want %v", err, code.ErrorUserLoginPasswordFailed)
	}
}

func TestUserService_DeleteAccount_Cascade(t *testing.T) {
	ctx := context.Background()
	userRepo := &mockUserRepo{users: []*domain.User{{UID: 7, Email: "x@y.com"}}}
	bookmarks := &mockBookmarkDeleteAllRepo{}
	notifications := &mockNotificationDeleteAllRepo{}
	alarms := &mockAlarmDeleteAllRepo{}
	settings := &mockCascadeSettingRepo{}

	svc := &userService{
		userRepo:         userRepo,
		bookmarkRepo:     bookmarks,
		notificationRepo: notifications,
		alarmRepo:        alarms,
		settingRepo:      settings,
		tokenManager:     mockTokenManager{},
		now:              time.Now,
	}

	if err := svc.DeleteAccount(ctx, 7); err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}

	if len(bookmarks.deletedUIDs) != 1 || bookmarks.deletedUIDs[0] != 7 {
		t.Errorf("bookmark cascade = %v, want [7]", bookmarks.deletedUIDs)
	}
	if len(notifications.deletedUIDs) != 1 {
		t.Errorf("notification cascade = %v, want [7]", notifications.deletedUIDs)
	}
	if len(alarms.deletedUIDs) != 1 {
		t.Errorf("alarm cascade = %v, want [7]", alarms.deletedUIDs)
	}
	if len(settings.deletedUIDs) != 1 {
		t.Errorf("setting cascade = %v, want [7]", settings.deletedUIDs)
	}
	if _, err := svc.GetInfo(ctx, 7); err != code.ErrorUserNotFound {
		t.Errorf("user should be gone after delete, got %v", err)
	}
}

type mockBookmarkDeleteAllRepo struct {
	domain.BookmarkRepository
	deletedUIDs []int64
}

func (m *mockBookmarkDeleteAllRepo) DeleteAllByUID(ctx context.Context, uid int64) error {
	m.deletedUIDs = append(m.deletedUIDs, uid)
	return nil
}

type mockNotificationDeleteAllRepo struct {
	domain.NotificationRepository
	deletedUIDs []int64
}

func (m *mockNotificationDeleteAllRepo) DeleteAllByUID(ctx context.Context, uid int64) error {
	m.deletedUIDs = append(m.deletedUIDs, uid)
	return nil
}

type mockAlarmDeleteAllRepo struct {
	domain.AlarmRepository
	deletedUIDs []int64
}

func (m *mockAlarmDeleteAllRepo) DeleteAllByUID(ctx context.Context, uid int64) error {
	m.deletedUIDs = append(m.deletedUIDs, uid)
	return nil
}
