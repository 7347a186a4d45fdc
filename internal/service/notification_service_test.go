package service

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/smart-mark-service/internal/domain"
	"github.com/haierkeys/smart-mark-service/pkg/code"

	"gorm.io/gorm"
)

type mockNotificationRepo struct {
	domain.NotificationRepository
	notifications    []*domain.Notification
	markReadCalls    int
	markAllReadCalls int
}

func (m *mockNotificationRepo) GetByID(ctx context.Context, id string, uid int64) (*domain.Notification, error) {
	for _, n := range m.notifications {
		if n.ID == id && n.UID == uid {
			return n, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) GetAnyByID(ctx context.Context, id string) (*domain.Notification, error) {
	for _, n := range m.notifications {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *domain.Notification, uid int64) (*domain.Notification, error) {
	m.notifications = append(m.notifications, n)
	return n, nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id string, uid int64) error {
	m.markReadCalls++
	for _, n := range m.notifications {
		if n.ID == id && n.UID == uid {
			n.IsRead = true
		}
	}
	return nil
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, uid int64) error {
	m.markAllReadCalls++
	for _, n := range m.notifications {
		if n.UID == uid {
			n.IsRead = true
		}
	}
	return nil
}

func (m *mockNotificationRepo) CountUnreadByUID(ctx context.Context, uid int64) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.UID == uid && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func newNotificationServiceForTest(repo *mockNotificationRepo) *notificationService {
	return &notificationService{
		notificationRepo: repo,
		pusher:           NopPusher(),
		now:              time.Now,
	}
}

// 已读标记单向生效，重复标记不报错也不重复写库
func TestNotificationService_MarkRead_Monotonic(t *testing.T) {
	ctx := context.Background()
	repo := &mockNotificationRepo{notifications: []*domain.Notification{
		{ID: "n1", UID: 1, Type: domain.NotificationTypeSystem},
	}}
	svc := newNotificationServiceForTest(repo)

	if err := svc.MarkRead(ctx, 1, "n1"); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	if !repo.notifications[0].IsRead {
		t.Fatal("notification should be read")
	}

	// 第二次标记直接成功，不再触发写入
	if err := svc.MarkRead(ctx, 1, "n1"); err != nil {
		t.Fatalf("repeat MarkRead failed: %v", err)
	}
	if repo.markReadCalls != 1 {
		t.Errorf("markReadCalls = %d, want 1", repo.markReadCalls)
	}
}

func TestNotificationService_MarkRead_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := newNotificationServiceForTest(&mockNotificationRepo{})

	if err := svc.MarkRead(ctx, 1, "missing"); err != code.ErrorNotificationNotFound {
		t.Errorf("MarkRead error = %v, want %v", err, code.ErrorNotificationNotFound)
	}
}

func TestNotificationService_MarkRead_OtherUsersRecord(t *testing.T) {
	ctx := context.Background()
	repo := &mockNotificationRepo{notifications: []*domain.Notification{
		{ID: "n1", UID: 2},
	}}
	svc := newNotificationServiceForTest(repo)

	// 他人的通知报无权限，NotFound 只针对不存在的 id
	if err := svc.MarkRead(ctx, 1, "n1"); err != code.ErrorNoPermission {
		t.Errorf("MarkRead error = %v, want %v", err, code.ErrorNoPermission)
	}
	if repo.notifications[0].IsRead {
		t.Error("other user's notification must stay unread")
	}
}

// 没有未读时 markAllRead 不报错也不改变状态
func TestNotificationService_MarkAllRead_NoUnreadNoop(t *testing.T) {
	ctx := context.Background()
	repo := &mockNotificationRepo{notifications: []*domain.Notification{
		{ID: "n1", UID: 1, IsRead: true},
		{ID: "n2", UID: 1, IsRead: true},
	}}
	svc := newNotificationServiceForTest(repo)

	if err := svc.MarkAllRead(ctx, 1); err != nil {
		t.Fatalf("MarkAllRead failed: %v", err)
	}

	count, err := svc.UnreadCount(ctx, 1)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 0 {
		t.Errorf("unread = %d, want 0", count)
	}
	for _, n := range repo.notifications {
		if !n.IsRead {
			t.Error("all notifications must stay read")
		}
	}
}

// markAllRead 只翻转调用方自己的未读通知
func TestNotificationService_MarkAllRead_OnlyOwnRows(t *testing.T) {
	ctx := context.Background()
	repo := &mockNotificationRepo{notifications: []*domain.Notification{
		{ID: "n1", UID: 1},
		{ID: "n2", UID: 1},
		{ID: "n3", UID: 2},
	}}
	svc := newNotificationServiceForTest(repo)

	if err := svc.MarkAllRead(ctx, 1); err != nil {
		t.Fatalf("MarkAllRead failed: %v", err)
	}

	if !repo.notifications[0].IsRead || !repo.notifications[1].IsRead {
		t.Error("caller's notifications should all be read")
	}
	if repo.notifications[2].IsRead {
		t.Error("other user's notification must stay unread")
	}
}

func TestNotificationService_UnreadCount(t *testing.T) {
	ctx := context.Background()
	repo := &mockNotificationRepo{notifications: []*domain.Notification{
		{ID: "n1", UID: 1},
		{ID: "n2", UID: 1, IsRead: true},
		{ID: "n3", UID: 1},
	}}
	svc := newNotificationServiceForTest(repo)

	count, err := svc.UnreadCount(ctx, 1)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 2 {
		t.Errorf("unread = %d, want 2", count)
	}
}

func TestNotificationService_Append_SetsDefaults(t *testing.T) {
	ctx := context.Background()
	repo := &mockNotificationRepo{}
	svc := newNotificationServiceForTest(repo)

	got, err := svc.Append(ctx, 1, &domain.Notification{
		Type:    domain.NotificationTypeSystem,
		Message: "hello",
		IsRead:  true, // 追加时强制为未读
	})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if got.ID == "" {
		t.Error("appended notification should get an id")
	}
	if got.IsRead {
		t.Error("appended notification should start unread")
	}
}
