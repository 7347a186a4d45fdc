package service

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/smart-mark-service/internal/domain"

	"gorm.io/gorm"
)

type mockStatsUserRepo struct {
	domain.UserRepository
	users []*domain.User
}

func (m *mockStatsUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

func (m *mockStatsUserRepo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	for _, u := range m.users {
		if !u.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (m *mockStatsUserRepo) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	for _, u := range m.users {
		if u.UID == uid {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type mockStatsBookmarkRepo struct {
	domain.BookmarkRepository
	total, future, today int64
}

func (m *mockStatsBookmarkRepo) CountAll(ctx context.Context) (int64, error)       { return m.total, nil }
func (m *mockStatsBookmarkRepo) CountFutureAll(ctx context.Context) (int64, error) { return m.future, nil }
func (m *mockStatsBookmarkRepo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	return m.today, nil
}

type mockStatsNotificationRepo struct {
	domain.NotificationRepository
	total, unread int64
}

func (m *mockStatsNotificationRepo) CountAll(ctx context.Context) (int64, error) { return m.total, nil }
func (m *mockStatsNotificationRepo) CountUnreadAll(ctx context.Context) (int64, error) {
	return m.unread, nil
}

type mockStatsAlarmRepo struct {
	domain.AlarmRepository
	enabled int64
}

func (m *mockStatsAlarmRepo) CountEnabledAll(ctx context.Context) (int64, error) {
	return m.enabled, nil
}

func TestAdminService_Stats_AvgBookmarksPerUser(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		userCount int
		bookmarks int64
		wantAvg   float64
	}{
		{name: "no users no division error", userCount: 0, bookmarks: 0, wantAvg: 0},
		{name: "no users with orphan bookmarks", userCount: 0, bookmarks: 5, wantAvg: 0},
		{name: "exact", userCount: 2, bookmarks: 8, wantAvg: 4},
		{name: "one decimal place", userCount: 3, bookmarks: 7, wantAvg: 2.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := make([]*domain.User, tt.userCount)
			for i := range users {
				users[i] = &domain.User{UID: int64(i + 1)}
			}
			svc := &adminService{
				userRepo:         &mockStatsUserRepo{users: users},
				bookmarkRepo:     &mockStatsBookmarkRepo{total: tt.bookmarks},
				notificationRepo: &mockStatsNotificationRepo{},
				alarmRepo:        &mockStatsAlarmRepo{},
				now:              time.Now,
			}

			got, err := svc.Stats(ctx)
			if err != nil {
				t.Fatalf("Stats failed: %v", err)
			}
			if got.AvgBookmarksPerUser != tt.wantAvg {
				t.Errorf("avgBookmarksPerUser = %v, want %v", got.AvgBookmarksPerUser, tt.wantAvg)
			}
		})
	}
}

func TestAdminService_Stats_TodayCounters(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 18, 15, 0, 0, 0, time.Local)

	users := []*domain.User{
		{UID: 1, CreatedAt: now.Add(-2 * time.Hour)},           // today
		{UID: 2, CreatedAt: now.AddDate(0, 0, -3)},             // earlier
		{UID: 3, CreatedAt: now.Add(-16 * time.Hour)},          // yesterday evening
	}
	svc := &adminService{
		userRepo:         &mockStatsUserRepo{users: users},
		bookmarkRepo:     &mockStatsBookmarkRepo{total: 10, future: 4, today: 2},
		notificationRepo: &mockStatsNotificationRepo{total: 6, unread: 3},
		alarmRepo:        &mockStatsAlarmRepo{enabled: 2},
		now:              func() time.Time { return now },
	}

	got, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if got.NewUsersToday != 1 {
		t.Errorf("newUsersToday = %d, want 1", got.NewUsersToday)
	}
	if got.NewBookmarksToday != 2 {
		t.Errorf("newBookmarksToday = %d, want 2", got.NewBookmarksToday)
	}
	if got.FutureBookmarks != 4 {
		t.Errorf("futureBookmarks = %d, want 4", got.FutureBookmarks)
	}
	if got.UnreadNotifications != 3 {
		t.Errorf("unreadNotifications = %d, want 3", got.UnreadNotifications)
	}
}

func TestAdminService_DeleteUser_AdminProtected(t *testing.T) {
	ctx := context.Background()
	svc := &adminService{
		userRepo: &mockStatsUserRepo{users: []*domain.User{
			{UID: 1, IsAdmin: true},
		}},
		now: time.Now,
	}

	err := svc.DeleteUser(ctx, 1)
	if err == nil {
		t.Fatal("deleting an admin user should fail")
	}
}
