package service

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/smart-mark-service/internal/domain"
	"github.com/haierkeys/smart-mark-service/internal/dto"
	"github.com/haierkeys/smart-mark-service/pkg/code"
	"github.com/haierkeys/smart-mark-service/pkg/util"

	"gorm.io/gorm"
)

type mockBookmarkRepo struct {
	domain.BookmarkRepository
	bookmarks []*domain.Bookmark
	deleted   []string
}

func (m *mockBookmarkRepo) GetByID(ctx context.Context, id string, uid int64) (*domain.Bookmark, error) {
	for _, b := range m.bookmarks {
		if b.ID == id && b.UID == uid {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBookmarkRepo) GetAnyByID(ctx context.Context, id string) (*domain.Bookmark, error) {
	for _, b := range m.bookmarks {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBookmarkRepo) Create(ctx context.Context, bookmark *domain.Bookmark, uid int64) (*domain.Bookmark, error) {
	m.bookmarks = append(m.bookmarks, bookmark)
	return bookmark, nil
}

func (m *mockBookmarkRepo) Update(ctx context.Context, bookmark *domain.Bookmark, uid int64) (*domain.Bookmark, error) {
	for i, b := range m.bookmarks {
		if b.ID == bookmark.ID && b.UID == uid {
			m.bookmarks[i] = bookmark
		}
	}
	return bookmark, nil
}

func (m *mockBookmarkRepo) Delete(ctx context.Context, id string, uid int64) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockBookmarkRepo) ListByUID(ctx context.Context, uid int64) ([]*domain.Bookmark, error) {
	var out []*domain.Bookmark
	for _, b := range m.bookmarks {
		if b.UID == uid {
			out = append(out, b)
		}
	}
	return out, nil
}

func newBookmarkServiceForTest(repo *mockBookmarkRepo, notify *mockNotificationService, at time.Time) *bookmarkService {
	return &bookmarkService{
		bookmarkRepo:        repo,
		notificationService: notify,
		now:                 func() time.Time { return at },
	}
}

func TestBookmarkService_Create_FutureWithDate(t *testing.T) {
	ctx := context.Background()
	repo := &mockBookmarkRepo{}
	notify := &mockNotificationService{}
	svc := newBookmarkServiceForTest(repo, notify, time.Date(2025, 6, 18, 12, 0, 0, 0, time.Local))

	got, err := svc.Create(ctx, 1, &dto.BookmarkCreateRequest{
		URL:      "example.com",
		IsFuture: true,
		Date:     "2099-01-01",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if got.URL != "https://example.com" {
		t.Errorf("url = %q, want https prefix", got.URL)
	}
	if got.Domain != "example.com" {
		t.Errorf("domain = %q, want example.com", got.Domain)
	}
	if !got.IsFuture {
		t.Error("isFuture should be true")
	}
	if util.CalendarDate(got.ScheduledDate.Time()) != "2099-01-01" {
		t.Errorf("scheduledDate = %v, want 2099-01-01", got.ScheduledDate)
	}
	if util.CalendarDate(got.EffectiveDate.Time()) != "2099-01-01" {
		t.Errorf("effectiveDate = %v, want scheduled date", got.EffectiveDate)
	}

	// 附带日期的预定书签追加 reminder 通知
	if len(notify.appended) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notify.appended))
	}
	if notify.appended[0].Type != domain.NotificationTypeReminder {
		t.Errorf("notification type = %q, want reminder", notify.appended[0].Type)
	}
}

func TestBookmarkService_Create_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		params  *dto.BookmarkCreateRequest
		wantErr *code.Code
	}{
		{name: "empty url", params: &dto.BookmarkCreateRequest{URL: ""}, wantErr: code.ErrorBookmarkURLEmpty},
		{name: "whitespace only url", params: &dto.BookmarkCreateRequest{URL: "   "}, wantErr: code.ErrorBookmarkURLEmpty},
		{name: "bad date", params: &dto.BookmarkCreateRequest{URL: "example.com", IsFuture: true, Date: "not-a-date"}, wantErr: code.ErrorBookmarkDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newBookmarkServiceForTest(&mockBookmarkRepo{}, &mockNotificationService{}, time.Now())
			_, err := svc.Create(ctx, 1, tt.params)
			if err != tt.wantErr {
				t.Errorf("Create error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBookmarkService_Create_UnparsableURLDomain(t *testing.T) {
	ctx := context.Background()
	svc := newBookmarkServiceForTest(&mockBookmarkRepo{}, &mockNotificationService{}, time.Now())

	got, err := svc.Create(ctx, 1, &dto.BookmarkCreateRequest{URL: "://///"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	// 域名解析失败退化为 unknown，不阻止创建
	if got.Domain != "unknown" {
		t.Errorf("domain = %q, want unknown", got.Domain)
	}
}

func TestBookmarkService_Update_ClearSchedule(t *testing.T) {
	ctx := context.Background()
	scheduled := time.Date(2099, 1, 1, 0, 0, 0, 0, time.Local)
	created := time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local)
	repo := &mockBookmarkRepo{bookmarks: []*domain.Bookmark{
		{ID: "b1", UID: 1, URL: "https://example.com", IsFuture: true, ScheduledDate: scheduled, CreatedAt: created},
	}}
	svc := newBookmarkServiceForTest(repo, &mockNotificationService{}, time.Now())

	got, err := svc.Update(ctx, 1, &dto.BookmarkUpdateRequest{ID: "b1", URL: "example.com", IsFuture: false})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	// 取消预定后生效日期回到创建时间
	if got.IsFuture {
		t.Error("isFuture should be cleared")
	}
	if !got.ScheduledDate.IsZero() {
		t.Errorf("scheduledDate = %v, want zero", got.ScheduledDate)
	}
	if !got.EffectiveDate.Time().Equal(created) {
		t.Errorf("effectiveDate = %v, want createdAt %v", got.EffectiveDate, created)
	}
}

// 普通书签带日期编辑时按给定日期回填创建时间，生效日期随之改变
func TestBookmarkService_Update_BackdateNonFuture(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local)
	repo := &mockBookmarkRepo{bookmarks: []*domain.Bookmark{
		{ID: "b1", UID: 1, URL: "https://example.com", CreatedAt: created},
	}}
	svc := newBookmarkServiceForTest(repo, &mockNotificationService{}, time.Now())

	got, err := svc.Update(ctx, 1, &dto.BookmarkUpdateRequest{
		ID:       "b1",
		URL:      "example.com",
		IsFuture: false,
		Date:     "2025-01-02",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if util.CalendarDate(got.CreatedAt.Time()) != "2025-01-02" {
		t.Errorf("createdAt = %v, want backdated 2025-01-02", got.CreatedAt)
	}
	if util.CalendarDate(got.EffectiveDate.Time()) != "2025-01-02" {
		t.Errorf("effectiveDate = %v, want supplied date", got.EffectiveDate)
	}
}

func TestBookmarkService_Update_WhitespaceURL(t *testing.T) {
	ctx := context.Background()
	repo := &mockBookmarkRepo{bookmarks: []*domain.Bookmark{
		{ID: "b1", UID: 1, URL: "https://example.com", CreatedAt: time.Now()},
	}}
	svc := newBookmarkServiceForTest(repo, &mockNotificationService{}, time.Now())

	_, err := svc.Update(ctx, 1, &dto.BookmarkUpdateRequest{ID: "b1", URL: " \t "})
	if err != code.ErrorBookmarkURLEmpty {
		t.Errorf("Update error = %v, want %v", err, code.ErrorBookmarkURLEmpty)
	}
}

// 他人的书签报无权限，不可见性只针对不存在的 id
func TestBookmarkService_Update_OtherUsersRecord(t *testing.T) {
	ctx := context.Background()
	repo := &mockBookmarkRepo{bookmarks: []*domain.Bookmark{
		{ID: "b1", UID: 2, URL: "https://example.com", CreatedAt: time.Now()},
	}}
	svc := newBookmarkServiceForTest(repo, &mockNotificationService{}, time.Now())

	_, err := svc.Update(ctx, 1, &dto.BookmarkUpdateRequest{ID: "b1", URL: "example.com"})
	if err != code.ErrorNoPermission {
		t.Errorf("Update error = %v, want %v", err, code.ErrorNoPermission)
	}
}

func TestBookmarkService_Delete_OtherUsersRecord(t *testing.T) {
	ctx := context.Background()
	repo := &mockBookmarkRepo{bookmarks: []*domain.Bookmark{
		{ID: "b1", UID: 2, URL: "https://example.com", CreatedAt: time.Now()},
	}}
	svc := newBookmarkServiceForTest(repo, &mockNotificationService{}, time.Now())

	if err := svc.Delete(ctx, 1, "b1"); err != code.ErrorNoPermission {
		t.Errorf("Delete error = %v, want %v", err, code.ErrorNoPermission)
	}
	if len(repo.deleted) != 0 {
		t.Error("no delete should reach the repository")
	}
}

func TestBookmarkService_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := newBookmarkServiceForTest(&mockBookmarkRepo{}, &mockNotificationService{}, time.Now())

	_, err := svc.Update(ctx, 1, &dto.BookmarkUpdateRequest{ID: "missing", URL: "example.com"})
	if err != code.ErrorBookmarkNotFound {
		t.Errorf("Update error = %v, want %v", err, code.ErrorBookmarkNotFound)
	}
}

// 重复删除视为成功
func TestBookmarkService_Delete_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := &mockBookmarkRepo{}
	svc := newBookmarkServiceForTest(repo, &mockNotificationService{}, time.Now())

	for i := 0; i < 2; i++ {
		if err := svc.Delete(ctx, 1, "gone"); err != nil {
			t.Fatalf("Delete #%d failed: %v", i+1, err)
		}
	}
}

func TestBookmarkService_List_Modes(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 18, 12, 0, 0, 0, time.Local)
	repo := &mockBookmarkRepo{bookmarks: []*domain.Bookmark{
		{ID: "today", UID: 1, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "lastMonth", UID: 1, CreatedAt: now.AddDate(0, -1, 0)},
		{ID: "future", UID: 1, IsFuture: true, ScheduledDate: now.AddDate(0, 0, 30), CreatedAt: now.Add(-time.Hour)},
	}}
	svc := newBookmarkServiceForTest(repo, &mockNotificationService{}, now)

	tests := []struct {
		name    string
		mode    string
		date    string
		wantIDs []string
	}{
		{name: "all", mode: "all", wantIDs: []string{"today", "lastMonth", "future"}},
		{name: "empty mode is all", mode: "", wantIDs: []string{"today", "lastMonth", "future"}},
		{name: "today", mode: "today", wantIDs: []string{"today"}},
		{name: "future", mode: "future", wantIDs: []string{"future"}},
		{name: "date", mode: "date", date: "2025-05-18", wantIDs: []string{"lastMonth"}},
		{name: "date without selection is all", mode: "date", wantIDs: []string{"today", "lastMonth", "future"}},
		{name: "unknown mode passes everything", mode: "bogus", wantIDs: []string{"today", "lastMonth", "future"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.List(ctx, 1, &dto.BookmarkListRequest{Mode: tt.mode, Date: tt.date})
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("result length = %d, want %d", len(got), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if got[i].ID != want {
					t.Errorf("result[%d] = %q, want %q", i, got[i].ID, want)
				}
			}
		})
	}
}

func TestBookmarkService_List_DateModeBadDate(t *testing.T) {
	ctx := context.Background()
	svc := newBookmarkServiceForTest(&mockBookmarkRepo{}, &mockNotificationService{}, time.Now())

	_, err := svc.List(ctx, 1, &dto.BookmarkListRequest{Mode: "date", Date: "18/06/2025"})
	if err != code.ErrorBookmarkDate {
		t.Errorf("List error = %v, want %v", err, code.ErrorBookmarkDate)
	}
}
