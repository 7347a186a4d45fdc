package dao

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/haierkeys/smart-mark-service/internal/domain"

	"github.com/stretchr/testify/assert"
)

// newTestDao 创建基于临时 SQLite 文件的 Dao 实例
func newTestDao(t *testing.T) *Dao {
	t.Helper()

	cfg := &DatabaseConfig{
		Type:        "sqlite",
		Path:        filepath.Join(t.TempDir(), "test.sqlite3"),
		AutoMigrate: true,
	}

	db, err := NewDBEngine(cfg)
	if err != nil {
		t.Fatal(err)
	}

	return New(db, context.Background(), WithConfig(cfg))
}

func TestBookmarkCreateAndGet(t *testing.T) {
	d := newTestDao(t)
	repo := NewBookmarkRepository(d)
	ctx := context.Background()
	uid := int64(1)

	params := &domain.Bookmark{
		ID:            "bm-001",
		URL:           "https://go.dev/blog/slices",
		Title:         "Slices intro",
		Domain:        "go.dev",
		Category:      "reading",
		IsFuture:      true,
		ScheduledDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local),
		CreatedAt:     time.Now(),
	}

	created, err := repo.Create(ctx, params, uid)

	assert.Nil(t, err)
	assert.Equal(t, params.ID, created.ID)
	assert.Equal(t, uid, created.UID)
	assert.Equal(t, params.URL, created.URL)
	assert.Equal(t, params.Domain, created.Domain)
	assert.True(t, created.IsFuture)

	got, err := repo.GetByID(ctx, params.ID, uid)
	assert.Nil(t, err)
	assert.Equal(t, params.Title, got.Title)
	assert.Equal(t, params.ScheduledDate.Format("2006-01-02"), got.ScheduledDate.Format("2006-01-02"))

	// 其他用户不可见
	_, err = repo.GetByID(ctx, params.ID, int64(2))
	assert.NotNil(t, err)
}

func TestBookmarkUpdate(t *testing.T) {
	d := newTestDao(t)
	repo := NewBookmarkRepository(d)
	ctx := context.Background()
	uid := int64(1)

	_, err := repo.Create(ctx, &domain.Bookmark{
		ID:        "bm-002",
		URL:       "https://example.com",
		Title:     "before",
		Domain:    "example.com",
		CreatedAt: time.Now(),
	}, uid)
	assert.Nil(t, err)

	_, err = repo.Update(ctx, &domain.Bookmark{
		ID:        "bm-002",
		URL:       "https://example.com/updated",
		Title:     "after",
		Domain:    "example.com",
		CreatedAt: time.Now(),
	}, uid)
	assert.Nil(t, err)

	got, err := repo.GetByID(ctx, "bm-002", uid)
	assert.Nil(t, err)
	assert.Equal(t, "after", got.Title)
	assert.Equal(t, "https://example.com/updated", got.URL)
}

func TestBookmarkDeleteAndCount(t *testing.T) {
	d := newTestDao(t)
	repo := NewBookmarkRepository(d)
	ctx := context.Background()
	uid := int64(1)

	for _, id := range []string{"bm-a", "bm-b", "bm-c"} {
		_, err := repo.Create(ctx, &domain.Bookmark{
			ID:        id,
			URL:       "https://example.com/" + id,
			Domain:    "example.com",
			CreatedAt: time.Now(),
		}, uid)
		assert.Nil(t, err)
	}

	count, err := repo.CountByUID(ctx, uid)
	assert.Nil(t, err)
	assert.Equal(t, int64(3), count)

	err = repo.Delete(ctx, "bm-b", uid)
	assert.Nil(t, err)

	// 删除不存在的目标不报错
	err = repo.Delete(ctx, "bm-missing", uid)
	assert.Nil(t, err)

	count, err = repo.CountByUID(ctx, uid)
	assert.Nil(t, err)
	assert.Equal(t, int64(2), count)
}

func TestBookmarkCountByDomain(t *testing.T) {
	d := newTestDao(t)
	repo := NewBookmarkRepository(d)
	ctx := context.Background()

	seeds := []struct {
		id     string
		domain string
	}{
		{"bm-1", "go.dev"},
		{"bm-2", "go.dev"},
		{"bm-3", "go.dev"},
		{"bm-4", "example.com"},
		{"bm-5", "example.com"},
		{"bm-6", "github.com"},
	}
	for _, s := range seeds {
		_, err := repo.Create(ctx, &domain.Bookmark{
			ID:        s.id,
			URL:       "https://" + s.domain,
			Domain:    s.domain,
			CreatedAt: time.Now(),
		}, 1)
		assert.Nil(t, err)
	}

	rows, err := repo.CountByDomain(ctx, 2)
	assert.Nil(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "go.dev", rows[0].Domain)
	assert.Equal(t, int64(3), rows[0].Count)
	assert.Equal(t, "example.com", rows[1].Domain)
	assert.Equal(t, int64(2), rows[1].Count)
}

func TestNotificationMarkRead(t *testing.T) {
	d := newTestDao(t)
	repo := NewNotificationRepository(d)
	ctx := context.Background()
	uid := int64(1)

	_, err := repo.Create(ctx, &domain.Notification{
		ID:        "nf-001",
		Type:      domain.NotificationTypeSystem,
		Title:     "Welcome",
		Message:   "hello",
		CreatedAt: time.Now(),
	}, uid)
	assert.Nil(t, err)

	unread, err := repo.CountUnreadByUID(ctx, uid)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), unread)

	err = repo.MarkRead(ctx, "nf-001", uid)
	assert.Nil(t, err)

	// 重复标记不改变结果
	err = repo.MarkRead(ctx, "nf-001", uid)
	assert.Nil(t, err)

	unread, err = repo.CountUnreadByUID(ctx, uid)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), unread)

	got, err := repo.GetByID(ctx, "nf-001", uid)
	assert.Nil(t, err)
	assert.True(t, got.IsRead)
}

func TestNotificationMarkAllReadScoped(t *testing.T) {
	d := newTestDao(t)
	repo := NewNotificationRepository(d)
	ctx := context.Background()

	seeds := []struct {
		id  string
		uid int64
	}{
		{"nf-a", 1},
		{"nf-b", 1},
		{"nf-c", 2},
	}
	for _, s := range seeds {
		_, err := repo.Create(ctx, &domain.Notification{
			ID:        s.id,
			Type:      domain.NotificationTypeSystem,
			Title:     "t",
			CreatedAt: time.Now(),
		}, s.uid)
		assert.Nil(t, err)
	}

	err := repo.MarkAllRead(ctx, 1)
	assert.Nil(t, err)

	// 只翻转调用方自己的未读
	unread, err := repo.CountUnreadByUID(ctx, 1)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), unread)

	unread, err = repo.CountUnreadByUID(ctx, 2)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), unread)

	// 没有未读时再次调用不报错
	err = repo.MarkAllRead(ctx, 1)
	assert.Nil(t, err)
}
