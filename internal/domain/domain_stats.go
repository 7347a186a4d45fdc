package domain

// AdminStats 全站聚合统计
// NewUsersToday / NewBookmarksToday 按记录自身的 createdAt 统计，不使用生效日期
type AdminStats struct {
	TotalUsers          int64
	TotalBookmarks      int64
	FutureBookmarks     int64
	NewUsersToday       int64
	NewBookmarksToday   int64
	TotalNotifications  int64
	UnreadNotifications int64
	ActiveAlarms        int64
	AvgBookmarksPerUser float64
}

// UserStats 单用户聚合统计
type UserStats struct {
	TotalBookmarks      int64
	FutureBookmarks     int64
	TodayBookmarks      int64
	ThisWeekBookmarks   int64
	UnreadNotifications int64
}

// DomainCount 按域名聚合的书签计数
type DomainCount struct {
	Domain string
	Count  int64
}
