package dto

import "github.com/haierkeys/smart-mark-service/pkg/timex"

// AdminUserDeleteRequest Request parameters for removing a user and their data
// 管理端删除用户请求参数
type AdminUserDeleteRequest struct {
	UID int64 `json:"uid" form:"uid" binding:"required"`
}

// AdminBookmarkDeleteRequest Request parameters for removing any user's bookmark
// 管理端删除书签请求参数
type AdminBookmarkDeleteRequest struct {
	ID string `json:"id" form:"id" binding:"required"`
}

// ---------------- DTO / Response ----------------

// AdminStatsDTO Aggregated service statistics
// AdminStatsDTO 服务聚合统计数据
type AdminStatsDTO struct {
	TotalUsers          int64   `json:"totalUsers"`
	TotalBookmarks      int64   `json:"totalBookmarks"`
	FutureBookmarks     int64   `json:"futureBookmarks"` // isFuture flag count // 按标记统计，不看是否到期
	NewUsersToday       int64   `json:"newUsersToday"`
	NewBookmarksToday   int64   `json:"newBookmarksToday"`
	TotalNotifications  int64   `json:"totalNotifications"`
	UnreadNotifications int64   `json:"unreadNotifications"`
	ActiveAlarms        int64   `json:"activeAlarms"`
	AvgBookmarksPerUser float64 `json:"avgBookmarksPerUser"` // One decimal place // 保留一位小数
}

// AdminUserDTO User entry in the admin user listing
// AdminUserDTO 管理端用户列表条目
type AdminUserDTO struct {
	UID           int64      `json:"uid"`
	Email         string     `json:"email"`
	Username      string     `json:"username"`
	IsAdmin       bool       `json:"isAdmin"`
	BookmarkCount int64      `json:"bookmarkCount"`
	CreatedAt     timex.Time `json:"createdAt"`
}

// AdminBookmarkDTO Bookmark entry in the admin bookmark listing with owner info
// AdminBookmarkDTO 管理端书签列表条目，附带归属用户信息
type AdminBookmarkDTO struct {
	BookmarkDTO
	UID           int64  `json:"uid"`
	OwnerUsername string `json:"ownerUsername"`
	OwnerEmail    string `json:"ownerEmail"`
}

// DomainCountDTO Bookmark count grouped by site domain
// DomainCountDTO 按站点域名分组的书签数量
type DomainCountDTO struct {
	Domain string `json:"domain"`
	Count  int64  `json:"count"`
}
