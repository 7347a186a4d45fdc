package dto

import "github.com/haierkeys/smart-mark-service/pkg/timex"

// BookmarkCreateRequest Request parameters for creating a bookmark
// 创建书签请求参数
type BookmarkCreateRequest struct {
	URL      string `json:"url" form:"url" binding:"required"`   // Bookmark URL // 书签地址
	Title    string `json:"title" form:"title"`                  // Bookmark title // 书签标题
	Category string `json:"category" form:"category"`            // Category label // 分类标签
	IsFuture bool   `json:"isFuture" form:"isFuture"`            // Scheduled flag // 预定标记
	Date     string `json:"date" form:"date"`                    // Effective date, "2006-01-02" or RFC3339 // 生效日期
}

// BookmarkUpdateRequest Request parameters for updating a bookmark
// 更新书签请求参数
type BookmarkUpdateRequest struct {
	ID       string `json:"id" form:"id" binding:"required"` // Bookmark ID // 书签ID
	URL      string `json:"url" form:"url" binding:"required"`
	Title    string `json:"title" form:"title"`
	Category string `json:"category" form:"category"`
	IsFuture bool   `json:"isFuture" form:"isFuture"`
	Date     string `json:"date" form:"date"`
}

// BookmarkDeleteRequest Request parameters for deleting a bookmark
// 删除书签请求参数
type BookmarkDeleteRequest struct {
	ID string `json:"id" form:"id" binding:"required"`
}

// BookmarkListRequest Request parameters for the filtered bookmark list
// 书签筛选列表请求参数
type BookmarkListRequest struct {
	Mode string `json:"mode" form:"mode"` // Filter mode: all/today/week/month/future/date // 筛选模式
	Date string `json:"date" form:"date"` // Target date for mode=date // date 模式的目标日期
}

// ---------------- DTO / Response ----------------

// BookmarkDTO Bookmark data transfer object
// BookmarkDTO 书签数据传输对象
type BookmarkDTO struct {
	ID            string     `json:"id"`
	URL           string     `json:"url"`
	Title         string     `json:"title"`
	Domain        string     `json:"domain"`
	Category      string     `json:"category"`
	IsFuture      bool       `json:"isFuture"`
	ScheduledDate timex.Time `json:"scheduledDate"`
	EffectiveDate timex.Time `json:"effectiveDate"`
	CreatedAt     timex.Time `json:"createdAt"`
	UpdatedAt     timex.Time `json:"updatedAt"`
}
