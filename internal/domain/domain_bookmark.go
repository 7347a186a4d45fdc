// Package domain 定义领域模型和接口
package domain

import "time"

// Bookmark 书签领域模型
type Bookmark struct {
	ID            string
	UID           int64
	URL           string
	Title         string
	Domain        string
	Category      string
	IsFuture      bool
	ScheduledDate time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasSchedule 判断书签是否带有生效日期
func (b *Bookmark) HasSchedule() bool {
	return b.IsFuture && !b.ScheduledDate.IsZero()
}

// EffectiveDate 返回书签参与时间筛选的生效日期
// 预定书签使用预定日期，普通书签使用创建时间
func (b *Bookmark) EffectiveDate() time.Time {
	if b.HasSchedule() {
		return b.ScheduledDate
	}
	return b.CreatedAt
}

// IsPending 判断书签在给定时刻是否仍未生效
func (b *Bookmark) IsPending(now time.Time) bool {
	return b.IsFuture && b.EffectiveDate().After(now)
}
