package domain

import (
	"iter"
	"time"

	"github.com/haierkeys/smart-mark-service/pkg/util"
)

// FilterMode 定义书签时间筛选模式
type FilterMode string

const (
	FilterModeAll    FilterMode = "all"
	FilterModeToday  FilterMode = "today"
	FilterModeWeek   FilterMode = "week"
	FilterModeMonth  FilterMode = "month"
	FilterModeFuture FilterMode = "future"
	FilterModeDate   FilterMode = "date"
)

// FilterQuery 一次筛选请求
// Date 仅在 Mode 为 date 时使用
type FilterQuery struct {
	Mode FilterMode
	Date time.Time
}

// Match 判断书签在给定时刻是否命中筛选条件
// 未知模式放行所有书签，筛选失败不应隐藏用户数据
func (q FilterQuery) Match(b *Bookmark, now time.Time) bool {
	eff := b.EffectiveDate()

	switch q.Mode {
	case FilterModeToday:
		return util.SameDay(eff, now)
	case FilterModeWeek:
		// 周以周日为起点，自然日闭区间
		// 右端用下周日零点做严格小于比较，避免周六最后一秒内的亚秒时间漏出窗口
		weekStart := util.GetWeekStart(now)
		weekEnd := weekStart.AddDate(0, 0, 7)
		return !eff.Before(weekStart) && eff.Before(weekEnd)
	case FilterModeMonth:
		return util.SameMonth(eff, now)
	case FilterModeFuture:
		return b.IsPending(now)
	case FilterModeDate:
		return util.SameDay(eff, q.Date)
	default:
		return true
	}
}

// FilterBookmarks 按筛选条件惰性过滤书签列表，保持原有顺序
// 返回的序列可重复遍历，每次遍历都从头重新计算
func FilterBookmarks(list []*Bookmark, q FilterQuery, now time.Time) iter.Seq[*Bookmark] {
	return func(yield func(*Bookmark) bool) {
		for _, b := range list {
			if q.Match(b, now) {
				if !yield(b) {
					return
				}
			}
		}
	}
}

// CountFiltered 统计命中筛选条件的书签数量
func CountFiltered(list []*Bookmark, q FilterQuery, now time.Time) int64 {
	var n int64
	for range FilterBookmarks(list, q, now) {
		n++
	}
	return n
}
