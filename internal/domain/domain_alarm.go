package domain

import (
	"time"

	"github.com/haierkeys/smart-mark-service/pkg/util"
)

// AlarmTimeLayout 闹钟时间格式，24小时制
const AlarmTimeLayout = "15:04"

// Alarm 闹钟领域模型
// TriggeredDay 记录最近一次触发的自然日，保证每天至多触发一次
type Alarm struct {
	ID           string
	UID          int64
	Time         string
	Message      string
	Enabled      bool
	TriggeredDay string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasFiredOn 判断闹钟在给定时刻所在的自然日是否已触发过
func (a *Alarm) HasFiredOn(now time.Time) bool {
	return a.TriggeredDay == util.CalendarDate(now)
}

// ShouldFire 判断闹钟在给定时刻是否应当触发
// 条件：已启用、时分匹配、当天尚未触发
func (a *Alarm) ShouldFire(now time.Time) bool {
	if !a.Enabled {
		return false
	}
	if a.Time != now.Format(AlarmTimeLayout) {
		return false
	}
	return !a.HasFiredOn(now)
}

// MarkFired 登记触发日，同一自然日内不再触发
func (a *Alarm) MarkFired(now time.Time) {
	a.TriggeredDay = util.CalendarDate(now)
}
