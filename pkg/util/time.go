package util

import (
	"strconv"
	"strings"
	"time"
)

// GetZeroTime gets 0:00 time of a certain day
// GetZeroTime 获取某一天的0点时间
// d: given time
// d: 传入的时间
// return: 0:00 time of that day
// 返回值: 当天的0点时间
func GetZeroTime(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// GetWeekStart gets 0:00 of the most recent Sunday at or before the given time
// GetWeekStart 获取传入时间所在周的周日0点（周以周日为起点）
// d: given time
// d: 传入的时间
// return: 0:00 on that week's Sunday
// 返回值: 该周周日的0点时间
func GetWeekStart(d time.Time) time.Time {
	return GetZeroTime(d).AddDate(0, 0, -int(d.Weekday()))
}

// SameDay determines whether two times fall on the same calendar day
// SameDay 判断两个时间是否处于同一个自然日
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SameMonth determines whether two times fall in the same calendar month
// SameMonth 判断两个时间是否处于同一个自然月
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// CalendarDate formats a time as its calendar date string
// CalendarDate 将时间格式化为自然日字符串
func CalendarDate(d time.Time) string {
	return d.Format("2006-01-02")
}

// TimeParse time and date formatting
// TimeParse 时间日期格式化
// layout: time format
// layout: 时间格式
// in: time string to be parsed
// in: 要解析的时间字符串
// return: parsed time object
// 返回值: 解析后的时间对象
func TimeParse(layout string, in string) time.Time {
	local, _ := time.LoadLocation("Local")
	timer, _ := time.ParseInLocation(layout, in, local)
	return timer
}

// ParseDuration parses duration string, supports 'd' (day) suffix
// ParseDuration 解析时间字符串，支持 'd' (天) 后缀
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "d") {
		daysStr := strings.TrimSuffix(s, "d")
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			return 0, err
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	// 如果是纯数字，默认为秒
	if _, err := strconv.Atoi(s); err == nil {
		s += "s"
	}
	return time.ParseDuration(s)
}
