package service

import (
	"time"

	"github.com/haierkeys/smart-mark-service/pkg/util"
)

// Pusher 向指定用户的在线客户端推送消息
// 返回成功推送的连接数，推送失败不影响业务结果
type Pusher interface {
	PushToUser(uid int64, action string, content any) int
}

// nopPusher 无连接推送实现，用于未启用 websocket 的场景和测试
type nopPusher struct{}

func (nopPusher) PushToUser(uid int64, action string, content any) int { return 0 }

// NopPusher 返回空推送器
func NopPusher() Pusher { return nopPusher{} }

// dateLayout 业务日期格式
const dateLayout = "2006-01-02"

// parseDate 解析业务日期，支持 2006-01-02 和 RFC3339 两种格式
// 返回本地时区当日零点
func parseDate(in string) (time.Time, bool) {
	if in == "" {
		return time.Time{}, false
	}
	if t := util.TimeParse(dateLayout, in); !t.IsZero() {
		return t, true
	}
	if t := util.TimeParse(time.RFC3339, in); !t.IsZero() {
		return util.GetZeroTime(t), true
	}
	return time.Time{}, false
}
