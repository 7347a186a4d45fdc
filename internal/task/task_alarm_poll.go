package task

import (
	"context"
	"time"

	"github.com/haierkeys/smart-mark-service/internal/app"
)

// AlarmPollTask 闹钟轮询任务
// 每个轮询周期检查一次全部启用的闹钟，到点且当日未触发的闹钟各触发一次
type AlarmPollTask struct {
	app      *app.App
	interval time.Duration
}

func init() {
	RegisterWithApp(func(appContainer *app.App) (Task, error) {
		return &AlarmPollTask{
			app:      appContainer,
			interval: appContainer.Config().GetAlarmPollInterval(),
		}, nil
	})
}

// Name 返回任务名称
func (t *AlarmPollTask) Name() string {
	return "AlarmPoll"
}

// LoopInterval 返回执行间隔
func (t *AlarmPollTask) LoopInterval() time.Duration {
	return t.interval
}

// IsStartupRun 是否立即执行一次
// 启动时不触发，避免重启后把当前分钟的闹钟提前响掉
func (t *AlarmPollTask) IsStartupRun() bool {
	return false
}

// Run 执行一次轮询
func (t *AlarmPollTask) Run(ctx context.Context) error {
	return t.app.AlarmService.Poll(ctx)
}
