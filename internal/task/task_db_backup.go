package task

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/haierkeys/smart-mark-service/internal/app"
	"github.com/haierkeys/smart-mark-service/pkg/fileurl"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DbBackupTask SQLite 数据库定时备份任务
// 按 cron 表达式计算下次备份时间，每分钟检查一次是否到点
type DbBackupTask struct {
	app      *app.App
	logger   *zap.Logger
	schedule cron.Schedule

	mu   sync.Mutex
	next time.Time
}

func init() {
	RegisterWithApp(func(appContainer *app.App) (Task, error) {
		return NewDbBackupTask(appContainer)
	})
}

// NewDbBackupTask 创建备份任务
// 只支持 SQLite，cron 表达式为空或数据库类型不匹配时禁用
func NewDbBackupTask(appContainer *app.App) (Task, error) {
	cfg := appContainer.Config()
	if cfg.Database.Type != "sqlite" || cfg.Database.BackupCron == "" {
		return nil, nil
	}

	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(cfg.Database.BackupCron)
	if err != nil {
		return nil, fmt.Errorf("invalid backup cron %q: %w", cfg.Database.BackupCron, err)
	}

	return &DbBackupTask{
		app:      appContainer,
		logger:   appContainer.Logger(),
		schedule: schedule,
		next:     schedule.Next(time.Now()),
	}, nil
}

// Name 返回任务名称
func (t *DbBackupTask) Name() string {
	return "DbBackup"
}

// LoopInterval 返回执行间隔
func (t *DbBackupTask) LoopInterval() time.Duration {
	return 1 * time.Minute
}

// IsStartupRun 是否立即执行一次
func (t *DbBackupTask) IsStartupRun() bool {
	return false
}

// Run 检查是否到达备份时间点，到点则执行备份并清理过期文件
func (t *DbBackupTask) Run(ctx context.Context) error {
	now := time.Now()

	t.mu.Lock()
	due := !now.Before(t.next)
	if due {
		t.next = t.schedule.Next(now)
	}
	t.mu.Unlock()

	if !due {
		return nil
	}

	if err := t.backup(now); err != nil {
		return err
	}
	t.prune(now)
	return nil
}

// backup 将数据库文件拷贝到备份目录
func (t *DbBackupTask) backup(now time.Time) error {
	cfg := t.app.Config()
	srcPath := cfg.Database.Path
	if !fileurl.IsExist(srcPath) {
		return fmt.Errorf("database file not found: %s", srcPath)
	}

	if err := fileurl.CreatePath(cfg.Database.BackupPath+"/", os.ModePerm); err != nil {
		return err
	}

	destName := fmt.Sprintf("db-%s.sqlite3", now.Format("20060102-150405"))
	destPath := filepath.Join(cfg.Database.BackupPath, destName)

	if err := fileurl.CopyFile(srcPath, destPath); err != nil {
		return err
	}

	t.logger.Info("database backup created",
		zap.String("task", t.Name()),
		zap.String("file", destPath))
	return nil
}

// prune 删除超过保留天数的备份文件
func (t *DbBackupTask) prune(now time.Time) {
	cfg := t.app.Config()
	if cfg.Database.BackupKeepDays <= 0 {
		return
	}
	cutoff := now.AddDate(0, 0, -cfg.Database.BackupKeepDays)

	entries, err := os.ReadDir(cfg.Database.BackupPath)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "db-") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(cfg.Database.BackupPath, entry.Name())
			if err := os.Remove(path); err != nil {
				t.logger.Warn("failed to remove expired backup",
					zap.String("task", t.Name()),
					zap.String("file", path),
					zap.Error(err))
				continue
			}
			t.logger.Info("expired backup removed",
				zap.String("task", t.Name()),
				zap.String("file", path))
		}
	}
}
