// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/haierkeys/smart-mark-service/internal/dao"
	"github.com/haierkeys/smart-mark-service/internal/domain"
	"github.com/haierkeys/smart-mark-service/internal/service"
	pkgapp "github.com/haierkeys/smart-mark-service/pkg/app"
	"github.com/haierkeys/smart-mark-service/pkg/workerpool"
	"github.com/haierkeys/smart-mark-service/pkg/writequeue"
	"golang.org/x/mod/semver"

	"github.com/lxzan/gws"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// 并发控制组件
	workerPool    *workerpool.Pool
	writeQueueMgr *writequeue.Manager

	// Repository 层
	BookmarkRepo     domain.BookmarkRepository
	NotificationRepo domain.NotificationRepository
	AlarmRepo        domain.AlarmRepository
	UserRepo         domain.UserRepository
	SettingRepo      domain.SettingRepository

	// Service 层
	BookmarkService     service.BookmarkService
	NotificationService service.NotificationService
	AlarmService        service.AlarmService
	UserService         service.UserService
	SettingService      service.SettingService
	AdminService        service.AdminService

	// 基础设施组件
	TokenManager pkgapp.TokenManager
	WSS          *pkgapp.WebsocketServer

	// StartTime 进程启动时间，用于健康检查与系统信息上报
	StartTime time.Time

	// 关闭控制
	shutdownCh chan struct{}
	wg         sync.WaitGroup

	// 版本检查信息
	checkVersionMu sync.RWMutex
	checkVersion   pkgapp.CheckVersionInfo
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		DB:         db,
		StartTime:  time.Now(),
		shutdownCh: make(chan struct{}),
	}

	// 初始化 Worker Pool
	wpConfig := cfg.GetWorkerPoolConfig()
	a.workerPool = workerpool.New(&wpConfig, logger)

	// 初始化 Write Queue Manager
	wqConfig := cfg.GetWriteQueueConfig()
	a.writeQueueMgr = writequeue.New(&wqConfig, logger)

	// 创建 DatabaseConfig 用于 DAO
	dbConfig := &dao.DatabaseConfig{
		Type:            cfg.Database.Type,
		Path:            cfg.Database.Path,
		UserName:        cfg.Database.UserName,
		Password:        cfg.Database.Password,
		Host:            cfg.Database.Host,
		Name:            cfg.Database.Name,
		TablePrefix:     cfg.Database.TablePrefix,
		AutoMigrate:     cfg.Database.AutoMigrate,
		Charset:         cfg.Database.Charset,
		ParseTime:       cfg.Database.ParseTime,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		RunMode:         cfg.Server.RunMode,
	}

	// 初始化 DAO（使用依赖注入）
	a.Dao = dao.New(db, context.Background(),
		dao.WithConfig(dbConfig),
		dao.WithLogger(logger),
		dao.WithWriteQueueManager(a.writeQueueMgr),
	)

	// 初始化 TokenManager
	tokenConfig := pkgapp.TokenConfig{
		SecretKey: cfg.Security.AuthTokenKey,
		Issuer:    "smart-mark-service",
		Expiry:    cfg.GetTokenExpiry(),
	}
	a.TokenManager = pkgapp.NewTokenManager(tokenConfig)

	// 初始化 WebSocket 服务，作为通知和闹钟触发的推送通道
	a.WSS = pkgapp.NewWebsocketServer(pkgapp.WebsocketServerConfig{
		GWSOption: gws.ServerOption{
			ParallelEnabled:  true,
			Recovery:         gws.Recovery,
			PermessageDeflate: gws.PermessageDeflate{Enabled: true},
		},
	})
	a.WSS.AuthorizeUse(a.TokenManager.Parse)

	// 初始化 Repository 层
	a.BookmarkRepo = dao.NewBookmarkRepository(a.Dao)
	a.NotificationRepo = dao.NewNotificationRepository(a.Dao)
	a.AlarmRepo = dao.NewAlarmRepository(a.Dao)
	a.UserRepo = dao.NewUserRepository(a.Dao)
	a.SettingRepo = dao.NewSettingRepository(a.Dao)

	// 创建 ServiceConfig（从 AppConfig 提取 Service 层需要的配置）
	svcConfig := &service.ServiceConfig{
		User: service.UserServiceConfig{
			RegisterIsEnable: cfg.User.RegisterIsEnable,
			AvatarURL:        cfg.User.AvatarURL,
		},
		App: service.AppServiceConfig{
			DomainTopLimit:      cfg.App.DomainTopLimit,
			DefaultAlarmMessage: cfg.App.DefaultAlarmMessage,
		},
	}

	// 初始化 Service 层（依赖注入）
	a.NotificationService = service.NewNotificationService(a.NotificationRepo, a.WSS, logger)
	a.BookmarkService = service.NewBookmarkService(a.BookmarkRepo, a.NotificationService, logger)
	a.AlarmService = service.NewAlarmService(a.AlarmRepo, a.SettingRepo, a.NotificationService, a.WSS, logger, svcConfig)
	a.UserService = service.NewUserService(a.UserRepo, a.BookmarkRepo, a.NotificationRepo, a.AlarmRepo, a.SettingRepo, a.TokenManager, logger, svcConfig)
	a.SettingService = service.NewSettingService(a.SettingRepo, logger)
	a.AdminService = service.NewAdminService(a.UserRepo, a.BookmarkRepo, a.NotificationRepo, a.AlarmRepo, a.UserService, logger, svcConfig)

	logger.Info("App container initialized successfully",
		zap.Int("workerPoolMaxWorkers", wpConfig.MaxWorkers),
		zap.Int("writeQueueCapacity", wqConfig.QueueCapacity))

	return a, nil
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// SubmitTask 提交任务到 Worker Pool
// 返回错误如果池已满或已关闭
func (a *App) SubmitTask(ctx context.Context, task func(context.Context) error) error {
	return a.workerPool.Submit(ctx, task)
}

// SubmitTaskAsync 异步提交任务到 Worker Pool（不等待结果）
// 返回错误如果池已满或已关闭
func (a *App) SubmitTaskAsync(ctx context.Context, task func(context.Context) error) error {
	return a.workerPool.SubmitAsync(ctx, task)
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// CheckVersion 获取版本检查信息
func (a *App) CheckVersion(clientVersion string) pkgapp.CheckVersionInfo {
	a.checkVersionMu.RLock()
	defer a.checkVersionMu.RUnlock()

	cv := a.checkVersion

	// 客户端带版本时按客户端版本比较
	if clientVersion != "" && cv.VersionNewName != "" {
		v1 := clientVersion
		if !strings.HasPrefix(v1, "v") {
			v1 = "v" + v1
		}
		v2 := cv.VersionNewName
		if !strings.HasPrefix(v2, "v") {
			v2 = "v" + v2
		}
		cv.VersionIsNew = semver.Compare(v2, v1) > 0
	}

	// 没有更新时把版本名称置空
	if !cv.VersionIsNew {
		cv.VersionNewName = ""
	}

	// 返回给客户端的版本号不带 v 前缀
	cv.VersionNewName = strings.TrimPrefix(cv.VersionNewName, "v")
	if cv.VersionNewLink == "" && cv.VersionNewName != "" {
		cv.VersionNewLink = "https://github.com/haierkeys/smart-mark-service/releases/tag/" + cv.VersionNewName
	}

	return cv
}

// SetCheckVersionInfo 设置版本检查信息
func (a *App) SetCheckVersionInfo(info pkgapp.CheckVersionInfo) {
	a.checkVersionMu.Lock()
	defer a.checkVersionMu.Unlock()
	a.checkVersion = info
}

// IsReturnSuccess 是否返回成功响应
func (a *App) IsReturnSuccess() bool {
	return a.config.App.IsReturnSussess
}

// GetAuthTokenKey 获取 Token 密钥
func (a *App) GetAuthTokenKey() string {
	return a.config.Security.AuthTokenKey
}

// IsProductionMode 是否为生产模式
// 根据日志配置中的 Production 字段判断
func (a *App) IsProductionMode() bool {
	return a.config.Log.Production
}

// ExecuteWrite 执行写操作（通过 Write Queue 串行化）
// uid: 用户 ID，用于确定写队列
// fn: 写操作函数
func (a *App) ExecuteWrite(ctx context.Context, uid int64, fn func() error) error {
	return a.writeQueueMgr.Execute(ctx, uid, fn)
}

// WorkerPool 获取 Worker Pool（用于高级操作）
func (a *App) WorkerPool() *workerpool.Pool {
	return a.workerPool
}

// WriteQueueManager 获取 Write Queue Manager（用于高级操作）
func (a *App) WriteQueueManager() *writequeue.Manager {
	return a.writeQueueMgr
}

// EnsureAdminUser 启动时按配置邮箱赋予管理员标记
func (a *App) EnsureAdminUser(ctx context.Context) error {
	email := a.config.User.AdminEmail
	if email == "" {
		return nil
	}

	user, err := a.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		// 账号尚未注册时跳过，下次启动再检查
		return nil
	}
	if user.IsAdmin {
		return nil
	}

	user.IsAdmin = true
	if err := a.UserRepo.Update(ctx, user); err != nil {
		return err
	}
	a.logger.Info("Admin flag granted", zap.Int64("uid", user.UID))
	return nil
}

// Shutdown 优雅关闭容器内的并发组件
func (a *App) Shutdown(ctx context.Context) {
	if a.writeQueueMgr != nil {
		a.writeQueueMgr.Shutdown(ctx)
	}
	if a.workerPool != nil {
		a.workerPool.Shutdown(ctx)
	}
}
