package routers

import (
	"time"

	"github.com/haierkeys/smart-mark-service/internal/app"
	"github.com/haierkeys/smart-mark-service/internal/middleware"
	"github.com/haierkeys/smart-mark-service/internal/routers/api_router"
	"github.com/haierkeys/smart-mark-service/internal/routers/websocket_router"
	"github.com/haierkeys/smart-mark-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/auth",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
	limiter.BucketRule{
		Key:          "/api/user/login",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
)

// NewRouter 创建公开路由
// 注册 HTTP API、WebSocket 入口和通用中间件链
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()

	wss := appContainer.WSS

	// 创建 WebSocket Handlers（注入 App Container）
	notificationWSHandler := websocket_router.NewNotificationWSHandler(appContainer)
	bookmarkWSHandler := websocket_router.NewBookmarkWSHandler(appContainer)

	// 通知已读 / 未读数量
	wss.Use("NotificationRead", notificationWSHandler.NotificationRead)
	wss.Use("NotificationUnread", notificationWSHandler.NotificationUnread)
	// 书签拉取 / 创建
	wss.Use("BookmarkSync", bookmarkWSHandler.BookmarkSync)
	wss.Use("BookmarkModify", bookmarkWSHandler.BookmarkModify)

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfo())
		api.Use(gin.Logger())
		if cfg.Tracer.Enabled {
			api.Use(middleware.Tracer(cfg.Tracer.Header))
		}
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLog())
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		userHandler := api_router.NewUserHandler(appContainer)
		bookmarkHandler := api_router.NewBookmarkHandler(appContainer)
		notificationHandler := api_router.NewNotificationHandler(appContainer)
		alarmHandler := api_router.NewAlarmHandler(appContainer)
		settingHandler := api_router.NewSettingHandler(appContainer)
		adminHandler := api_router.NewAdminHandler(appContainer)
		adminControlHandler := api_router.NewAdminControlHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)

		// 无需认证的接口
		api.POST("/user/register", userHandler.Register)
		api.POST("/user/login", userHandler.Login)
		api.GET("/version", versionHandler.ServerVersion)
		api.GET("/health", healthHandler.Check)

		// WebSocket 入口，认证通过 Authorization 消息完成
		api.GET("/user/sync", wss.Run())

		// 需要用户认证的接口
		auth := api.Group("")
		auth.Use(middleware.UserAuthToken(appContainer.TokenManager))
		{
			auth.POST("/user/change_password", userHandler.UserChangePassword)
			auth.GET("/user/info", userHandler.UserInfo)
			auth.GET("/user/stats", userHandler.Stats)
			auth.DELETE("/user", userHandler.DeleteAccount)

			auth.POST("/bookmark", bookmarkHandler.Create)
			auth.PUT("/bookmark", bookmarkHandler.Update)
			auth.DELETE("/bookmark", bookmarkHandler.Delete)
			auth.GET("/bookmark", bookmarkHandler.Get)
			auth.GET("/bookmarks", bookmarkHandler.List)

			auth.GET("/notifications", notificationHandler.List)
			auth.POST("/notification/read", notificationHandler.Read)
			auth.POST("/notification/read_all", notificationHandler.ReadAll)
			auth.GET("/notification/unread", notificationHandler.Unread)

			auth.POST("/alarm", alarmHandler.Add)
			auth.PUT("/alarm", alarmHandler.Update)
			auth.POST("/alarm/toggle", alarmHandler.Toggle)
			auth.DELETE("/alarm", alarmHandler.Delete)
			auth.GET("/alarms", alarmHandler.List)

			auth.GET("/setting", settingHandler.Get)
			auth.POST("/setting", settingHandler.Save)
		}

		// 需要管理员权限的接口
		admin := api.Group("/admin")
		admin.Use(middleware.UserAuthToken(appContainer.TokenManager))
		admin.Use(middleware.AdminAuth(appContainer.UserRepo))
		{
			admin.GET("/stats", adminHandler.Stats)
			admin.GET("/users", adminHandler.Users)
			admin.GET("/bookmarks", adminHandler.Bookmarks)
			admin.DELETE("/bookmark", adminHandler.DeleteBookmark)
			admin.DELETE("/user", adminHandler.DeleteUser)
			admin.GET("/domains", adminHandler.Domains)
			admin.GET("/systeminfo", adminControlHandler.GetSystemInfo)
			admin.POST("/gc", adminControlHandler.GC)
		}
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}
