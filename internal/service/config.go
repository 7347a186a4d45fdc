// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	User UserServiceConfig // User related config // 用户相关配置
	App  AppServiceConfig  // App related config // 应用相关配置
}

// UserServiceConfig user service configuration
// UserServiceConfig 用户服务配置
type UserServiceConfig struct {
	RegisterIsEnable bool   // Whether registration is enabled // 注册是否启用
	AvatarURL        string // Avatar URL template, %s replaced by username // 头像地址模板，%s 替换为用户名
}

// AppServiceConfig app service configuration
// AppServiceConfig 应用服务配置
type AppServiceConfig struct {
	DomainTopLimit      int    // Max entries in the domain aggregation // 域名聚合返回的最大条目数
	DefaultAlarmMessage string // Fallback alarm message // 闹钟默认提醒文案
}
