// Package domain 定义领域模型和接口
package domain

import (
	"context"
	"time"
)

// BookmarkRepository 书签仓储接口
type BookmarkRepository interface {
	// GetByID 根据ID获取书签
	GetByID(ctx context.Context, id string, uid int64) (*Bookmark, error)

	// GetAnyByID 不限归属获取书签，供归属校验使用
	GetAnyByID(ctx context.Context, id string) (*Bookmark, error)

	// Create 创建书签
	Create(ctx context.Context, bookmark *Bookmark, uid int64) (*Bookmark, error)

	// Update 更新书签
	Update(ctx context.Context, bookmark *Bookmark, uid int64) (*Bookmark, error)

	// Delete 删除书签，目标不存在时不报错
	Delete(ctx context.Context, id string, uid int64) error

	// DeleteAllByUID 删除用户的全部书签
	DeleteAllByUID(ctx context.Context, uid int64) error

	// ListByUID 获取用户的书签列表，按创建时间倒序
	ListByUID(ctx context.Context, uid int64) ([]*Bookmark, error)

	// ListPageByUID 分页获取用户的书签列表
	ListPageByUID(ctx context.Context, uid int64, page, pageSize int) ([]*Bookmark, error)

	// CountByUID 获取用户的书签数量
	CountByUID(ctx context.Context, uid int64) (int64, error)

	// CountAll 获取全站书签数量
	CountAll(ctx context.Context) (int64, error)

	// CountFutureAll 获取全站预定书签数量
	CountFutureAll(ctx context.Context) (int64, error)

	// CountFutureByUID 获取用户的预定书签数量
	CountFutureByUID(ctx context.Context, uid int64) (int64, error)

	// CountByDomain 按域名聚合书签数量，按数量倒序
	CountByDomain(ctx context.Context, limit int) ([]*DomainCount, error)

	// ListAllPage 分页获取全站书签，供管理端使用
	ListAllPage(ctx context.Context, page, pageSize int) ([]*Bookmark, error)

	// CountCreatedSince 统计指定时间之后创建的书签数量
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)

	// DeleteAnyByID 不限归属删除书签，供管理端使用，目标不存在时不报错
	DeleteAnyByID(ctx context.Context, id string) error
}

// NotificationRepository 通知仓储接口
type NotificationRepository interface {
	// GetByID 根据ID获取通知
	GetByID(ctx context.Context, id string, uid int64) (*Notification, error)

	// GetAnyByID 不限归属获取通知，供归属校验使用
	GetAnyByID(ctx context.Context, id string) (*Notification, error)

	// Create 追加通知
	Create(ctx context.Context, notification *Notification, uid int64) (*Notification, error)

	// ListByUID 获取用户的通知列表，按创建时间倒序
	ListByUID(ctx context.Context, uid int64, page, pageSize int) ([]*Notification, error)

	// CountByUID 获取用户的通知数量
	CountByUID(ctx context.Context, uid int64) (int64, error)

	// CountUnreadByUID 获取用户的未读通知数量
	CountUnreadByUID(ctx context.Context, uid int64) (int64, error)

	// MarkRead 标记单条通知已读
	MarkRead(ctx context.Context, id string, uid int64) error

	// MarkAllRead 标记用户全部通知已读
	MarkAllRead(ctx context.Context, uid int64) error

	// DeleteAllByUID 删除用户的全部通知
	DeleteAllByUID(ctx context.Context, uid int64) error

	// CountAll 获取全站通知数量
	CountAll(ctx context.Context) (int64, error)

	// CountUnreadAll 获取全站未读通知数量
	CountUnreadAll(ctx context.Context) (int64, error)
}

// AlarmRepository 闹钟仓储接口
type AlarmRepository interface {
	// GetByID 根据ID获取闹钟
	GetByID(ctx context.Context, id string, uid int64) (*Alarm, error)

	// Create 创建闹钟
	Create(ctx context.Context, alarm *Alarm, uid int64) (*Alarm, error)

	// Update 更新闹钟
	Update(ctx context.Context, alarm *Alarm, uid int64) (*Alarm, error)

	// Delete 删除闹钟，目标不存在时不报错
	Delete(ctx context.Context, id string, uid int64) error

	// DeleteAllByUID 删除用户的全部闹钟
	DeleteAllByUID(ctx context.Context, uid int64) error

	// ListByUID 获取用户的闹钟列表
	ListByUID(ctx context.Context, uid int64) ([]*Alarm, error)

	// ListEnabled 获取全部已启用的闹钟，供轮询任务使用
	ListEnabled(ctx context.Context) ([]*Alarm, error)

	// UpdateTriggeredDay 登记闹钟触发日
	UpdateTriggeredDay(ctx context.Context, id string, uid int64, day string) error

	// CountEnabledByUID 获取用户的已启用闹钟数量
	CountEnabledByUID(ctx context.Context, uid int64) (int64, error)

	// CountEnabledAll 获取全站已启用闹钟数量
	CountEnabledAll(ctx context.Context) (int64, error)
}

// UserRepository 用户仓储接口
type UserRepository interface {
	// GetByUID 根据UID获取用户
	GetByUID(ctx context.Context, uid int64) (*User, error)

	// GetByEmail 根据邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByUsername 根据用户名获取用户
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Create 创建用户
	Create(ctx context.Context, user *User) (*User, error)

	// Update 更新用户
	Update(ctx context.Context, user *User) error

	// Delete 删除用户
	Delete(ctx context.Context, uid int64) error

	// List 分页获取用户列表
	List(ctx context.Context, page, pageSize int) ([]*User, error)

	// Count 获取用户数量
	Count(ctx context.Context) (int64, error)

	// CountCreatedSince 统计指定时间之后注册的用户数量
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

// SettingRepository 用户偏好设置仓储接口
type SettingRepository interface {
	// GetByUID 获取用户的偏好设置
	GetByUID(ctx context.Context, uid int64) (*Setting, error)

	// Save 创建或更新用户的偏好设置
	Save(ctx context.Context, setting *Setting, uid int64) (*Setting, error)

	// DeleteByUID 删除用户的偏好设置
	DeleteByUID(ctx context.Context, uid int64) error
}
