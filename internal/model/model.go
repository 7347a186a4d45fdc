// Package model 定义数据库模型
package model

import (
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "Bookmark":
		return db.AutoMigrate(Bookmark{})

	case "Notification":
		return db.AutoMigrate(Notification{})

	case "Alarm":
		return db.AutoMigrate(Alarm{})

	case "User":
		return db.AutoMigrate(User{})

	case "Setting":
		return db.AutoMigrate(Setting{})
	}
	return nil
}

// AutoMigrateAll 迁移全部表
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		Bookmark{},
		Notification{},
		Alarm{},
		User{},
		Setting{},
	)
}
