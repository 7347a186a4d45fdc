package model

import (
	"github.com/haierkeys/smart-mark-service/pkg/timex"
)

// User 用户表
type User struct {
	UID       int64      `gorm:"column:uid;primaryKey;autoIncrement" json:"uid"`
	Email     string     `gorm:"column:email;uniqueIndex" json:"email"`
	Username  string     `gorm:"column:username" json:"username"`
	Password  string     `gorm:"column:password" json:"-"`
	Avatar    string     `gorm:"column:avatar" json:"avatar"`
	IsAdmin   bool       `gorm:"column:is_admin" json:"isAdmin"`
	IsDeleted bool       `gorm:"column:is_deleted" json:"isDeleted"`
	CreatedAt timex.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at" json:"updatedAt"`
	DeletedAt timex.Time `gorm:"column:deleted_at" json:"deletedAt"`
}

func (User) TableName() string {
	return "user"
}
