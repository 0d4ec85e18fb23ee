package model

import (
	"time"
)

// User 用户模型
type User struct {
	UserID       int       `json:"user_id" db:"user_id" gorm:"primaryKey"`
	Email        string    `json:"email" db:"email" gorm:"unique"`
	Username     string    `json:"username" db:"username" gorm:"unique"`
	FullName     string    `json:"full_name" db:"full_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	AvatarURL    string    `json:"avatar_url" db:"avatar_url"`
	Role         string    `json:"role" db:"role"`
	IsVerify     bool      `json:"is_verify" db:"is_verify"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Notification 站内通知
type Notification struct {
	NotificationID int       `json:"notification_id" db:"notification_id" gorm:"primaryKey"`
	UserID         int       `json:"user_id" db:"user_id" gorm:"index"`
	Title          string    `json:"title" db:"title"`
	Content        string    `json:"content" db:"content" gorm:"type:text"`
	IsRead         bool      `json:"is_read" db:"is_read" gorm:"index"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
