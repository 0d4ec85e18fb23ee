package model

import (
	"time"
)

// Blog 用户博客，管理员审核后公开
type Blog struct {
	BlogID    int       `json:"blog_id" db:"blog_id" gorm:"primaryKey"`
	UserID    int       `json:"user_id" db:"user_id" gorm:"index"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content" gorm:"type:text"`
	ImageURL  string    `json:"image_url" db:"image_url"`
	IsVerify  bool      `json:"is_verify" db:"is_verify" gorm:"index"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID;references:UserID"`
}

// ReportBug 问题反馈
type ReportBug struct {
	BugID       int       `json:"bug_id" db:"bug_id" gorm:"primaryKey"`
	UserID      int       `json:"user_id" db:"user_id" gorm:"index"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description" gorm:"type:text"`
	URLImage    string    `json:"url_image" db:"url_image"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	User        *User     `json:"user,omitempty" gorm:"foreignKey:UserID;references:UserID"`
}

// RequestFeature 功能建议
type RequestFeature struct {
	FeatureID   int       `json:"feature_id" db:"feature_id" gorm:"primaryKey"`
	UserID      int       `json:"user_id" db:"user_id" gorm:"index"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description" gorm:"type:text"`
	URLImage    string    `json:"url_image" db:"url_image"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	User        *User     `json:"user,omitempty" gorm:"foreignKey:UserID;references:UserID"`
}
