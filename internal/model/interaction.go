package model

import (
	"time"
)

// Comment 影评评论
type Comment struct {
	CommentID int       `json:"comment_id" db:"comment_id" gorm:"primaryKey"`
	UserID    int       `json:"user_id" db:"user_id" gorm:"index"`
	MovieID   int       `json:"movie_id" db:"movie_id" gorm:"index"`
	Content   string    `json:"content" db:"content" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID;references:UserID"`
}

// Rating 评分，每个用户对每部电影只能评一次
type Rating struct {
	RatingID  int       `json:"rating_id" db:"rating_id" gorm:"primaryKey"`
	UserID    int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_user_movie_rating"`
	MovieID   int       `json:"movie_id" db:"movie_id" gorm:"uniqueIndex:idx_user_movie_rating"`
	Score     int       `json:"score" db:"score"` // 1-5
	Review    string    `json:"review" db:"review" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID;references:UserID"`
}

// RatingReaction 评分的点赞/点踩，一个用户对一条评分只能有一种态度
type RatingReaction struct {
	ReactionID int  `json:"reaction_id" db:"reaction_id" gorm:"primaryKey"`
	UserID     int  `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_user_rating_reaction"`
	RatingID   int  `json:"rating_id" db:"rating_id" gorm:"uniqueIndex:idx_user_rating_reaction"`
	IsLike     bool `json:"is_like" db:"is_like"`
}

// Playlist 用户自建片单
type Playlist struct {
	PlaylistID int       `json:"playlist_id" db:"playlist_id" gorm:"primaryKey"`
	UserID     int       `json:"user_id" db:"user_id" gorm:"index"`
	Name       string    `json:"name" db:"name"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// PlaylistMovie 片单-电影关联
type PlaylistMovie struct {
	PlaylistID int    `json:"playlist_id" db:"playlist_id" gorm:"primaryKey;autoIncrement:false"`
	MovieID    int    `json:"movie_id" db:"movie_id" gorm:"primaryKey;autoIncrement:false"`
	Movie      *Movie `json:"movie,omitempty" gorm:"foreignKey:MovieID;references:MovieID"`
}

// WatchHistory 观影历史
type WatchHistory struct {
	HistoryID int       `json:"history_id" db:"history_id" gorm:"primaryKey"`
	UserID    int       `json:"user_id" db:"user_id" gorm:"index"`
	MovieID   int       `json:"movie_id" db:"movie_id"`
	WatchedAt time.Time `json:"watched_at" db:"watched_at" gorm:"index"`
	Movie     *Movie    `json:"movie,omitempty" gorm:"foreignKey:MovieID;references:MovieID"`
}

// Watchlist 待看清单，(user_id, movie_id) 唯一，重复提交即取消
type Watchlist struct {
	WatchlistID int       `json:"watchlist_id" db:"watchlist_id" gorm:"primaryKey"`
	UserID      int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_user_movie_watchlist"`
	MovieID     int       `json:"movie_id" db:"movie_id" gorm:"uniqueIndex:idx_user_movie_watchlist"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	Movie       *Movie    `json:"movie,omitempty" gorm:"foreignKey:MovieID;references:MovieID"`
}
