package repository

import (
	"errors"
	"time"

	"github.com/user/phimhub/internal/model"
	"gorm.io/gorm"
)

type WatchlistRepository struct {
	db *gorm.DB
}

func NewWatchlistRepository(db *gorm.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// Toggle 切换待看状态：已在清单内则移除，否则加入
// 返回 true 表示本次操作后电影在清单中
func (r *WatchlistRepository) Toggle(userID, movieID int) (bool, error) {
	var existing model.Watchlist
	err := r.db.Where("user_id = ? AND movie_id = ?", userID, movieID).First(&existing).Error
	if err == nil {
		if err := r.db.Delete(&model.Watchlist{}, "watchlist_id = ?", existing.WatchlistID).Error; err != nil {
			return true, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	entry := &model.Watchlist{
		UserID:    userID,
		MovieID:   movieID,
		CreatedAt: time.Now(),
	}
	if err := r.db.Create(entry).Error; err != nil {
		return false, err
	}
	return true, nil
}

// ListByUser 获取用户待看清单（带电影信息）
func (r *WatchlistRepository) ListByUser(userID int) ([]*model.Watchlist, error) {
	var entries []*model.Watchlist
	err := r.db.Preload("Movie").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

// CountByUser 用户待看数量
func (r *WatchlistRepository) CountByUser(userID int) (int64, error) {
	var count int64
	err := r.db.Model(&model.Watchlist{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
