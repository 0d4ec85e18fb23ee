package repository

import (
	"errors"
	"time"

	"github.com/user/phimhub/internal/model"
	"gorm.io/gorm"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Add 记录一次观影
func (r *HistoryRepository) Add(userID, movieID int) (*model.WatchHistory, error) {
	history := &model.WatchHistory{
		UserID:    userID,
		MovieID:   movieID,
		WatchedAt: time.Now(),
	}
	if err := r.db.Create(history).Error; err != nil {
		return nil, err
	}
	return history, nil
}

// FindByID 按 ID 查找观影记录
func (r *HistoryRepository) FindByID(id int) (*model.WatchHistory, error) {
	var history model.WatchHistory
	err := r.db.First(&history, "history_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &history, nil
}

// ListByUser 分页获取用户观影历史（带电影信息）
func (r *HistoryRepository) ListByUser(userID, limit, offset int) ([]*model.WatchHistory, int64, error) {
	var total int64
	if err := r.db.Model(&model.WatchHistory{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var histories []*model.WatchHistory
	err := r.db.Preload("Movie").
		Where("user_id = ?", userID).
		Order("watched_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&histories).Error
	return histories, total, err
}

// Delete 删除观影记录
func (r *HistoryRepository) Delete(historyID int) error {
	return r.db.Delete(&model.WatchHistory{}, "history_id = ?", historyID).Error
}

// DeleteOlderThan 清理指定天数之前的观影记录，返回删除条数
func (r *HistoryRepository) DeleteOlderThan(days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	result := r.db.Where("watched_at < ?", cutoff).Delete(&model.WatchHistory{})
	return result.RowsAffected, result.Error
}
