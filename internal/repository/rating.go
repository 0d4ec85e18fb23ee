package repository

import (
	"errors"
	"time"

	"github.com/user/phimhub/internal/model"
	"gorm.io/gorm"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Create 创建评分
func (r *RatingRepository) Create(rating *model.Rating) error {
	rating.CreatedAt = time.Now()
	return r.db.Create(rating).Error
}

// FindByID 按 ID 查找评分
func (r *RatingRepository) FindByID(id int) (*model.Rating, error) {
	var rating model.Rating
	err := r.db.First(&rating, "rating_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// FindByUserAndMovie 查找用户对某部电影的评分
func (r *RatingRepository) FindByUserAndMovie(userID, movieID int) (*model.Rating, error) {
	var rating model.Rating
	err := r.db.Where("user_id = ? AND movie_id = ?", userID, movieID).First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// ListByMovie 获取一部电影的全部评分（带用户信息）
func (r *RatingRepository) ListByMovie(movieID int) ([]*model.Rating, error) {
	var ratings []*model.Rating
	err := r.db.Preload("User").
		Where("movie_id = ?", movieID).
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}

// Update 更新评分内容
func (r *RatingRepository) Update(ratingID, score int, review string) error {
	return r.db.Model(&model.Rating{}).
		Where("rating_id = ?", ratingID).
		Updates(map[string]interface{}{"score": score, "review": review}).Error
}

// AverageScore 电影平均分，无评分时返回 0
func (r *RatingRepository) AverageScore(movieID int) (float64, error) {
	var avg *float64
	err := r.db.Model(&model.Rating{}).
		Where("movie_id = ?", movieID).
		Select("AVG(score)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

// CountByUser 用户评分总数
func (r *RatingRepository) CountByUser(userID int) (int64, error) {
	var count int64
	err := r.db.Model(&model.Rating{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// ==================== 点赞/点踩 ====================

// FindReaction 查找用户对一条评分的态度
func (r *RatingRepository) FindReaction(userID, ratingID int) (*model.RatingReaction, error) {
	var reaction model.RatingReaction
	err := r.db.Where("user_id = ? AND rating_id = ?", userID, ratingID).First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

// CountReactions 统计一条评分的点赞/点踩数量
func (r *RatingRepository) CountReactions(ratingID int) (likes, dislikes int64, err error) {
	if err = r.db.Model(&model.RatingReaction{}).
		Where("rating_id = ? AND is_like = true", ratingID).Count(&likes).Error; err != nil {
		return
	}
	err = r.db.Model(&model.RatingReaction{}).
		Where("rating_id = ? AND is_like = false", ratingID).Count(&dislikes).Error
	return
}

// ToggleReaction 切换点赞/点踩：
// 同态度再点一次 -> 删除；相反态度 -> 翻转；没有 -> 新建
func (r *RatingRepository) ToggleReaction(userID, ratingID int, isLike bool) error {
	existing, err := r.FindReaction(userID, ratingID)
	if err != nil {
		return err
	}

	if existing == nil {
		return r.db.Create(&model.RatingReaction{
			UserID:   userID,
			RatingID: ratingID,
			IsLike:   isLike,
		}).Error
	}

	if existing.IsLike == isLike {
		return r.db.Delete(&model.RatingReaction{}, "reaction_id = ?", existing.ReactionID).Error
	}

	return r.db.Model(&model.RatingReaction{}).
		Where("reaction_id = ?", existing.ReactionID).
		Update("is_like", isLike).Error
}
