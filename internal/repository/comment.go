package repository

import (
	"errors"
	"time"

	"github.com/user/phimhub/internal/model"
	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create 创建评论
func (r *CommentRepository) Create(comment *model.Comment) error {
	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	return r.db.Create(comment).Error
}

// FindByID 按 ID 查找评论
func (r *CommentRepository) FindByID(id int) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.First(&comment, "comment_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByMovie 获取一部电影的评论（带用户信息）
func (r *CommentRepository) ListByMovie(movieID, limit, offset int) ([]*model.Comment, int64, error) {
	var comments []*model.Comment
	var total int64

	if err := r.db.Model(&model.Comment{}).Where("movie_id = ?", movieID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Preload("User").
		Where("movie_id = ?", movieID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, total, err
}

// Update 更新评论内容
func (r *CommentRepository) Update(commentID int, content string) error {
	return r.db.Model(&model.Comment{}).
		Where("comment_id = ?", commentID).
		Updates(map[string]interface{}{"content": content, "updated_at": time.Now()}).Error
}

// Delete 删除评论
func (r *CommentRepository) Delete(commentID int) error {
	return r.db.Delete(&model.Comment{}, "comment_id = ?", commentID).Error
}

// CountByUser 用户评论总数
func (r *CommentRepository) CountByUser(userID int) (int64, error) {
	var count int64
	err := r.db.Model(&model.Comment{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
