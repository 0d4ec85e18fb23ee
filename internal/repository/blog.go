package repository

import (
	"errors"
	"time"

	"github.com/user/phimhub/internal/model"
	"gorm.io/gorm"
)

type BlogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

// Create 创建博客，默认未审核
func (r *BlogRepository) Create(blog *model.Blog) error {
	now := time.Now()
	blog.CreatedAt = now
	blog.UpdatedAt = now
	return r.db.Create(blog).Error
}

// FindByID 按 ID 查找博客（带作者信息）
func (r *BlogRepository) FindByID(id int) (*model.Blog, error) {
	var blog model.Blog
	err := r.db.Preload("User").First(&blog, "blog_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// List 分页获取博客，verifiedOnly 为 true 时仅返回已审核的
func (r *BlogRepository) List(searchTerm string, verifiedOnly bool, limit, offset int) ([]*model.Blog, int64, error) {
	base := r.db.Model(&model.Blog{})
	if verifiedOnly {
		base = base.Where("is_verify = true")
	}
	if searchTerm != "" {
		base = base.Where("title ILIKE ?", "%"+searchTerm+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var blogs []*model.Blog
	err := base.Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&blogs).Error
	return blogs, total, err
}

// Update 更新博客
func (r *BlogRepository) Update(blogID int, title, content, imageURL string) error {
	return r.db.Model(&model.Blog{}).
		Where("blog_id = ?", blogID).
		Updates(map[string]interface{}{
			"title":      title,
			"content":    content,
			"image_url":  imageURL,
			"updated_at": time.Now(),
		}).Error
}

// Verify 审核通过
func (r *BlogRepository) Verify(blogID int) error {
	return r.db.Model(&model.Blog{}).
		Where("blog_id = ?", blogID).
		Update("is_verify", true).Error
}

// Delete 删除博客
func (r *BlogRepository) Delete(blogID int) error {
	return r.db.Delete(&model.Blog{}, "blog_id = ?", blogID).Error
}

// TopBlogger 高产作者统计
type TopBlogger struct {
	UserID    int    `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	BlogCount int    `json:"blog_count"`
}

// TopBloggers 按发文数排序的作者榜
func (r *BlogRepository) TopBloggers(limit int) ([]*TopBlogger, error) {
	var bloggers []*TopBlogger
	err := r.db.Model(&model.Blog{}).
		Select("blogs.user_id, users.username, users.email, users.avatar_url, COUNT(blogs.blog_id) AS blog_count").
		Joins("JOIN users ON users.user_id = blogs.user_id").
		Group("blogs.user_id, users.username, users.email, users.avatar_url").
		Order("blog_count DESC").
		Limit(limit).
		Scan(&bloggers).Error
	return bloggers, err
}

// CountByUser 用户发文总数
func (r *BlogRepository) CountByUser(userID int) (int64, error) {
	var count int64
	err := r.db.Model(&model.Blog{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
