package repository

import (
	"errors"
	"time"

	"github.com/user/phimhub/internal/model"
	"gorm.io/gorm"
)

type ReportBugRepository struct {
	db *gorm.DB
}

func NewReportBugRepository(db *gorm.DB) *ReportBugRepository {
	return &ReportBugRepository{db: db}
}

// Create 提交错误报告
func (r *ReportBugRepository) Create(report *model.ReportBug) error {
	report.CreatedAt = time.Now()
	return r.db.Create(report).Error
}

// FindByID 按 ID 查找报告
func (r *ReportBugRepository) FindByID(id int) (*model.ReportBug, error) {
	var report model.ReportBug
	err := r.db.Preload("User").First(&report, "bug_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// List 分页获取全部错误报告（管理后台用）
func (r *ReportBugRepository) List(limit, offset int) ([]*model.ReportBug, int64, error) {
	var total int64
	if err := r.db.Model(&model.ReportBug{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []*model.ReportBug
	err := r.db.Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reports).Error
	return reports, total, err
}

// ListByUser 分页获取某个用户提交的错误报告
func (r *ReportBugRepository) ListByUser(userID, limit, offset int) ([]*model.ReportBug, int64, error) {
	var total int64
	if err := r.db.Model(&model.ReportBug{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []*model.ReportBug
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reports).Error
	return reports, total, err
}

// Update 更新报告内容
func (r *ReportBugRepository) Update(reportID int, title, description, urlImage string) error {
	return r.db.Model(&model.ReportBug{}).
		Where("bug_id = ?", reportID).
		Updates(map[string]interface{}{
			"title":       title,
			"description": description,
			"url_image":   urlImage,
		}).Error
}

// Delete 删除报告
func (r *ReportBugRepository) Delete(reportID int) error {
	return r.db.Delete(&model.ReportBug{}, "bug_id = ?", reportID).Error
}

type RequestFeatureRepository struct {
	db *gorm.DB
}

func NewRequestFeatureRepository(db *gorm.DB) *RequestFeatureRepository {
	return &RequestFeatureRepository{db: db}
}

// Create 提交功能建议
func (r *RequestFeatureRepository) Create(req *model.RequestFeature) error {
	req.CreatedAt = time.Now()
	return r.db.Create(req).Error
}

// FindByID 按 ID 查找建议
func (r *RequestFeatureRepository) FindByID(id int) (*model.RequestFeature, error) {
	var req model.RequestFeature
	err := r.db.Preload("User").First(&req, "feature_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// List 分页获取全部功能建议
func (r *RequestFeatureRepository) List(limit, offset int) ([]*model.RequestFeature, int64, error) {
	var total int64
	if err := r.db.Model(&model.RequestFeature{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reqs []*model.RequestFeature
	err := r.db.Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reqs).Error
	return reqs, total, err
}

// ListByUser 分页获取某个用户提交的功能建议
func (r *RequestFeatureRepository) ListByUser(userID, limit, offset int) ([]*model.RequestFeature, int64, error) {
	var total int64
	if err := r.db.Model(&model.RequestFeature{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reqs []*model.RequestFeature
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reqs).Error
	return reqs, total, err
}

// Update 更新建议内容
func (r *RequestFeatureRepository) Update(requestID int, title, description, urlImage string) error {
	return r.db.Model(&model.RequestFeature{}).
		Where("feature_id = ?", requestID).
		Updates(map[string]interface{}{
			"title":       title,
			"description": description,
			"url_image":   urlImage,
		}).Error
}

// Delete 删除建议
func (r *RequestFeatureRepository) Delete(requestID int) error {
	return r.db.Delete(&model.RequestFeature{}, "feature_id = ?", requestID).Error
}
