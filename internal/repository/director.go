package repository

import (
	"errors"

	"github.com/user/phimhub/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DirectorRepository struct {
	db *gorm.DB
}

func NewDirectorRepository(db *gorm.DB) *DirectorRepository {
	return &DirectorRepository{db: db}
}

// FindByName 按名字精确查找（区分大小写，不存在返回 nil, nil）
func (r *DirectorRepository) FindByName(name string) (*model.Director, error) {
	var director model.Director
	err := r.db.Where("name = ?", name).First(&director).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &director, nil
}

// FindByID 按 ID 查找
func (r *DirectorRepository) FindByID(id int) (*model.Director, error) {
	var director model.Director
	err := r.db.First(&director, "director_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &director, nil
}

// Create 创建导演，名字撞唯一约束时返回 gorm.ErrDuplicatedKey
func (r *DirectorRepository) Create(director *model.Director) error {
	return r.db.Create(director).Error
}

// AttachMovie 写入电影-导演关联，已存在则什么都不做
func (r *DirectorRepository) AttachMovie(movieID, directorID int) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.MovieDirector{MovieID: movieID, DirectorID: directorID}).Error
}

// List 分页获取导演列表，name 非空时按名字模糊过滤
func (r *DirectorRepository) List(name string, limit, offset int) ([]*model.Director, int64, error) {
	var directors []*model.Director
	var total int64

	base := r.db.Model(&model.Director{})
	if name != "" {
		base = base.Where("name ILIKE ?", "%"+name+"%")
	}
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.Order("director_id ASC").Limit(limit).Offset(offset).Find(&directors).Error
	return directors, total, err
}

// Update 更新导演
func (r *DirectorRepository) Update(director *model.Director) error {
	return r.db.Model(&model.Director{}).
		Where("director_id = ?", director.DirectorID).
		Update("name", director.Name).Error
}

// Delete 删除导演及其关联
func (r *DirectorRepository) Delete(id int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("director_id = ?", id).Delete(&model.MovieDirector{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Director{}, "director_id = ?", id).Error
	})
}
