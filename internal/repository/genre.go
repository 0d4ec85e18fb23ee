package repository

import (
	"errors"

	"github.com/user/phimhub/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GenreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

// FindByName 按名字精确查找（区分大小写，不存在返回 nil, nil）
func (r *GenreRepository) FindByName(name string) (*model.Genre, error) {
	var genre model.Genre
	err := r.db.Where("name = ?", name).First(&genre).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

// FindByID 按 ID 查找
func (r *GenreRepository) FindByID(id int) (*model.Genre, error) {
	var genre model.Genre
	err := r.db.First(&genre, "genre_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

// Create 创建类型，名字撞唯一约束时返回 gorm.ErrDuplicatedKey
func (r *GenreRepository) Create(genre *model.Genre) error {
	return r.db.Create(genre).Error
}

// AttachMovie 写入电影-类型关联，已存在则什么都不做
func (r *GenreRepository) AttachMovie(movieID, genreID int) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.MovieGenre{MovieID: movieID, GenreID: genreID}).Error
}

// List 分页获取类型列表
func (r *GenreRepository) List(limit, offset int) ([]*model.Genre, int64, error) {
	var genres []*model.Genre
	var total int64

	if err := r.db.Model(&model.Genre{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Order("genre_id ASC").Limit(limit).Offset(offset).Find(&genres).Error
	return genres, total, err
}

// ListAll 获取全部类型（筛选项用）
func (r *GenreRepository) ListAll() ([]*model.Genre, error) {
	var genres []*model.Genre
	err := r.db.Order("genre_id ASC").Find(&genres).Error
	return genres, err
}

// Update 更新类型
func (r *GenreRepository) Update(genre *model.Genre) error {
	return r.db.Model(&model.Genre{}).
		Where("genre_id = ?", genre.GenreID).
		Updates(map[string]interface{}{"name": genre.Name, "slug": genre.Slug}).Error
}

// Delete 删除类型及其关联
func (r *GenreRepository) Delete(id int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("genre_id = ?", id).Delete(&model.MovieGenre{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Genre{}, "genre_id = ?", id).Error
	})
}
