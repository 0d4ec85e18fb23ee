package repository

import (
	"errors"

	"github.com/user/phimhub/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CountryRepository struct {
	db *gorm.DB
}

func NewCountryRepository(db *gorm.DB) *CountryRepository {
	return &CountryRepository{db: db}
}

// FindByName 按名字精确查找（区分大小写，不存在返回 nil, nil）
func (r *CountryRepository) FindByName(name string) (*model.Country, error) {
	var country model.Country
	err := r.db.Where("name = ?", name).First(&country).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &country, nil
}

// FindByID 按 ID 查找
func (r *CountryRepository) FindByID(id int) (*model.Country, error) {
	var country model.Country
	err := r.db.First(&country, "country_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &country, nil
}

// Create 创建国家，名字撞唯一约束时返回 gorm.ErrDuplicatedKey
func (r *CountryRepository) Create(country *model.Country) error {
	return r.db.Create(country).Error
}

// AttachMovie 写入电影-国家关联，已存在则什么都不做
func (r *CountryRepository) AttachMovie(movieID, countryID int) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.MovieCountry{MovieID: movieID, CountryID: countryID}).Error
}

// ListAll 获取全部国家（筛选项用）
func (r *CountryRepository) ListAll() ([]*model.Country, error) {
	var countries []*model.Country
	err := r.db.Order("country_id ASC").Find(&countries).Error
	return countries, err
}

// SearchByName 按名字模糊搜索
func (r *CountryRepository) SearchByName(name string) ([]*model.Country, error) {
	var countries []*model.Country
	err := r.db.Where("name ILIKE ?", "%"+name+"%").Order("country_id ASC").Find(&countries).Error
	return countries, err
}

// Update 更新国家
func (r *CountryRepository) Update(country *model.Country) error {
	return r.db.Model(&model.Country{}).
		Where("country_id = ?", country.CountryID).
		Updates(map[string]interface{}{"name": country.Name, "slug": country.Slug}).Error
}

// Delete 删除国家及其关联
func (r *CountryRepository) Delete(id int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("country_id = ?", id).Delete(&model.MovieCountry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Country{}, "country_id = ?", id).Error
	})
}
