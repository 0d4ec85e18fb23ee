package repository

import (
	"errors"

	"github.com/user/phimhub/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActorRepository struct {
	db *gorm.DB
}

func NewActorRepository(db *gorm.DB) *ActorRepository {
	return &ActorRepository{db: db}
}

// FindByName 按名字精确查找（区分大小写，不存在返回 nil, nil）
func (r *ActorRepository) FindByName(name string) (*model.Actor, error) {
	var actor model.Actor
	err := r.db.Where("name = ?", name).First(&actor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &actor, nil
}

// FindByID 按 ID 查找
func (r *ActorRepository) FindByID(id int) (*model.Actor, error) {
	var actor model.Actor
	err := r.db.First(&actor, "actor_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &actor, nil
}

// Create 创建演员，名字撞唯一约束时返回 gorm.ErrDuplicatedKey
func (r *ActorRepository) Create(actor *model.Actor) error {
	return r.db.Create(actor).Error
}

// AttachMovie 写入电影-演员关联，已存在则什么都不做
func (r *ActorRepository) AttachMovie(movieID, actorID int) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.MovieActor{MovieID: movieID, ActorID: actorID}).Error
}

// List 分页获取演员列表，name 非空时按名字模糊过滤
func (r *ActorRepository) List(name string, limit, offset int) ([]*model.Actor, int64, error) {
	var actors []*model.Actor
	var total int64

	base := r.db.Model(&model.Actor{})
	if name != "" {
		base = base.Where("name ILIKE ?", "%"+name+"%")
	}
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.Order("actor_id ASC").Limit(limit).Offset(offset).Find(&actors).Error
	return actors, total, err
}

// Update 更新演员
func (r *ActorRepository) Update(actor *model.Actor) error {
	return r.db.Model(&model.Actor{}).
		Where("actor_id = ?", actor.ActorID).
		Update("name", actor.Name).Error
}

// Delete 删除演员及其关联
func (r *ActorRepository) Delete(id int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("actor_id = ?", id).Delete(&model.MovieActor{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Actor{}, "actor_id = ?", id).Error
	})
}
