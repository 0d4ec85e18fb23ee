package repository

import (
	"errors"

	"github.com/user/phimhub/internal/model"
	"gorm.io/gorm"
)

type EpisodeRepository struct {
	db *gorm.DB
}

func NewEpisodeRepository(db *gorm.DB) *EpisodeRepository {
	return &EpisodeRepository{db: db}
}

// FindByMovieAndSlug 根据 (movie_id, slug) 自然键查找剧集（不存在返回 nil, nil）
func (r *EpisodeRepository) FindByMovieAndSlug(movieID int, slug string) (*model.Episode, error) {
	var episode model.Episode
	err := r.db.Where("movie_id = ? AND slug = ?", movieID, slug).First(&episode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &episode, nil
}

// FindByID 按 ID 查找剧集
func (r *EpisodeRepository) FindByID(id int) (*model.Episode, error) {
	var episode model.Episode
	err := r.db.First(&episode, "episode_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &episode, nil
}

// Create 创建剧集
func (r *EpisodeRepository) Create(episode *model.Episode) error {
	return r.db.Create(episode).Error
}

// Update 原地更新剧集可变字段（server_name/name/filename/link_film）
// 身份字段 (movie_id, slug) 不变
func (r *EpisodeRepository) Update(episode *model.Episode) error {
	return r.db.Model(&model.Episode{}).
		Where("episode_id = ?", episode.EpisodeID).
		Updates(map[string]interface{}{
			"server_name": episode.ServerName,
			"name":        episode.Name,
			"filename":    episode.Filename,
			"link_film":   episode.LinkFilm,
		}).Error
}

// ListByMovie 获取一部电影的全部剧集
func (r *EpisodeRepository) ListByMovie(movieID int) ([]*model.Episode, error) {
	var episodes []*model.Episode
	err := r.db.Where("movie_id = ?", movieID).Order("episode_id ASC").Find(&episodes).Error
	return episodes, err
}

// Delete 删除剧集
func (r *EpisodeRepository) Delete(id int) error {
	return r.db.Delete(&model.Episode{}, "episode_id = ?", id).Error
}
