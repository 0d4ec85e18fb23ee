package repository

import (
	"errors"
	"time"

	"github.com/user/phimhub/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlaylistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create 创建片单
func (r *PlaylistRepository) Create(playlist *model.Playlist) error {
	playlist.CreatedAt = time.Now()
	return r.db.Create(playlist).Error
}

// FindByID 按 ID 查找片单
func (r *PlaylistRepository) FindByID(id int) (*model.Playlist, error) {
	var playlist model.Playlist
	err := r.db.First(&playlist, "playlist_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

// ListByUser 获取用户片单列表
func (r *PlaylistRepository) ListByUser(userID int) ([]*model.Playlist, error) {
	var playlists []*model.Playlist
	err := r.db.Where("user_id = ?", userID).Order("playlist_id ASC").Find(&playlists).Error
	return playlists, err
}

// Rename 更新片单名称
func (r *PlaylistRepository) Rename(playlistID int, name string) error {
	return r.db.Model(&model.Playlist{}).
		Where("playlist_id = ?", playlistID).
		Update("name", name).Error
}

// Delete 删除片单及其电影关联
func (r *PlaylistRepository) Delete(playlistID int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", playlistID).Delete(&model.PlaylistMovie{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Playlist{}, "playlist_id = ?", playlistID).Error
	})
}

// AddMovie 添加电影到片单，已存在则什么都不做
func (r *PlaylistRepository) AddMovie(playlistID, movieID int) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.PlaylistMovie{PlaylistID: playlistID, MovieID: movieID}).Error
}

// RemoveMovie 从片单移除电影
func (r *PlaylistRepository) RemoveMovie(playlistID, movieID int) error {
	return r.db.Where("playlist_id = ? AND movie_id = ?", playlistID, movieID).
		Delete(&model.PlaylistMovie{}).Error
}

// ListMovies 分页获取片单内电影
func (r *PlaylistRepository) ListMovies(playlistID, limit, offset int) ([]*model.Movie, int64, error) {
	var total int64
	if err := r.db.Model(&model.PlaylistMovie{}).
		Where("playlist_id = ?", playlistID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*model.PlaylistMovie
	err := r.db.Preload("Movie").
		Where("playlist_id = ?", playlistID).
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	movies := make([]*model.Movie, 0, len(items))
	for _, item := range items {
		if item.Movie != nil {
			movies = append(movies, item.Movie)
		}
	}
	return movies, total, nil
}

// FirstMoviePoster 片单封面：第一部电影的海报
func (r *PlaylistRepository) FirstMoviePoster(playlistID int) (string, error) {
	var item model.PlaylistMovie
	err := r.db.Preload("Movie").
		Where("playlist_id = ?", playlistID).
		Order("movie_id ASC").
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if item.Movie == nil {
		return "", nil
	}
	return item.Movie.PosterURL, nil
}
