package repository

import (
	"errors"
	"time"

	"github.com/user/phimhub/internal/model"
	"gorm.io/gorm"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// FindBySlug 根据 slug 查找电影（不存在返回 nil, nil）
func (r *MovieRepository) FindBySlug(slug string) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.Where("slug = ?", slug).First(&movie).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// FindByID 根据 ID 查找电影
func (r *MovieRepository) FindByID(id int) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.First(&movie, "movie_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// FindByIDWithRelations 查找电影详情并预加载关联
func (r *MovieRepository) FindByIDWithRelations(id int) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.
		Preload("Genres").
		Preload("Countries").
		Preload("Actors").
		Preload("Directors").
		Preload("Episodes").
		First(&movie, "movie_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// Create 创建电影
func (r *MovieRepository) Create(movie *model.Movie) error {
	now := time.Now()
	movie.CreatedAt = now
	movie.UpdatedAt = now
	return r.db.Create(movie).Error
}

// Update 全量覆盖电影标量字段
func (r *MovieRepository) Update(movie *model.Movie) error {
	movie.UpdatedAt = time.Now()
	return r.db.Model(&model.Movie{}).
		Where("movie_id = ?", movie.MovieID).
		Select("name", "origin_name", "content", "type", "status", "thumb_url", "poster_url",
			"trailer_url", "duration", "episode_current", "episode_total", "quality", "lang",
			"notify", "showtimes", "year", "view", "is_copyright", "chieurap", "sub_docquyen",
			"tmdb_vote_count", "tmdb_vote_average", "updated_at").
		Updates(movie).Error
}

// List 分页获取电影列表
func (r *MovieRepository) List(limit, offset int) ([]*model.Movie, int64, error) {
	var movies []*model.Movie
	var total int64

	if err := r.db.Model(&model.Movie{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Order("movie_id DESC").Limit(limit).Offset(offset).Find(&movies).Error
	return movies, total, err
}

// Search 按名称/原名/类型/演职人员/国家模糊搜索（不区分大小写）
func (r *MovieRepository) Search(keyword string, limit, offset int) ([]*model.Movie, int64, error) {
	var movies []*model.Movie
	var total int64
	pattern := "%" + keyword + "%"

	base := r.db.Model(&model.Movie{}).
		Where(`movies.name ILIKE ? OR movies.origin_name ILIKE ?
			OR movies.movie_id IN (SELECT movie_id FROM movie_genres mg JOIN genres g ON g.genre_id = mg.genre_id WHERE g.name ILIKE ?)
			OR movies.movie_id IN (SELECT movie_id FROM movie_actors ma JOIN actors a ON a.actor_id = ma.actor_id WHERE a.name ILIKE ?)
			OR movies.movie_id IN (SELECT movie_id FROM movie_directors md JOIN directors d ON d.director_id = md.director_id WHERE d.name ILIKE ?)
			OR movies.movie_id IN (SELECT movie_id FROM movie_countries mc JOIN countries c ON c.country_id = mc.country_id WHERE c.name ILIKE ?)`,
			pattern, pattern, pattern, pattern, pattern, pattern)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.Order("movie_id DESC").Limit(limit).Offset(offset).Find(&movies).Error
	return movies, total, err
}

// FilterByGenre 按类型 slug 过滤
func (r *MovieRepository) FilterByGenre(genreSlug string, limit, offset int) ([]*model.Movie, int64, error) {
	var movies []*model.Movie
	var total int64

	base := r.db.Model(&model.Movie{}).
		Joins("JOIN movie_genres mg ON mg.movie_id = movies.movie_id").
		Joins("JOIN genres g ON g.genre_id = mg.genre_id").
		Where("g.slug = ?", genreSlug)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.Preload("Genres").Order("movies.movie_id DESC").Limit(limit).Offset(offset).Find(&movies).Error
	return movies, total, err
}

// FilterByCountry 按国家 slug 过滤
func (r *MovieRepository) FilterByCountry(countrySlug string, limit, offset int) ([]*model.Movie, int64, error) {
	var movies []*model.Movie
	var total int64

	base := r.db.Model(&model.Movie{}).
		Joins("JOIN movie_countries mc ON mc.movie_id = movies.movie_id").
		Joins("JOIN countries c ON c.country_id = mc.country_id").
		Where("c.slug = ?", countrySlug)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.Preload("Countries").Order("movies.movie_id DESC").Limit(limit).Offset(offset).Find(&movies).Error
	return movies, total, err
}

// FilterByYear 按年份过滤
func (r *MovieRepository) FilterByYear(year, limit, offset int) ([]*model.Movie, int64, error) {
	var movies []*model.Movie
	var total int64

	base := r.db.Model(&model.Movie{}).Where("year = ?", year)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.Order("movie_id DESC").Limit(limit).Offset(offset).Find(&movies).Error
	return movies, total, err
}

// TopOfMonth 本月新增中按播放量排序
func (r *MovieRepository) TopOfMonth(limit int) ([]*model.Movie, error) {
	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var movies []*model.Movie
	err := r.db.Where("created_at >= ?", startOfMonth).
		Order("view DESC").
		Limit(limit).
		Find(&movies).Error
	return movies, err
}

// Recommended 按播放量排序的推荐列表
func (r *MovieRepository) Recommended(limit, offset int) ([]*model.Movie, error) {
	var movies []*model.Movie
	err := r.db.Order("view DESC").Limit(limit).Offset(offset).Find(&movies).Error
	return movies, err
}

// Years 获取所有出现过的年份（降序去重）
func (r *MovieRepository) Years() ([]int, error) {
	var years []int
	err := r.db.Model(&model.Movie{}).
		Distinct("year").
		Where("year > 0").
		Order("year DESC").
		Pluck("year", &years).Error
	return years, err
}

// IncrementView 播放量自增
func (r *MovieRepository) IncrementView(movieID int) error {
	return r.db.Model(&model.Movie{}).
		Where("movie_id = ?", movieID).
		UpdateColumn("view", gorm.Expr("view + 1")).Error
}

// Delete 删除电影及其全部关联数据（事务内）
func (r *MovieRepository) Delete(movieID int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// 评分的点赞记录按 rating_id 关联，先清掉
		if err := tx.Where("rating_id IN (SELECT rating_id FROM ratings WHERE movie_id = ?)", movieID).
			Delete(&model.RatingReaction{}).Error; err != nil {
			return err
		}
		for _, m := range []interface{}{
			&model.MovieGenre{}, &model.MovieCountry{}, &model.MovieActor{}, &model.MovieDirector{},
			&model.Episode{}, &model.Rating{}, &model.Comment{}, &model.PlaylistMovie{},
			&model.WatchHistory{}, &model.Watchlist{},
		} {
			if err := tx.Where("movie_id = ?", movieID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Movie{}, "movie_id = ?", movieID).Error
	})
}

// Count 电影总数
func (r *MovieRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Movie{}).Count(&count).Error
	return count, err
}
