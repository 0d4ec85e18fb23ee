package service

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/user/phimhub/internal/model"
	"github.com/user/phimhub/internal/repository"
	"gorm.io/gorm"
)

// FilmStore 入库层依赖的存储接口，方便测试替换
type FilmStore interface {
	FindMovieBySlug(slug string) (*model.Movie, error)
	CreateMovie(movie *model.Movie) error
	UpdateMovie(movie *model.Movie) error

	FindActorByName(name string) (*model.Actor, error)
	CreateActor(actor *model.Actor) error
	AttachActor(movieID, actorID int) error

	FindDirectorByName(name string) (*model.Director, error)
	CreateDirector(director *model.Director) error
	AttachDirector(movieID, directorID int) error

	FindGenreByName(name string) (*model.Genre, error)
	CreateGenre(genre *model.Genre) error
	AttachGenre(movieID, genreID int) error

	FindCountryByName(name string) (*model.Country, error)
	CreateCountry(country *model.Country) error
	AttachCountry(movieID, countryID int) error

	FindEpisode(movieID int, slug string) (*model.Episode, error)
	CreateEpisode(episode *model.Episode) error
	UpdateEpisode(episode *model.Episode) error
}

// repoFilmStore 基于仓库集合的默认 FilmStore 实现
type repoFilmStore struct {
	repos *repository.Repositories
}

// NewFilmStore 用仓库集合构造存储适配
func NewFilmStore(repos *repository.Repositories) FilmStore {
	return &repoFilmStore{repos: repos}
}

func (s *repoFilmStore) FindMovieBySlug(slug string) (*model.Movie, error) {
	return s.repos.Movie.FindBySlug(slug)
}
func (s *repoFilmStore) CreateMovie(movie *model.Movie) error { return s.repos.Movie.Create(movie) }
func (s *repoFilmStore) UpdateMovie(movie *model.Movie) error { return s.repos.Movie.Update(movie) }

func (s *repoFilmStore) FindActorByName(name string) (*model.Actor, error) {
	return s.repos.Actor.FindByName(name)
}
func (s *repoFilmStore) CreateActor(actor *model.Actor) error { return s.repos.Actor.Create(actor) }
func (s *repoFilmStore) AttachActor(movieID, actorID int) error {
	return s.repos.Actor.AttachMovie(movieID, actorID)
}

func (s *repoFilmStore) FindDirectorByName(name string) (*model.Director, error) {
	return s.repos.Director.FindByName(name)
}
func (s *repoFilmStore) CreateDirector(director *model.Director) error {
	return s.repos.Director.Create(director)
}
func (s *repoFilmStore) AttachDirector(movieID, directorID int) error {
	return s.repos.Director.AttachMovie(movieID, directorID)
}

func (s *repoFilmStore) FindGenreByName(name string) (*model.Genre, error) {
	return s.repos.Genre.FindByName(name)
}
func (s *repoFilmStore) CreateGenre(genre *model.Genre) error { return s.repos.Genre.Create(genre) }
func (s *repoFilmStore) AttachGenre(movieID, genreID int) error {
	return s.repos.Genre.AttachMovie(movieID, genreID)
}

func (s *repoFilmStore) FindCountryByName(name string) (*model.Country, error) {
	return s.repos.Country.FindByName(name)
}
func (s *repoFilmStore) CreateCountry(country *model.Country) error {
	return s.repos.Country.Create(country)
}
func (s *repoFilmStore) AttachCountry(movieID, countryID int) error {
	return s.repos.Country.AttachMovie(movieID, countryID)
}

func (s *repoFilmStore) FindEpisode(movieID int, slug string) (*model.Episode, error) {
	return s.repos.Episode.FindByMovieAndSlug(movieID, slug)
}
func (s *repoFilmStore) CreateEpisode(episode *model.Episode) error {
	return s.repos.Episode.Create(episode)
}
func (s *repoFilmStore) UpdateEpisode(episode *model.Episode) error {
	return s.repos.Episode.Update(episode)
}

// FilmSaver 把 FilmRecord 落库的调和引擎
// 影片主记录先行，主记录失败整体失败；关联数据单条失败只记日志跳过
type FilmSaver struct {
	store FilmStore
}

// NewFilmSaver 创建入库器
func NewFilmSaver(store FilmStore) *FilmSaver {
	return &FilmSaver{store: store}
}

// SaveFilm 按自然键调和入库，可重复执行
// 影片按 slug 匹配：存在则覆盖标量字段（保留播放量），不存在则创建；
// 演员/导演/类型/国家按 name 查找或创建后挂关联，关联只增不减；
// 剧集按 (movie_id, slug) 匹配，命中则原地更新换源字段
func (s *FilmSaver) SaveFilm(record *FilmRecord) (*model.Movie, error) {
	movie, err := s.upsertMovie(record)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMovieWrite, err)
	}

	// 四类关联互不依赖，并发写入
	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		s.saveActors(movie.MovieID, record.Actors)
	}()
	go func() {
		defer wg.Done()
		s.saveDirectors(movie.MovieID, record.Directors)
	}()
	go func() {
		defer wg.Done()
		s.saveGenres(movie.MovieID, record.Genres)
	}()
	go func() {
		defer wg.Done()
		s.saveCountries(movie.MovieID, record.Countries)
	}()
	wg.Wait()

	s.saveEpisodes(movie.MovieID, record.Episodes)

	return movie, nil
}

func (s *FilmSaver) upsertMovie(record *FilmRecord) (*model.Movie, error) {
	existing, err := s.store.FindMovieBySlug(record.Slug)
	if err != nil {
		return nil, err
	}

	movie := &model.Movie{
		Name:           record.Name,
		Slug:           record.Slug,
		OriginName:     record.OriginName,
		Content:        record.Content,
		Type:           record.Type,
		Status:         record.Status,
		ThumbURL:       record.ThumbURL,
		PosterURL:      record.PosterURL,
		TrailerURL:     record.TrailerURL,
		Duration:       record.Duration,
		EpisodeCurrent: record.EpisodeCurrent,
		EpisodeTotal:   record.EpisodeTotal,
		Quality:        record.Quality,
		Lang:           record.Lang,
		Notify:         record.Notify,
		Showtimes:      record.Showtimes,
		Year:           record.Year,
		View:           record.View, // 上游播放量只做新片的初始值
		IsCopyright:    record.IsCopyright,
		Chieurap:       record.Chieurap,
		SubDocquyen:    record.SubDocquyen,
		TmdbVoteCount:  record.TmdbVoteCount,
		TmdbVoteAvg:    record.TmdbVoteAvg,
	}

	if existing != nil {
		movie.MovieID = existing.MovieID
		movie.View = existing.View // 播放量是本站数据，重采不覆盖
		movie.CreatedAt = existing.CreatedAt
		if err := s.store.UpdateMovie(movie); err != nil {
			return nil, err
		}
		return movie, nil
	}

	if err := s.store.CreateMovie(movie); err != nil {
		// 并发采集同一 slug 时输家撞唯一约束，回读赢家的记录再走更新
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			winner, ferr := s.store.FindMovieBySlug(record.Slug)
			if ferr != nil {
				return nil, ferr
			}
			if winner == nil {
				return nil, err
			}
			movie.MovieID = winner.MovieID
			movie.View = winner.View
			movie.CreatedAt = winner.CreatedAt
			if uerr := s.store.UpdateMovie(movie); uerr != nil {
				return nil, uerr
			}
			return movie, nil
		}
		return nil, err
	}
	return movie, nil
}

func (s *FilmSaver) saveActors(movieID int, names []string) {
	for _, name := range names {
		actor, err := s.findOrCreateActor(name)
		if err != nil {
			log.Printf("[CrawlFilm] 演员 %q 保存失败，跳过: %v", name, err)
			continue
		}
		if err := s.store.AttachActor(movieID, actor.ActorID); err != nil {
			log.Printf("[CrawlFilm] 演员 %q 关联失败，跳过: %v", name, err)
		}
	}
}

func (s *FilmSaver) findOrCreateActor(name string) (*model.Actor, error) {
	actor, err := s.store.FindActorByName(name)
	if err != nil {
		return nil, err
	}
	if actor != nil {
		return actor, nil
	}
	actor = &model.Actor{Name: name}
	if err := s.store.CreateActor(actor); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.rereadActor(name, err)
		}
		return nil, err
	}
	return actor, nil
}

func (s *FilmSaver) rereadActor(name string, createErr error) (*model.Actor, error) {
	actor, err := s.store.FindActorByName(name)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, createErr
	}
	return actor, nil
}

func (s *FilmSaver) saveDirectors(movieID int, names []string) {
	for _, name := range names {
		director, err := s.findOrCreateDirector(name)
		if err != nil {
			log.Printf("[CrawlFilm] 导演 %q 保存失败，跳过: %v", name, err)
			continue
		}
		if err := s.store.AttachDirector(movieID, director.DirectorID); err != nil {
			log.Printf("[CrawlFilm] 导演 %q 关联失败，跳过: %v", name, err)
		}
	}
}

func (s *FilmSaver) findOrCreateDirector(name string) (*model.Director, error) {
	director, err := s.store.FindDirectorByName(name)
	if err != nil {
		return nil, err
	}
	if director != nil {
		return director, nil
	}
	director = &model.Director{Name: name}
	if err := s.store.CreateDirector(director); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			reread, ferr := s.store.FindDirectorByName(name)
			if ferr != nil {
				return nil, ferr
			}
			if reread == nil {
				return nil, err
			}
			return reread, nil
		}
		return nil, err
	}
	return director, nil
}

func (s *FilmSaver) saveGenres(movieID int, refs []NamedRef) {
	for _, ref := range refs {
		genre, err := s.findOrCreateGenre(ref)
		if err != nil {
			log.Printf("[CrawlFilm] 类型 %q 保存失败，跳过: %v", ref.Name, err)
			continue
		}
		if err := s.store.AttachGenre(movieID, genre.GenreID); err != nil {
			log.Printf("[CrawlFilm] 类型 %q 关联失败，跳过: %v", ref.Name, err)
		}
	}
}

func (s *FilmSaver) findOrCreateGenre(ref NamedRef) (*model.Genre, error) {
	genre, err := s.store.FindGenreByName(ref.Name)
	if err != nil {
		return nil, err
	}
	if genre != nil {
		return genre, nil
	}
	genre = &model.Genre{Name: ref.Name, Slug: ref.Slug}
	if err := s.store.CreateGenre(genre); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			reread, ferr := s.store.FindGenreByName(ref.Name)
			if ferr != nil {
				return nil, ferr
			}
			if reread == nil {
				return nil, err
			}
			return reread, nil
		}
		return nil, err
	}
	return genre, nil
}

func (s *FilmSaver) saveCountries(movieID int, refs []NamedRef) {
	for _, ref := range refs {
		country, err := s.findOrCreateCountry(ref)
		if err != nil {
			log.Printf("[CrawlFilm] 国家 %q 保存失败，跳过: %v", ref.Name, err)
			continue
		}
		if err := s.store.AttachCountry(movieID, country.CountryID); err != nil {
			log.Printf("[CrawlFilm] 国家 %q 关联失败，跳过: %v", ref.Name, err)
		}
	}
}

func (s *FilmSaver) findOrCreateCountry(ref NamedRef) (*model.Country, error) {
	country, err := s.store.FindCountryByName(ref.Name)
	if err != nil {
		return nil, err
	}
	if country != nil {
		return country, nil
	}
	country = &model.Country{Name: ref.Name, Slug: ref.Slug}
	if err := s.store.CreateCountry(country); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			reread, ferr := s.store.FindCountryByName(ref.Name)
			if ferr != nil {
				return nil, ferr
			}
			if reread == nil {
				return nil, err
			}
			return reread, nil
		}
		return nil, err
	}
	return country, nil
}

func (s *FilmSaver) saveEpisodes(movieID int, records []EpisodeRecord) {
	for _, rec := range records {
		existing, err := s.store.FindEpisode(movieID, rec.Slug)
		if err != nil {
			log.Printf("[CrawlFilm] 剧集 %q 查询失败，跳过: %v", rec.Slug, err)
			continue
		}
		if existing != nil {
			existing.ServerName = rec.ServerName
			existing.Name = rec.Name
			existing.Filename = rec.Filename
			existing.LinkFilm = rec.LinkFilm
			if err := s.store.UpdateEpisode(existing); err != nil {
				log.Printf("[CrawlFilm] 剧集 %q 更新失败，跳过: %v", rec.Slug, err)
			}
			continue
		}
		episode := &model.Episode{
			MovieID:    movieID,
			ServerName: rec.ServerName,
			Name:       rec.Name,
			Slug:       rec.Slug,
			Filename:   rec.Filename,
			LinkFilm:   rec.LinkFilm,
		}
		if err := s.store.CreateEpisode(episode); err != nil {
			log.Printf("[CrawlFilm] 剧集 %q 创建失败，跳过: %v", rec.Slug, err)
		}
	}
}
