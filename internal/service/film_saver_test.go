package service

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/phimhub/internal/model"
	"gorm.io/gorm"
)

// fakeFilmStore 内存实现，并发安全，支持错误注入
type fakeFilmStore struct {
	mu sync.Mutex

	movies    map[string]*model.Movie
	actors    map[string]*model.Actor
	directors map[string]*model.Director
	genres    map[string]*model.Genre
	countries map[string]*model.Country
	episodes  map[int]map[string]*model.Episode

	movieActors    map[[2]int]bool
	movieDirectors map[[2]int]bool
	movieGenres    map[[2]int]bool
	movieCountries map[[2]int]bool

	nextID int

	createMovieErr  error
	createActorErr  func(name string) error
	attachActorErr  func(actorID int) error
	updateMovieErr  error
	createGenreErr  func(name string) error
	findEpisodeErr  error
	updateMovieHook func()
}

func newFakeFilmStore() *fakeFilmStore {
	return &fakeFilmStore{
		movies:         map[string]*model.Movie{},
		actors:         map[string]*model.Actor{},
		directors:      map[string]*model.Director{},
		genres:         map[string]*model.Genre{},
		countries:      map[string]*model.Country{},
		episodes:       map[int]map[string]*model.Episode{},
		movieActors:    map[[2]int]bool{},
		movieDirectors: map[[2]int]bool{},
		movieGenres:    map[[2]int]bool{},
		movieCountries: map[[2]int]bool{},
	}
}

func (f *fakeFilmStore) id() int {
	f.nextID++
	return f.nextID
}

func (f *fakeFilmStore) FindMovieBySlug(slug string) (*model.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.movies[slug]; ok {
		copied := *m
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeFilmStore) CreateMovie(movie *model.Movie) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createMovieErr != nil {
		return f.createMovieErr
	}
	if _, ok := f.movies[movie.Slug]; ok {
		return gorm.ErrDuplicatedKey
	}
	movie.MovieID = f.id()
	copied := *movie
	f.movies[movie.Slug] = &copied
	return nil
}

func (f *fakeFilmStore) UpdateMovie(movie *model.Movie) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateMovieHook != nil {
		f.updateMovieHook()
	}
	if f.updateMovieErr != nil {
		return f.updateMovieErr
	}
	copied := *movie
	f.movies[movie.Slug] = &copied
	return nil
}

func (f *fakeFilmStore) FindActorByName(name string) (*model.Actor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.actors[name]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeFilmStore) CreateActor(actor *model.Actor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createActorErr != nil {
		if err := f.createActorErr(actor.Name); err != nil {
			return err
		}
	}
	if _, ok := f.actors[actor.Name]; ok {
		return gorm.ErrDuplicatedKey
	}
	actor.ActorID = f.id()
	copied := *actor
	f.actors[actor.Name] = &copied
	return nil
}

func (f *fakeFilmStore) AttachActor(movieID, actorID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.attachActorErr != nil {
		if err := f.attachActorErr(actorID); err != nil {
			return err
		}
	}
	f.movieActors[[2]int{movieID, actorID}] = true
	return nil
}

func (f *fakeFilmStore) FindDirectorByName(name string) (*model.Director, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.directors[name]; ok {
		copied := *d
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeFilmStore) CreateDirector(director *model.Director) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.directors[director.Name]; ok {
		return gorm.ErrDuplicatedKey
	}
	director.DirectorID = f.id()
	copied := *director
	f.directors[director.Name] = &copied
	return nil
}

func (f *fakeFilmStore) AttachDirector(movieID, directorID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.movieDirectors[[2]int{movieID, directorID}] = true
	return nil
}

func (f *fakeFilmStore) FindGenreByName(name string) (*model.Genre, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if g, ok := f.genres[name]; ok {
		copied := *g
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeFilmStore) CreateGenre(genre *model.Genre) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createGenreErr != nil {
		if err := f.createGenreErr(genre.Name); err != nil {
			return err
		}
	}
	if _, ok := f.genres[genre.Name]; ok {
		return gorm.ErrDuplicatedKey
	}
	genre.GenreID = f.id()
	copied := *genre
	f.genres[genre.Name] = &copied
	return nil
}

func (f *fakeFilmStore) AttachGenre(movieID, genreID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.movieGenres[[2]int{movieID, genreID}] = true
	return nil
}

func (f *fakeFilmStore) FindCountryByName(name string) (*model.Country, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.countries[name]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeFilmStore) CreateCountry(country *model.Country) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.countries[country.Name]; ok {
		return gorm.ErrDuplicatedKey
	}
	country.CountryID = f.id()
	copied := *country
	f.countries[country.Name] = &copied
	return nil
}

func (f *fakeFilmStore) AttachCountry(movieID, countryID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.movieCountries[[2]int{movieID, countryID}] = true
	return nil
}

func (f *fakeFilmStore) FindEpisode(movieID int, slug string) (*model.Episode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findEpisodeErr != nil {
		return nil, f.findEpisodeErr
	}
	if eps, ok := f.episodes[movieID]; ok {
		if ep, ok := eps[slug]; ok {
			copied := *ep
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeFilmStore) CreateEpisode(episode *model.Episode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.episodes[episode.MovieID] == nil {
		f.episodes[episode.MovieID] = map[string]*model.Episode{}
	}
	if _, ok := f.episodes[episode.MovieID][episode.Slug]; ok {
		return gorm.ErrDuplicatedKey
	}
	episode.EpisodeID = f.id()
	copied := *episode
	f.episodes[episode.MovieID][episode.Slug] = &copied
	return nil
}

func (f *fakeFilmStore) UpdateEpisode(episode *model.Episode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *episode
	f.episodes[episode.MovieID][episode.Slug] = &copied
	return nil
}

func sampleRecord() *FilmRecord {
	return &FilmRecord{
		Name:       "Vùng Đất Quỷ Dữ",
		Slug:       "vung-dat-quy-du",
		OriginName: "Resident Evil",
		Content:    "简介",
		Type:       "series",
		Status:     "completed",
		Year:       2022,
		Actors:     []string{"Ella Balinska", "Tamara Smart"},
		Directors:  []string{"Andrew Dabb"},
		Genres:     []NamedRef{{Name: "Hành Động", Slug: "hanh-dong"}},
		Countries:  []NamedRef{{Name: "Âu Mỹ", Slug: "au-my"}},
		Episodes: []EpisodeRecord{
			{ServerName: "Vietsub #1", Name: "Tập 01", Slug: "tap-01", LinkFilm: "https://play.example.com/e1"},
			{ServerName: "Vietsub #1", Name: "Tập 02", Slug: "tap-02", LinkFilm: "https://play.example.com/e2"},
		},
	}
}

func TestSaveFilmCreatesEverything(t *testing.T) {
	store := newFakeFilmStore()
	saver := NewFilmSaver(store)

	movie, err := saver.SaveFilm(sampleRecord())
	require.NoError(t, err)
	require.NotZero(t, movie.MovieID)

	assert.Len(t, store.actors, 2)
	assert.Len(t, store.directors, 1)
	assert.Len(t, store.genres, 1)
	assert.Len(t, store.countries, 1)
	assert.Len(t, store.movieActors, 2)
	assert.Len(t, store.movieDirectors, 1)
	assert.Len(t, store.episodes[movie.MovieID], 2)
}

func TestSaveFilmIsIdempotent(t *testing.T) {
	store := newFakeFilmStore()
	saver := NewFilmSaver(store)

	first, err := saver.SaveFilm(sampleRecord())
	require.NoError(t, err)

	// 模拟本站播放量增长
	store.mu.Lock()
	store.movies[first.Slug].View = 99
	store.mu.Unlock()

	record := sampleRecord()
	record.Name = "Vùng Đất Quỷ Dữ (bản cập nhật)"
	second, err := saver.SaveFilm(record)
	require.NoError(t, err)

	// 同一条记录原地更新，播放量保留
	assert.Equal(t, first.MovieID, second.MovieID)
	assert.Len(t, store.movies, 1)
	assert.Equal(t, "Vùng Đất Quỷ Dữ (bản cập nhật)", store.movies[first.Slug].Name)
	assert.Equal(t, 99, store.movies[first.Slug].View)

	// 实体和关联不膨胀
	assert.Len(t, store.actors, 2)
	assert.Len(t, store.movieActors, 2)
	assert.Len(t, store.episodes[first.MovieID], 2)
}

func TestSaveFilmSharesEntitiesAcrossMovies(t *testing.T) {
	store := newFakeFilmStore()
	saver := NewFilmSaver(store)

	first, err := saver.SaveFilm(sampleRecord())
	require.NoError(t, err)

	other := sampleRecord()
	other.Slug = "phim-khac"
	other.Name = "Phim Khác"
	second, err := saver.SaveFilm(other)
	require.NoError(t, err)

	// 同名演员复用同一实体，两部电影各自挂关联
	assert.Len(t, store.actors, 2)
	assert.Len(t, store.movieActors, 4)
	assert.NotEqual(t, first.MovieID, second.MovieID)
}

func TestSaveFilmEpisodeUpdatedInPlace(t *testing.T) {
	store := newFakeFilmStore()
	saver := NewFilmSaver(store)

	movie, err := saver.SaveFilm(sampleRecord())
	require.NoError(t, err)
	originalID := store.episodes[movie.MovieID]["tap-01"].EpisodeID

	// 换源重采：server_name 和链接变了，slug 不变
	record := sampleRecord()
	record.Episodes[0].ServerName = "Vietsub #2"
	record.Episodes[0].LinkFilm = "https://new.example.com/e1"
	_, err = saver.SaveFilm(record)
	require.NoError(t, err)

	episode := store.episodes[movie.MovieID]["tap-01"]
	assert.Equal(t, originalID, episode.EpisodeID)
	assert.Equal(t, "Vietsub #2", episode.ServerName)
	assert.Equal(t, "https://new.example.com/e1", episode.LinkFilm)
	assert.Len(t, store.episodes[movie.MovieID], 2)
}

func TestSaveFilmMovieWriteFailureAborts(t *testing.T) {
	store := newFakeFilmStore()
	store.createMovieErr = errors.New("connection refused")
	saver := NewFilmSaver(store)

	_, err := saver.SaveFilm(sampleRecord())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMovieWrite)

	// 主记录失败后关联数据不落库
	assert.Empty(t, store.actors)
	assert.Empty(t, store.episodes)
}

func TestSaveFilmRelationFailureIsIsolated(t *testing.T) {
	store := newFakeFilmStore()
	store.createActorErr = func(name string) error {
		if name == "Ella Balinska" {
			return errors.New("write timeout")
		}
		return nil
	}
	saver := NewFilmSaver(store)

	movie, err := saver.SaveFilm(sampleRecord())
	require.NoError(t, err)

	// 失败的演员被跳过，其余照常
	assert.Len(t, store.actors, 1)
	assert.Len(t, store.movieActors, 1)
	assert.Len(t, store.directors, 1)
	assert.Len(t, store.genres, 1)
	assert.Len(t, store.episodes[movie.MovieID], 2)
}

func TestSaveFilmDuplicateKeyFallback(t *testing.T) {
	store := newFakeFilmStore()
	saver := NewFilmSaver(store)

	// 模拟查完不存在、写时已被并发写入：Create 撞唯一约束，回读能查到赢家
	store.createActorErr = func(name string) error {
		if name == "Ella Balinska" {
			store.actors[name] = &model.Actor{ActorID: 77, Name: name}
			return gorm.ErrDuplicatedKey
		}
		return nil
	}

	record := sampleRecord()
	movie, err := saver.SaveFilm(record)
	require.NoError(t, err)

	// 回读赢家的实体并挂关联
	assert.True(t, store.movieActors[[2]int{movie.MovieID, 77}])
}

func TestSaveFilmMovieDuplicateKeyFallback(t *testing.T) {
	store := newFakeFilmStore()
	saver := NewFilmSaver(store)

	// 并发采集：FindMovieBySlug 返回空后另一个协程先写入
	winner := sampleRecord()
	_, err := saver.SaveFilm(winner)
	require.NoError(t, err)
	winnerID := store.movies[winner.Slug].MovieID

	store.createMovieErr = gorm.ErrDuplicatedKey
	loser := sampleRecord()
	loser.Name = "输家的版本"

	// 直接走 upsertMovie 的 create 分支验证回读
	store.mu.Lock()
	delete(store.movies, loser.Slug)
	store.mu.Unlock()
	// Create 失败后回读也查不到，原错误上抛
	_, err = saver.SaveFilm(loser)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMovieWrite)

	// 恢复赢家记录后，回读成功并原地更新
	store.mu.Lock()
	store.movies[winner.Slug] = &model.Movie{MovieID: winnerID, Slug: winner.Slug, Name: winner.Name}
	store.mu.Unlock()

	movie, err := saver.SaveFilm(loser)
	require.NoError(t, err)
	assert.Equal(t, winnerID, movie.MovieID)
	assert.Equal(t, "输家的版本", store.movies[winner.Slug].Name)
}
