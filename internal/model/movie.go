package model

import (
	"time"
)

// Movie 电影模型（来自上游资源站采集 + 管理后台录入）
type Movie struct {
	MovieID        int       `json:"movie_id" db:"movie_id" gorm:"primaryKey"`
	Name           string    `json:"name" db:"name"`
	Slug           string    `json:"slug" db:"slug" gorm:"unique"` // 自然键，全局唯一
	OriginName     string    `json:"origin_name" db:"origin_name"`
	Content        string    `json:"content" db:"content" gorm:"type:text"`
	Type           string    `json:"type" db:"type"`
	Status         string    `json:"status" db:"status"`
	ThumbURL       string    `json:"thumb_url" db:"thumb_url"`
	PosterURL      string    `json:"poster_url" db:"poster_url"`
	TrailerURL     string    `json:"trailer_url" db:"trailer_url"`
	Duration       string    `json:"duration" db:"duration"`
	EpisodeCurrent string    `json:"episode_current" db:"episode_current"`
	EpisodeTotal   string    `json:"episode_total" db:"episode_total"`
	Quality        string    `json:"quality" db:"quality"`
	Lang           string    `json:"lang" db:"lang"`
	Notify         string    `json:"notify" db:"notify"`
	Showtimes      string    `json:"showtimes" db:"showtimes"`
	Year           int       `json:"year" db:"year" gorm:"index"`
	View           int       `json:"view" db:"view" gorm:"index"`
	IsCopyright    bool      `json:"is_copyright" db:"is_copyright"`
	Chieurap       bool      `json:"chieurap" db:"chieurap"` // 院线片标记
	SubDocquyen    bool      `json:"sub_docquyen" db:"sub_docquyen"`
	TmdbVoteCount  int       `json:"tmdb_vote_count" db:"tmdb_vote_count"`
	TmdbVoteAvg    float64   `json:"tmdb_vote_average" db:"tmdb_vote_average" gorm:"column:tmdb_vote_average"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at" gorm:"index"`

	// 关联查询时填充
	Genres    []Genre    `json:"genres,omitempty" gorm:"many2many:movie_genres;foreignKey:MovieID;joinForeignKey:MovieID;References:GenreID;joinReferences:GenreID"`
	Countries []Country  `json:"countries,omitempty" gorm:"many2many:movie_countries;foreignKey:MovieID;joinForeignKey:MovieID;References:CountryID;joinReferences:CountryID"`
	Actors    []Actor    `json:"actors,omitempty" gorm:"many2many:movie_actors;foreignKey:MovieID;joinForeignKey:MovieID;References:ActorID;joinReferences:ActorID"`
	Directors []Director `json:"directors,omitempty" gorm:"many2many:movie_directors;foreignKey:MovieID;joinForeignKey:MovieID;References:DirectorID;joinReferences:DirectorID"`
	Episodes  []Episode  `json:"episodes,omitempty" gorm:"foreignKey:MovieID;references:MovieID"`
}

// Actor 演员（全站共享实体，按 name 精确去重）
type Actor struct {
	ActorID int    `json:"actor_id" db:"actor_id" gorm:"primaryKey"`
	Name    string `json:"name" db:"name" gorm:"unique"`
}

// Director 导演（全站共享实体，按 name 精确去重）
type Director struct {
	DirectorID int    `json:"director_id" db:"director_id" gorm:"primaryKey"`
	Name       string `json:"name" db:"name" gorm:"unique"`
}

// Genre 类型/题材
type Genre struct {
	GenreID int    `json:"genre_id" db:"genre_id" gorm:"primaryKey"`
	Name    string `json:"name" db:"name" gorm:"unique"`
	Slug    string `json:"slug" db:"slug" gorm:"index"`
}

// Country 国家/地区
type Country struct {
	CountryID int    `json:"country_id" db:"country_id" gorm:"primaryKey"`
	Name      string `json:"name" db:"name" gorm:"unique"`
	Slug      string `json:"slug" db:"slug" gorm:"index"`
}

// Episode 剧集，属于唯一一部电影
// 自然键是 (movie_id, slug)，slug 在不同电影间可以重复；
// server_name 不参与身份识别，换源重采时原地更新
type Episode struct {
	EpisodeID  int    `json:"episode_id" db:"episode_id" gorm:"primaryKey"`
	MovieID    int    `json:"movie_id" db:"movie_id" gorm:"uniqueIndex:idx_movie_episode_slug"`
	ServerName string `json:"server_name" db:"server_name"`
	Name       string `json:"name" db:"name"`
	Slug       string `json:"slug" db:"slug" gorm:"uniqueIndex:idx_movie_episode_slug"`
	Filename   string `json:"filename" db:"filename"`
	LinkFilm   string `json:"link_film" db:"link_film"`
}

// MovieActor 电影-演员关联
type MovieActor struct {
	MovieID int `json:"movie_id" db:"movie_id" gorm:"primaryKey;autoIncrement:false"`
	ActorID int `json:"actor_id" db:"actor_id" gorm:"primaryKey;autoIncrement:false"`
}

// MovieDirector 电影-导演关联
type MovieDirector struct {
	MovieID    int `json:"movie_id" db:"movie_id" gorm:"primaryKey;autoIncrement:false"`
	DirectorID int `json:"director_id" db:"director_id" gorm:"primaryKey;autoIncrement:false"`
}

// MovieGenre 电影-类型关联
type MovieGenre struct {
	MovieID int `json:"movie_id" db:"movie_id" gorm:"primaryKey;autoIncrement:false"`
	GenreID int `json:"genre_id" db:"genre_id" gorm:"primaryKey;autoIncrement:false"`
}

// MovieCountry 电影-国家关联
type MovieCountry struct {
	MovieID   int `json:"movie_id" db:"movie_id" gorm:"primaryKey;autoIncrement:false"`
	CountryID int `json:"country_id" db:"country_id" gorm:"primaryKey;autoIncrement:false"`
}
