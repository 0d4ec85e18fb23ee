package repository

import (
	"fmt"

	"github.com/user/phimhub/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 初始化数据库连接并迁移表结构
func InitDB(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true, // 将驱动错误翻译为 gorm.ErrDuplicatedKey 等通用错误
	})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库 ping 失败: %w", err)
	}

	// 设置连接池
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	// 自动迁移
	if err := db.AutoMigrate(
		&model.User{},
		&model.Movie{},
		&model.Actor{},
		&model.Director{},
		&model.Genre{},
		&model.Country{},
		&model.Episode{},
		&model.MovieActor{},
		&model.MovieDirector{},
		&model.MovieGenre{},
		&model.MovieCountry{},
		&model.Comment{},
		&model.Rating{},
		&model.RatingReaction{},
		&model.Playlist{},
		&model.PlaylistMovie{},
		&model.WatchHistory{},
		&model.Watchlist{},
		&model.Blog{},
		&model.ReportBug{},
		&model.RequestFeature{},
		&model.Notification{},
	); err != nil {
		return nil, fmt.Errorf("表结构迁移失败: %w", err)
	}

	return db, nil
}

// Repositories 仓库集合
type Repositories struct {
	DB             *gorm.DB
	User           *UserRepository
	Movie          *MovieRepository
	Actor          *ActorRepository
	Director       *DirectorRepository
	Genre          *GenreRepository
	Country        *CountryRepository
	Episode        *EpisodeRepository
	Comment        *CommentRepository
	Rating         *RatingRepository
	Playlist       *PlaylistRepository
	History        *HistoryRepository
	Watchlist      *WatchlistRepository
	Blog           *BlogRepository
	ReportBug      *ReportBugRepository
	RequestFeature *RequestFeatureRepository
	Notification   *NotificationRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:             db,
		User:           NewUserRepository(db),
		Movie:          NewMovieRepository(db),
		Actor:          NewActorRepository(db),
		Director:       NewDirectorRepository(db),
		Genre:          NewGenreRepository(db),
		Country:        NewCountryRepository(db),
		Episode:        NewEpisodeRepository(db),
		Comment:        NewCommentRepository(db),
		Rating:         NewRatingRepository(db),
		Playlist:       NewPlaylistRepository(db),
		History:        NewHistoryRepository(db),
		Watchlist:      NewWatchlistRepository(db),
		Blog:           NewBlogRepository(db),
		ReportBug:      NewReportBugRepository(db),
		RequestFeature: NewRequestFeatureRepository(db),
		Notification:   NewNotificationRepository(db),
	}
}
