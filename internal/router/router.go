package router

import (
	"github.com/gin-gonic/gin"
	"github.com/user/phimhub/internal/handler"
	"github.com/user/phimhub/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", h.Health)

	api := r.Group("/api/v1")

	// ==================== 认证 ====================
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.GET("/me", middleware.RequireAuth(h.Config.AppSecret), h.Me)
	}

	// ==================== 电影（公开，登录可选）====================
	movies := api.Group("/movies")
	movies.Use(middleware.OptionalAuth(h.Config.AppSecret))
	{
		movies.GET("", h.ListMovies)
		movies.GET("/search", h.SearchMovies)
		movies.GET("/top-month", h.TopOfMonth)
		movies.GET("/recommended", h.RecommendedMovies)
		movies.GET("/years", h.MovieYears)
		movies.GET("/year/:year", h.MoviesByYear)
		movies.GET("/slug/:slug", h.MovieBySlug)
		movies.GET("/:id", h.MovieDetail)
		movies.GET("/:id/episodes", h.ListEpisodes)
		movies.GET("/:id/comments", h.ListComments)
		movies.GET("/:id/ratings", h.ListRatings)
		movies.POST("/:id/view", h.IncrementView)
	}

	// ==================== 分类 ====================
	api.GET("/genres", h.ListGenres)
	api.GET("/genres/:slug/movies", h.MoviesByGenre)
	api.GET("/countries", h.ListCountries)
	api.GET("/countries/:slug/movies", h.MoviesByCountry)
	api.GET("/actors", h.ListActors)
	api.GET("/directors", h.ListDirectors)

	// ==================== 博客 ====================
	blogs := api.Group("/blogs")
	blogs.Use(middleware.OptionalAuth(h.Config.AppSecret))
	{
		blogs.GET("", h.ListBlogs)
		blogs.GET("/top-bloggers", h.TopBloggers)
		blogs.GET("/:id", h.BlogDetail)
	}

	// ==================== 需要登录 ====================
	user := api.Group("")
	user.Use(middleware.RequireAuth(h.Config.AppSecret))
	{
		// 互动
		user.POST("/movies/:id/comments", h.CreateComment)
		user.PUT("/comments/:commentId", h.UpdateComment)
		user.DELETE("/comments/:commentId", h.DeleteComment)
		user.POST("/movies/:id/ratings", h.UpsertRating)
		user.POST("/ratings/:ratingId/reactions", h.ReactToRating)
		user.POST("/movies/:id/watchlist", h.ToggleWatchlist)

		// 片单
		user.GET("/playlists", h.ListPlaylists)
		user.POST("/playlists", h.CreatePlaylist)
		user.PUT("/playlists/:id", h.RenamePlaylist)
		user.DELETE("/playlists/:id", h.DeletePlaylist)
		user.GET("/playlists/:id/movies", h.ListPlaylistMovies)
		user.POST("/playlists/:id/movies", h.AddPlaylistMovie)
		user.DELETE("/playlists/:id/movies/:movieId", h.RemovePlaylistMovie)

		// 观影历史 / 追剧单
		user.GET("/history", h.ListHistory)
		user.POST("/history", h.AddHistory)
		user.DELETE("/history/:historyId", h.DeleteHistory)
		user.GET("/watchlist", h.ListWatchlist)

		// 博客
		user.POST("/blogs", h.CreateBlog)
		user.PUT("/blogs/:id", h.UpdateBlog)
		user.DELETE("/blogs/:id", h.DeleteBlog)

		// 反馈（普通用户只能看到/修改自己的）
		user.POST("/report-bugs", h.CreateBugReport)
		user.GET("/report-bugs", h.ListBugReports)
		user.GET("/report-bugs/:id", h.GetBugReport)
		user.PUT("/report-bugs/:id", h.UpdateBugReport)
		user.POST("/feature-requests", h.CreateFeatureRequest)
		user.GET("/feature-requests", h.ListFeatureRequests)
		user.GET("/feature-requests/:id", h.GetFeatureRequest)
		user.PUT("/feature-requests/:id", h.UpdateFeatureRequest)

		// 通知
		user.GET("/notifications", h.ListNotifications)
		user.POST("/notifications/read-all", h.MarkAllNotificationsRead)
		user.POST("/notifications/:id/read", h.MarkNotificationRead)
		user.DELETE("/notifications/:id", h.DeleteNotification)

		// 个人资料
		user.PUT("/profile", h.UpdateProfile)
		user.PUT("/profile/password", h.ChangePassword)
		user.GET("/profile/statistics", h.MyStatistics)
	}

	// ==================== 管理后台 ====================
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(h.Config.AppSecret))
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/statistics", h.SiteStatistics)

		// 采集
		admin.POST("/crawl-film", h.CrawlFilms)

		// 电影管理
		admin.POST("/movies", h.CreateMovie)
		admin.PUT("/movies/:id", h.UpdateMovie)
		admin.DELETE("/movies/:id", h.DeleteMovie)
		admin.POST("/movies/:id/episodes", h.CreateEpisode)
		admin.PUT("/episodes/:episodeId", h.UpdateEpisode)
		admin.DELETE("/episodes/:episodeId", h.DeleteEpisode)

		// 分类管理
		admin.POST("/genres", h.CreateGenre)
		admin.PUT("/genres/:id", h.UpdateGenre)
		admin.DELETE("/genres/:id", h.DeleteGenre)
		admin.POST("/countries", h.CreateCountry)
		admin.PUT("/countries/:id", h.UpdateCountry)
		admin.DELETE("/countries/:id", h.DeleteCountry)
		admin.PUT("/actors/:id", h.UpdateActor)
		admin.DELETE("/actors/:id", h.DeleteActor)
		admin.PUT("/directors/:id", h.UpdateDirector)
		admin.DELETE("/directors/:id", h.DeleteDirector)

		// 博客审核
		admin.POST("/blogs/:id/verify", h.VerifyBlog)

		// 用户管理
		admin.GET("/users", h.ListUsers)
		admin.PUT("/users/:id/role", h.UpdateUserRole)
		admin.DELETE("/users/:id", h.DeleteUser)

		// 反馈管理
		admin.GET("/report-bugs", h.ListBugReports)
		admin.DELETE("/report-bugs/:id", h.DeleteBugReport)
		admin.GET("/feature-requests", h.ListFeatureRequests)
		admin.DELETE("/feature-requests/:id", h.DeleteFeatureRequest)
	}
}
