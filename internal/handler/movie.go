package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/phimhub/internal/middleware"
	"github.com/user/phimhub/internal/model"
	"github.com/user/phimhub/internal/utils"
)

// ListMovies 电影列表
func (h *Handler) ListMovies(c *gin.Context) {
	page, perPage := utils.ParsePage(c.Query("page"), c.Query("per_page"), 24)
	movies, total, err := h.Repos.Movie.List(perPage, (page-1)*perPage)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, utils.NewPagedData(movies, total, page, perPage))
}

// MovieDetail 电影详情，附带关联和平均评分
func (h *Handler) MovieDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "电影 ID 无效")
		return
	}
	h.renderMovieDetail(c, id)
}

func (h *Handler) renderMovieDetail(c *gin.Context, id int) {
	movie, err := h.Repos.Movie.FindByIDWithRelations(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if movie == nil {
		utils.NotFound(c, "电影不存在")
		return
	}

	avgScore, _ := h.Repos.Rating.AverageScore(movie.MovieID)

	// 登录用户附带是否已在追剧单
	inWatchlist := false
	if userID := middleware.GetUserID(c); userID > 0 {
		items, err := h.Repos.Watchlist.ListByUser(userID)
		if err == nil {
			for _, item := range items {
				if item.MovieID == movie.MovieID {
					inWatchlist = true
					break
				}
			}
		}
	}

	utils.Success(c, gin.H{
		"movie":         movie,
		"average_score": avgScore,
		"in_watchlist":  inWatchlist,
	})
}

// MovieBySlug 按 slug 查电影详情
func (h *Handler) MovieBySlug(c *gin.Context) {
	movie, err := h.Repos.Movie.FindBySlug(c.Param("slug"))
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if movie == nil {
		utils.NotFound(c, "电影不存在")
		return
	}
	h.renderMovieDetail(c, movie.MovieID)
}

// SearchMovies 搜索电影，结果进 LRU 缓存
func (h *Handler) SearchMovies(c *gin.Context) {
	keyword := c.Query("q")
	if keyword == "" {
		utils.BadRequest(c, "缺少搜索关键词")
		return
	}
	page, perPage := utils.ParsePage(c.Query("page"), c.Query("per_page"), 24)

	cacheKey := fmt.Sprintf("search:%s:%d:%d", keyword, page, perPage)
	if cached, ok := h.searchCache.Get(cacheKey); ok {
		utils.Success(c, cached)
		return
	}

	movies, total, err := h.Repos.Movie.Search(keyword, perPage, (page-1)*perPage)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	paged := utils.NewPagedData(movies, total, page, perPage)
	h.searchCache.Set(cacheKey, paged)
	utils.Success(c, paged)
}

// MoviesByGenre 按类型筛选
func (h *Handler) MoviesByGenre(c *gin.Context) {
	page, perPage := utils.ParsePage(c.Query("page"), c.Query("per_page"), 24)
	movies, total, err := h.Repos.Movie.FilterByGenre(c.Param("slug"), perPage, (page-1)*perPage)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, utils.NewPagedData(movies, total, page, perPage))
}

// MoviesByCountry 按国家筛选
func (h *Handler) MoviesByCountry(c *gin.Context) {
	page, perPage := utils.ParsePage(c.Query("page"), c.Query("per_page"), 24)
	movies, total, err := h.Repos.Movie.FilterByCountry(c.Param("slug"), perPage, (page-1)*perPage)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, utils.NewPagedData(movies, total, page, perPage))
}

// MoviesByYear 按年份筛选
func (h *Handler) MoviesByYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		utils.BadRequest(c, "年份无效")
		return
	}
	page, perPage := utils.ParsePage(c.Query("page"), c.Query("per_page"), 24)
	movies, total, err := h.Repos.Movie.FilterByYear(year, perPage, (page-1)*perPage)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, utils.NewPagedData(movies, total, page, perPage))
}

// TopOfMonth 本月热播榜，结果缓存 10 分钟
func (h *Handler) TopOfMonth(c *gin.Context) {
	const cacheKey = "movies:top_of_month"
	if cached, ok := utils.CacheGet(cacheKey); ok {
		utils.Success(c, cached)
		return
	}

	movies, err := h.Repos.Movie.TopOfMonth(10)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.CacheSet(cacheKey, movies, 10*time.Minute)
	utils.Success(c, movies)
}

// RecommendedMovies 推荐影片
func (h *Handler) RecommendedMovies(c *gin.Context) {
	page, perPage := utils.ParsePage(c.Query("page"), c.Query("per_page"), 12)
	movies, err := h.Repos.Movie.Recommended(perPage, (page-1)*perPage)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, movies)
}

// MovieYears 所有有影片的年份
func (h *Handler) MovieYears(c *gin.Context) {
	years, err := h.Repos.Movie.Years()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, years)
}

// IncrementView 播放量 +1
func (h *Handler) IncrementView(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "电影 ID 无效")
		return
	}
	if err := h.Repos.Movie.IncrementView(id); err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.SuccessWithMessage(c, "播放量已更新", nil)
}

type movieRequest struct {
	Name           string  `json:"name" validate:"required"`
	Slug           string  `json:"slug"`
	OriginName     string  `json:"origin_name"`
	Content        string  `json:"content"`
	Type           string  `json:"type"`
	Status         string  `json:"status"`
	ThumbURL       string  `json:"thumb_url"`
	PosterURL      string  `json:"poster_url"`
	TrailerURL     string  `json:"trailer_url"`
	Duration       string  `json:"duration"`
	EpisodeCurrent string  `json:"episode_current"`
	EpisodeTotal   string  `json:"episode_total"`
	Quality        string  `json:"quality"`
	Lang           string  `json:"lang"`
	Notify         string  `json:"notify"`
	Showtimes      string  `json:"showtimes"`
	Year           int     `json:"year"`
	IsCopyright    bool    `json:"is_copyright"`
	Chieurap       bool    `json:"chieurap"`
	SubDocquyen    bool    `json:"sub_docquyen"`
	TmdbVoteCount  int     `json:"tmdb_vote_count"`
	TmdbVoteAvg    float64 `json:"tmdb_vote_average"`

	GenreIDs    []int `json:"genre_ids"`
	CountryIDs  []int `json:"country_ids"`
	ActorIDs    []int `json:"actor_ids"`
	DirectorIDs []int `json:"director_ids"`
}

// invalidateMovieCaches 片库变更后清掉搜索缓存和月榜
func (h *Handler) invalidateMovieCaches() {
	h.searchCache.Clear()
	utils.CacheDelete("movies:top_of_month")
}

// CreateMovie 管理员手动录入电影
func (h *Handler) CreateMovie(c *gin.Context) {
	var req movieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数格式错误")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}
	existing, err := h.Repos.Movie.FindBySlug(slug)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if existing != nil {
		utils.BadRequest(c, "该 slug 已存在")
		return
	}

	movie := movieFromRequest(&req, slug)
	if err := h.Repos.Movie.Create(movie); err != nil {
		utils.InternalServerError(c, "电影创建失败")
		return
	}

	if err := h.replaceRelations(movie, &req); err != nil {
		utils.InternalServerError(c, "关联保存失败")
		return
	}

	h.invalidateMovieCaches()
	utils.SuccessWithMessage(c, "电影已创建", movie)
}

// UpdateMovie 管理员更新电影，关联列表全量替换
func (h *Handler) UpdateMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "电影 ID 无效")
		return
	}
	var req movieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数格式错误")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	existing, err := h.Repos.Movie.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if existing == nil {
		utils.NotFound(c, "电影不存在")
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = existing.Slug
	}
	movie := movieFromRequest(&req, slug)
	movie.MovieID = existing.MovieID
	movie.View = existing.View
	if err := h.Repos.Movie.Update(movie); err != nil {
		utils.InternalServerError(c, "电影更新失败")
		return
	}

	if err := h.replaceRelations(movie, &req); err != nil {
		utils.InternalServerError(c, "关联保存失败")
		return
	}

	h.invalidateMovieCaches()
	utils.SuccessWithMessage(c, "电影已更新", movie)
}

// DeleteMovie 管理员删除电影及全部关联
func (h *Handler) DeleteMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "电影 ID 无效")
		return
	}
	if err := h.Repos.Movie.Delete(id); err != nil {
		utils.InternalServerError(c, "电影删除失败")
		return
	}
	h.invalidateMovieCaches()
	utils.SuccessWithMessage(c, "电影已删除", nil)
}

func movieFromRequest(req *movieRequest, slug string) *model.Movie {
	return &model.Movie{
		Name:           req.Name,
		Slug:           slug,
		OriginName:     req.OriginName,
		Content:        req.Content,
		Type:           req.Type,
		Status:         req.Status,
		ThumbURL:       req.ThumbURL,
		PosterURL:      req.PosterURL,
		TrailerURL:     req.TrailerURL,
		Duration:       req.Duration,
		EpisodeCurrent: req.EpisodeCurrent,
		EpisodeTotal:   req.EpisodeTotal,
		Quality:        req.Quality,
		Lang:           req.Lang,
		Notify:         req.Notify,
		Showtimes:      req.Showtimes,
		Year:           req.Year,
		IsCopyright:    req.IsCopyright,
		Chieurap:       req.Chieurap,
		SubDocquyen:    req.SubDocquyen,
		TmdbVoteCount:  req.TmdbVoteCount,
		TmdbVoteAvg:    req.TmdbVoteAvg,
	}
}

// replaceRelations 管理后台的关联编辑是全量替换，和采集的只增不减不同
func (h *Handler) replaceRelations(movie *model.Movie, req *movieRequest) error {
	genres := make([]model.Genre, 0, len(req.GenreIDs))
	for _, id := range req.GenreIDs {
		genres = append(genres, model.Genre{GenreID: id})
	}
	if err := h.Repos.DB.Model(movie).Association("Genres").Replace(genres); err != nil {
		return err
	}

	countries := make([]model.Country, 0, len(req.CountryIDs))
	for _, id := range req.CountryIDs {
		countries = append(countries, model.Country{CountryID: id})
	}
	if err := h.Repos.DB.Model(movie).Association("Countries").Replace(countries); err != nil {
		return err
	}

	actors := make([]model.Actor, 0, len(req.ActorIDs))
	for _, id := range req.ActorIDs {
		actors = append(actors, model.Actor{ActorID: id})
	}
	if err := h.Repos.DB.Model(movie).Association("Actors").Replace(actors); err != nil {
		return err
	}

	directors := make([]model.Director, 0, len(req.DirectorIDs))
	for _, id := range req.DirectorIDs {
		directors = append(directors, model.Director{DirectorID: id})
	}
	return h.Repos.DB.Model(movie).Association("Directors").Replace(directors)
}

// ==================== 剧集 ====================

// ListEpisodes 电影的剧集列表
func (h *Handler) ListEpisodes(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "电影 ID 无效")
		return
	}
	episodes, err := h.Repos.Episode.ListByMovie(movieID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, episodes)
}

type episodeRequest struct {
	ServerName string `json:"server_name"`
	Name       string `json:"name" validate:"required"`
	Slug       string `json:"slug" validate:"required"`
	Filename   string `json:"filename"`
	LinkFilm   string `json:"link_film"`
}

// CreateEpisode 管理员给电影添加剧集
func (h *Handler) CreateEpisode(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "电影 ID 无效")
		return
	}
	var req episodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数格式错误")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	movie, err := h.Repos.Movie.FindByID(movieID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if movie == nil {
		utils.NotFound(c, "电影不存在")
		return
	}

	existing, err := h.Repos.Episode.FindByMovieAndSlug(movieID, req.Slug)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if existing != nil {
		utils.BadRequest(c, "该电影下已存在同 slug 的剧集")
		return
	}

	episode := &model.Episode{
		MovieID:    movieID,
		ServerName: req.ServerName,
		Name:       req.Name,
		Slug:       req.Slug,
		Filename:   req.Filename,
		LinkFilm:   req.LinkFilm,
	}
	if err := h.Repos.Episode.Create(episode); err != nil {
		utils.InternalServerError(c, "剧集创建失败")
		return
	}
	utils.SuccessWithMessage(c, "剧集已创建", episode)
}

// UpdateEpisode 管理员更新剧集播放信息（身份字段不可改）
func (h *Handler) UpdateEpisode(c *gin.Context) {
	episodeID, err := strconv.Atoi(c.Param("episodeId"))
	if err != nil {
		utils.BadRequest(c, "剧集 ID 无效")
		return
	}
	var req episodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数格式错误")
		return
	}

	episode, err := h.Repos.Episode.FindByID(episodeID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if episode == nil {
		utils.NotFound(c, "剧集不存在")
		return
	}

	episode.ServerName = req.ServerName
	episode.Name = req.Name
	episode.Filename = req.Filename
	episode.LinkFilm = req.LinkFilm
	if err := h.Repos.Episode.Update(episode); err != nil {
		utils.InternalServerError(c, "剧集更新失败")
		return
	}
	utils.SuccessWithMessage(c, "剧集已更新", episode)
}

// DeleteEpisode 管理员删除剧集
func (h *Handler) DeleteEpisode(c *gin.Context) {
	episodeID, err := strconv.Atoi(c.Param("episodeId"))
	if err != nil {
		utils.BadRequest(c, "剧集 ID 无效")
		return
	}
	if err := h.Repos.Episode.Delete(episodeID); err != nil {
		utils.InternalServerError(c, "剧集删除失败")
		return
	}
	utils.SuccessWithMessage(c, "剧集已删除", nil)
}
