package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/phimhub/internal/middleware"
	"github.com/user/phimhub/internal/model"
	"github.com/user/phimhub/internal/utils"
)

type playlistRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// ListPlaylists 我的片单列表，附带封面（取片单第一部电影的海报）
func (h *Handler) ListPlaylists(c *gin.Context) {
	userID := middleware.GetUserID(c)
	playlists, err := h.Repos.Playlist.ListByUser(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	type playlistView struct {
		*model.Playlist
		CoverURL string `json:"cover_url"`
	}
	views := make([]playlistView, 0, len(playlists))
	for _, playlist := range playlists {
		cover, _ := h.Repos.Playlist.FirstMoviePoster(playlist.PlaylistID)
		views = append(views, playlistView{Playlist: playlist, CoverURL: cover})
	}
	utils.Success(c, views)
}

// CreatePlaylist 创建片单
func (h *Handler) CreatePlaylist(c *gin.Context) {
	var req playlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数格式错误")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	playlist := &model.Playlist{
		UserID: middleware.GetUserID(c),
		Name:   req.Name,
	}
	if err := h.Repos.Playlist.Create(playlist); err != nil {
		utils.InternalServerError(c, "片单创建失败")
		return
	}
	utils.SuccessWithMessage(c, "片单已创建", playlist)
}

// ownedPlaylist 校验片单归属，失败时已写好响应
func (h *Handler) ownedPlaylist(c *gin.Context) *model.Playlist {
	playlistID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "片单 ID 无效")
		return nil
	}
	playlist, err := h.Repos.Playlist.FindByID(playlistID)
	if err != nil {
		utils.InternalServerError(c, "")
		return nil
	}
	if playlist == nil {
		utils.NotFound(c, "片单不存在")
		return nil
	}
	if playlist.UserID != middleware.GetUserID(c) {
		utils.Forbidden(c, "只能操作自己的片单")
		return nil
	}
	return playlist
}

// RenamePlaylist 重命名片单
func (h *Handler) RenamePlaylist(c *gin.Context) {
	playlist := h.ownedPlaylist(c)
	if playlist == nil {
		return
	}
	var req playlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数格式错误")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	if err := h.Repos.Playlist.Rename(playlist.PlaylistID, req.Name); err != nil {
		utils.InternalServerError(c, "片单重命名失败")
		return
	}
	utils.SuccessWithMessage(c, "片单已重命名", nil)
}

// DeletePlaylist 删除片单
func (h *Handler) DeletePlaylist(c *gin.Context) {
	playlist := h.ownedPlaylist(c)
	if playlist == nil {
		return
	}
	if err := h.Repos.Playlist.Delete(playlist.PlaylistID); err != nil {
		utils.InternalServerError(c, "片单删除失败")
		return
	}
	utils.SuccessWithMessage(c, "片单已删除", nil)
}

// ListPlaylistMovies 片单里的电影
func (h *Handler) ListPlaylistMovies(c *gin.Context) {
	playlist := h.ownedPlaylist(c)
	if playlist == nil {
		return
	}
	page, perPage := utils.ParsePage(c.Query("page"), c.Query("per_page"), 24)
	movies, total, err := h.Repos.Playlist.ListMovies(playlist.PlaylistID, perPage, (page-1)*perPage)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, gin.H{
		"playlist": playlist,
		"movies":   utils.NewPagedData(movies, total, page, perPage),
	})
}

type playlistMovieRequest struct {
	MovieID int `json:"movie_id" validate:"required"`
}

// AddPlaylistMovie 往片单加电影，重复添加不报错
func (h *Handler) AddPlaylistMovie(c *gin.Context) {
	playlist := h.ownedPlaylist(c)
	if playlist == nil {
		return
	}
	var req playlistMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数格式错误")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	movie, err := h.Repos.Movie.FindByID(req.MovieID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if movie == nil {
		utils.NotFound(c, "电影不存在")
		return
	}

	if err := h.Repos.Playlist.AddMovie(playlist.PlaylistID, req.MovieID); err != nil {
		utils.InternalServerError(c, "添加失败")
		return
	}
	utils.SuccessWithMessage(c, "已加入片单", nil)
}

// RemovePlaylistMovie 从片单移除电影
func (h *Handler) RemovePlaylistMovie(c *gin.Context) {
	playlist := h.ownedPlaylist(c)
	if playlist == nil {
		return
	}
	movieID, err := strconv.Atoi(c.Param("movieId"))
	if err != nil {
		utils.BadRequest(c, "电影 ID 无效")
		return
	}
	if err := h.Repos.Playlist.RemoveMovie(playlist.PlaylistID, movieID); err != nil {
		utils.InternalServerError(c, "移除失败")
		return
	}
	utils.SuccessWithMessage(c, "已移出片单", nil)
}
