package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/phimhub/internal/middleware"
	"github.com/user/phimhub/internal/utils"
)

// ListHistory 我的观影历史
func (h *Handler) ListHistory(c *gin.Context) {
	userID := middleware.GetUserID(c)
	page, perPage := utils.ParsePage(c.Query("page"), c.Query("per_page"), 20)
	histories, total, err := h.Repos.History.ListByUser(userID, perPage, (page-1)*perPage)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, utils.NewPagedData(histories, total, page, perPage))
}

type historyRequest struct {
	MovieID int `json:"movie_id" validate:"required"`
}

// AddHistory 记录一次观影
func (h *Handler) AddHistory(c *gin.Context) {
	var req historyRequest
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

	history, err := h.Repos.History.Add(middleware.GetUserID(c), req.MovieID)
	if err != nil {
		utils.InternalServerError(c, "历史记录保存失败")
		return
	}
	utils.SuccessWithMessage(c, "已记录", history)
}

// DeleteHistory 删除一条观影历史
func (h *Handler) DeleteHistory(c *gin.Context) {
	historyID, err := strconv.Atoi(c.Param("historyId"))
	if err != nil {
		utils.BadRequest(c, "历史记录 ID 无效")
		return
	}

	history, err := h.Repos.History.FindByID(historyID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if history == nil {
		utils.NotFound(c, "历史记录不存在")
		return
	}
	if history.UserID != middleware.GetUserID(c) {
		utils.Forbidden(c, "只能删除自己的历史记录")
		return
	}

	if err := h.Repos.History.Delete(historyID); err != nil {
		utils.InternalServerError(c, "历史记录删除失败")
		return
	}
	utils.SuccessWithMessage(c, "已删除", nil)
}

// ListWatchlist 我的追剧单
func (h *Handler) ListWatchlist(c *gin.Context) {
	items, err := h.Repos.Watchlist.ListByUser(middleware.GetUserID(c))
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, items)
}

// ToggleWatchlist 加入/移出追剧单
func (h *Handler) ToggleWatchlist(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "电影 ID 无效")
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

	inList, err := h.Repos.Watchlist.Toggle(middleware.GetUserID(c), movieID)
	if err != nil {
		utils.InternalServerError(c, "操作失败")
		return
	}
	if inList {
		utils.SuccessWithMessage(c, "已加入追剧单", gin.H{"in_watchlist": true})
		return
	}
	utils.SuccessWithMessage(c, "已移出追剧单", gin.H{"in_watchlist": false})
}
