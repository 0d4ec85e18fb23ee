package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/phimhub/internal/middleware"
	"github.com/user/phimhub/internal/model"
	"github.com/user/phimhub/internal/utils"
)

type ratingRequest struct {
	Score  int    `json:"score" validate:"required,min=1,max=5"`
	Review string `json:"review" validate:"omitempty,max=2000"`
}

// ListRatings 电影的评分列表，附带点赞统计
func (h *Handler) ListRatings(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "电影 ID 无效")
		return
	}

	ratings, err := h.Repos.Rating.ListByMovie(movieID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	avgScore, err := h.Repos.Rating.AverageScore(movieID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	type ratingView struct {
		*model.Rating
		Likes    int64 `json:"likes"`
		Dislikes int64 `json:"dislikes"`
	}
	views := make([]ratingView, 0, len(ratings))
	for _, rating := range ratings {
		likes, dislikes, err := h.Repos.Rating.CountReactions(rating.RatingID)
		if err != nil {
			utils.InternalServerError(c, "")
			return
		}
		views = append(views, ratingView{Rating: rating, Likes: likes, Dislikes: dislikes})
	}

	utils.Success(c, gin.H{
		"ratings":       views,
		"average_score": avgScore,
	})
}

// UpsertRating 评分，已评过则覆盖
func (h *Handler) UpsertRating(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "电影 ID 无效")
		return
	}
	var req ratingRequest
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

	userID := middleware.GetUserID(c)
	existing, err := h.Repos.Rating.FindByUserAndMovie(userID, movieID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	if existing != nil {
		if err := h.Repos.Rating.Update(existing.RatingID, req.Score, req.Review); err != nil {
			utils.InternalServerError(c, "评分更新失败")
			return
		}
		utils.SuccessWithMessage(c, "评分已更新", nil)
		return
	}

	rating := &model.Rating{
		UserID:  userID,
		MovieID: movieID,
		Score:   req.Score,
		Review:  req.Review,
	}
	if err := h.Repos.Rating.Create(rating); err != nil {
		utils.InternalServerError(c, "评分保存失败")
		return
	}
	utils.SuccessWithMessage(c, "评分已保存", rating)
}

type reactionRequest struct {
	IsLike *bool `json:"is_like" validate:"required"`
}

// ReactToRating 点赞/点踩评分，重复同一操作即撤销
func (h *Handler) ReactToRating(c *gin.Context) {
	ratingID, err := strconv.Atoi(c.Param("ratingId"))
	if err != nil {
		utils.BadRequest(c, "评分 ID 无效")
		return
	}
	var req reactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数格式错误")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	rating, err := h.Repos.Rating.FindByID(ratingID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if rating == nil {
		utils.NotFound(c, "评分不存在")
		return
	}

	if err := h.Repos.Rating.ToggleReaction(middleware.GetUserID(c), ratingID, *req.IsLike); err != nil {
		utils.InternalServerError(c, "操作失败")
		return
	}

	likes, dislikes, err := h.Repos.Rating.CountReactions(ratingID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, gin.H{"likes": likes, "dislikes": dislikes})
}
