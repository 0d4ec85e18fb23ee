package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/phimhub/internal/middleware"
	"github.com/user/phimhub/internal/model"
	"github.com/user/phimhub/internal/utils"
)

type commentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// ListComments 电影的评论列表
func (h *Handler) ListComments(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "电影 ID 无效")
		return
	}
	page, perPage := utils.ParsePage(c.Query("page"), c.Query("per_page"), 20)
	comments, total, err := h.Repos.Comment.ListByMovie(movieID, perPage, (page-1)*perPage)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, utils.NewPagedData(comments, total, page, perPage))
}

// CreateComment 发表评论
func (h *Handler) CreateComment(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "电影 ID 无效")
		return
	}
	var req commentRequest
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

	comment := &model.Comment{
		UserID:  middleware.GetUserID(c),
		MovieID: movieID,
		Content: req.Content,
	}
	if err := h.Repos.Comment.Create(comment); err != nil {
		utils.InternalServerError(c, "评论发表失败")
		return
	}
	utils.SuccessWithMessage(c, "评论已发表", comment)
}

// UpdateComment 修改自己的评论
func (h *Handler) UpdateComment(c *gin.Context) {
	commentID, err := strconv.Atoi(c.Param("commentId"))
	if err != nil {
		utils.BadRequest(c, "评论 ID 无效")
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数格式错误")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	comment, err := h.Repos.Comment.FindByID(commentID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if comment == nil {
		utils.NotFound(c, "评论不存在")
		return
	}
	if comment.UserID != middleware.GetUserID(c) {
		utils.Forbidden(c, "只能修改自己的评论")
		return
	}

	if err := h.Repos.Comment.Update(commentID, req.Content); err != nil {
		utils.InternalServerError(c, "评论更新失败")
		return
	}
	utils.SuccessWithMessage(c, "评论已更新", nil)
}

// DeleteComment 删除评论，作者或管理员可删
func (h *Handler) DeleteComment(c *gin.Context) {
	commentID, err := strconv.Atoi(c.Param("commentId"))
	if err != nil {
		utils.BadRequest(c, "评论 ID 无效")
		return
	}

	comment, err := h.Repos.Comment.FindByID(commentID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if comment == nil {
		utils.NotFound(c, "评论不存在")
		return
	}
	if comment.UserID != middleware.GetUserID(c) && !middleware.IsAdmin(c) {
		utils.Forbidden(c, "只能删除自己的评论")
		return
	}

	if err := h.Repos.Comment.Delete(commentID); err != nil {
		utils.InternalServerError(c, "评论删除失败")
		return
	}
	utils.SuccessWithMessage(c, "评论已删除", nil)
}
