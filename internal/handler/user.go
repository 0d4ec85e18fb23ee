package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/user/phimhub/internal/middleware"
	"github.com/user/phimhub/internal/utils"
)

type updateProfileRequest struct {
	Username  string `json:"username" validate:"omitempty,min=2,max=20"`
	Email     string `json:"email" validate:"omitempty,email"`
	AvatarURL string `json:"avatar_url"`
}

// UpdateProfile 修改个人资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数格式错误")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	userID := middleware.GetUserID(c)

	if req.Username != "" {
		if err := h.Repos.User.UpdateUsername(userID, strings.TrimSpace(req.Username)); err != nil {
			utils.InternalServerError(c, "用户名更新失败")
			return
		}
	}
	if req.Email != "" {
		// 检查邮箱是否已被占用
		existing, err := h.Repos.User.FindByEmail(req.Email)
		if err != nil {
			utils.InternalServerError(c, "")
			return
		}
		if existing != nil && existing.UserID != userID {
			utils.BadRequest(c, "该邮箱已被其他账号使用")
			return
		}
		if err := h.Repos.User.UpdateEmail(userID, req.Email); err != nil {
			utils.InternalServerError(c, "邮箱更新失败")
			return
		}
	}
	if req.AvatarURL != "" {
		if err := h.Repos.User.UpdateAvatar(userID, req.AvatarURL); err != nil {
			utils.InternalServerError(c, "头像更新失败")
			return
		}
	}

	user, err := h.Repos.User.FindByID(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.SuccessWithMessage(c, "资料已更新", user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// ChangePassword 修改密码
func (h *Handler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数格式错误")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	user, err := h.currentUser(c)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if user == nil {
		utils.Unauthorized(c, "")
		return
	}

	if !h.Repos.User.CheckPassword(user, req.CurrentPassword) {
		utils.BadRequest(c, "当前密码错误")
		return
	}

	if err := h.Repos.User.UpdatePassword(user.UserID, req.NewPassword); err != nil {
		utils.InternalServerError(c, "密码更新失败")
		return
	}
	utils.SuccessWithMessage(c, "密码已修改", nil)
}

// MyStatistics 我的互动统计
func (h *Handler) MyStatistics(c *gin.Context) {
	userID := middleware.GetUserID(c)

	commentCount, err := h.Repos.Comment.CountByUser(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	ratingCount, err := h.Repos.Rating.CountByUser(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	blogCount, err := h.Repos.Blog.CountByUser(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	watchlistCount, err := h.Repos.Watchlist.CountByUser(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, gin.H{
		"comment_count":   commentCount,
		"rating_count":    ratingCount,
		"blog_count":      blogCount,
		"watchlist_count": watchlistCount,
	})
}

// ==================== 管理后台 ====================

// ListUsers 管理员查看全部用户
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Repos.User.ListAll()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, users)
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

// UpdateUserRole 管理员调整用户角色
func (h *Handler) UpdateUserRole(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "用户 ID 无效")
		return
	}
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数格式错误")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	user, err := h.Repos.User.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if user == nil {
		utils.NotFound(c, "用户不存在")
		return
	}

	if err := h.Repos.User.UpdateRole(id, req.Role); err != nil {
		utils.InternalServerError(c, "角色更新失败")
		return
	}
	utils.SuccessWithMessage(c, "角色已更新", nil)
}

// DeleteUser 管理员删除用户
func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "用户 ID 无效")
		return
	}
	if id == middleware.GetUserID(c) {
		utils.BadRequest(c, "不能删除自己的账号")
		return
	}
	if err := h.Repos.User.Delete(id); err != nil {
		utils.InternalServerError(c, "用户删除失败")
		return
	}
	utils.SuccessWithMessage(c, "用户已删除", nil)
}

// SiteStatistics 管理员看板统计
func (h *Handler) SiteStatistics(c *gin.Context) {
	userCount, err := h.Repos.User.Count()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	movieCount, err := h.Repos.Movie.Count()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, gin.H{
		"user_count":  userCount,
		"movie_count": movieCount,
	})
}
