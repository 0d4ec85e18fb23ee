package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/user/phimhub/internal/middleware"
	"github.com/user/phimhub/internal/model"
	"github.com/user/phimhub/internal/utils"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"omitempty,min=2,max=20"`
	FullName string `json:"full_name" validate:"omitempty,max=100"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Register 注册
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数格式错误")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	// 检查邮箱是否已存在
	existing, err := h.Repos.User.FindByEmail(req.Email)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if existing != nil {
		utils.BadRequest(c, "该邮箱已被注册")
		return
	}

	// 默认截取邮箱 @ 符号前的内容作为用户名
	username := req.Username
	if username == "" {
		username = strings.Split(req.Email, "@")[0]
	}

	user, err := h.Repos.User.Create(req.Email, username, req.FullName, req.Password)
	if err != nil {
		utils.InternalServerError(c, "注册失败，请重试")
		return
	}

	h.respondWithTokens(c, user)
}

// Login 登录
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数格式错误")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	user, err := h.Repos.User.FindByEmail(req.Email)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	// 统一报错，不区分邮箱不存在和密码错误
	if user == nil || !h.Repos.User.CheckPassword(user, req.Password) {
		utils.Unauthorized(c, "邮箱或密码错误")
		return
	}

	h.respondWithTokens(c, user)
}

// Refresh 用 refresh token 换新的 access token
func (h *Handler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数格式错误")
		return
	}

	claims, err := middleware.ParseToken(req.RefreshToken, h.Config.RefreshSecret)
	if err != nil {
		utils.Unauthorized(c, "refresh token 无效或已过期")
		return
	}

	// 换 token 时重新查库，保证角色变更即时生效
	user, err := h.Repos.User.FindByID(claims.UserID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if user == nil {
		utils.Unauthorized(c, "用户不存在")
		return
	}

	h.respondWithTokens(c, user)
}

// Me 当前登录用户信息
func (h *Handler) Me(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if user == nil {
		utils.Unauthorized(c, "")
		return
	}
	utils.Success(c, user)
}

func (h *Handler) respondWithTokens(c *gin.Context, user *model.User) {
	accessToken, err := middleware.GenerateToken(user.UserID, user.Email, user.Role, h.Config.AppSecret, h.Config.JWTExpiry)
	if err != nil {
		utils.InternalServerError(c, "令牌生成失败")
		return
	}
	refreshToken, err := middleware.GenerateToken(user.UserID, user.Email, user.Role, h.Config.RefreshSecret, h.Config.RefreshExpiry)
	if err != nil {
		utils.InternalServerError(c, "令牌生成失败")
		return
	}

	utils.Success(c, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"expires_in":    int(h.Config.JWTExpiry.Seconds()),
		"user":          user,
	})
}
