package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/phimhub/internal/middleware"
	"github.com/user/phimhub/internal/model"
	"github.com/user/phimhub/internal/utils"
)

type blogRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Content  string `json:"content" validate:"required"`
	ImageURL string `json:"image_url"`
}

// ListBlogs 博客列表，普通用户只看到已审核的
func (h *Handler) ListBlogs(c *gin.Context) {
	page, perPage := utils.ParsePage(c.Query("page"), c.Query("per_page"), 10)
	verifiedOnly := !middleware.IsAdmin(c)
	blogs, total, err := h.Repos.Blog.List(c.Query("q"), verifiedOnly, perPage, (page-1)*perPage)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, utils.NewPagedData(blogs, total, page, perPage))
}

// BlogDetail 博客详情
func (h *Handler) BlogDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "博客 ID 无效")
		return
	}

	blog, err := h.Repos.Blog.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if blog == nil {
		utils.NotFound(c, "博客不存在")
		return
	}
	// 未审核的只有作者和管理员可见
	if !blog.IsVerify && blog.UserID != middleware.GetUserID(c) && !middleware.IsAdmin(c) {
		utils.NotFound(c, "博客不存在")
		return
	}
	utils.Success(c, blog)
}

// CreateBlog 发表博客，等待管理员审核
func (h *Handler) CreateBlog(c *gin.Context) {
	var req blogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数格式错误")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	blog := &model.Blog{
		UserID:   middleware.GetUserID(c),
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}
	if err := h.Repos.Blog.Create(blog); err != nil {
		utils.InternalServerError(c, "博客发表失败")
		return
	}

	// 通知管理员审核
	h.notifyAdmins("新博客待审核", "用户发表了新博客《"+req.Title+"》，请及时审核")

	utils.SuccessWithMessage(c, "博客已提交，等待审核", blog)
}

// UpdateBlog 修改自己的博客，修改后重新进入待审核状态
func (h *Handler) UpdateBlog(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "博客 ID 无效")
		return
	}
	var req blogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数格式错误")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	blog, err := h.Repos.Blog.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if blog == nil {
		utils.NotFound(c, "博客不存在")
		return
	}
	if blog.UserID != middleware.GetUserID(c) {
		utils.Forbidden(c, "只能修改自己的博客")
		return
	}

	if err := h.Repos.Blog.Update(id, req.Title, req.Content, req.ImageURL); err != nil {
		utils.InternalServerError(c, "博客更新失败")
		return
	}
	utils.SuccessWithMessage(c, "博客已更新", nil)
}

// DeleteBlog 删除博客，作者或管理员可删
func (h *Handler) DeleteBlog(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "博客 ID 无效")
		return
	}

	blog, err := h.Repos.Blog.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if blog == nil {
		utils.NotFound(c, "博客不存在")
		return
	}
	if blog.UserID != middleware.GetUserID(c) && !middleware.IsAdmin(c) {
		utils.Forbidden(c, "只能删除自己的博客")
		return
	}

	if err := h.Repos.Blog.Delete(id); err != nil {
		utils.InternalServerError(c, "博客删除失败")
		return
	}
	utils.SuccessWithMessage(c, "博客已删除", nil)
}

// VerifyBlog 管理员审核通过博客，通知作者
func (h *Handler) VerifyBlog(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "博客 ID 无效")
		return
	}

	blog, err := h.Repos.Blog.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if blog == nil {
		utils.NotFound(c, "博客不存在")
		return
	}

	if err := h.Repos.Blog.Verify(id); err != nil {
		utils.InternalServerError(c, "审核操作失败")
		return
	}

	notification := &model.Notification{
		UserID:  blog.UserID,
		Title:   "博客审核通过",
		Content: "你的博客《" + blog.Title + "》已通过审核并公开",
	}
	if err := h.Repos.Notification.Create(notification); err != nil {
		// 通知失败不影响审核结果
		utils.SuccessWithMessage(c, "博客已通过审核", nil)
		return
	}
	utils.SuccessWithMessage(c, "博客已通过审核", nil)
}

// TopBloggers 高产作者榜
func (h *Handler) TopBloggers(c *gin.Context) {
	bloggers, err := h.Repos.Blog.TopBloggers(10)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, bloggers)
}
