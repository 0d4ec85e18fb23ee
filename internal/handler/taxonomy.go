package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/phimhub/internal/model"
	"github.com/user/phimhub/internal/utils"
)

// ==================== 类型 ====================

// ListGenres 类型列表，不带 page 参数时返回全部（筛选项用）
func (h *Handler) ListGenres(c *gin.Context) {
	if c.Query("page") == "" {
		genres, err := h.Repos.Genre.ListAll()
		if err != nil {
			utils.InternalServerError(c, "")
			return
		}
		utils.Success(c, genres)
		return
	}

	page, perPage := utils.ParsePage(c.Query("page"), c.Query("per_page"), 50)
	genres, total, err := h.Repos.Genre.List(perPage, (page-1)*perPage)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, utils.NewPagedData(genres, total, page, perPage))
}

type namedRequest struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug"`
}

// CreateGenre 管理员添加类型
func (h *Handler) CreateGenre(c *gin.Context) {
	var req namedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数格式错误")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	existing, err := h.Repos.Genre.FindByName(req.Name)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if existing != nil {
		utils.BadRequest(c, "该类型已存在")
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}
	genre := &model.Genre{Name: req.Name, Slug: slug}
	if err := h.Repos.Genre.Create(genre); err != nil {
		utils.InternalServerError(c, "类型创建失败")
		return
	}
	utils.SuccessWithMessage(c, "类型已创建", genre)
}

// UpdateGenre 管理员更新类型
func (h *Handler) UpdateGenre(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "类型 ID 无效")
		return
	}
	var req namedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数格式错误")
		return
	}

	genre, err := h.Repos.Genre.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if genre == nil {
		utils.NotFound(c, "类型不存在")
		return
	}

	genre.Name = req.Name
	if req.Slug != "" {
		genre.Slug = req.Slug
	}
	if err := h.Repos.Genre.Update(genre); err != nil {
		utils.InternalServerError(c, "类型更新失败")
		return
	}
	utils.SuccessWithMessage(c, "类型已更新", genre)
}

// DeleteGenre 管理员删除类型
func (h *Handler) DeleteGenre(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "类型 ID 无效")
		return
	}
	if err := h.Repos.Genre.Delete(id); err != nil {
		utils.InternalServerError(c, "类型删除失败")
		return
	}
	utils.SuccessWithMessage(c, "类型已删除", nil)
}

// ==================== 国家 ====================

// ListCountries 国家列表，name 非空时按名字模糊搜索
func (h *Handler) ListCountries(c *gin.Context) {
	var (
		countries []*model.Country
		err       error
	)
	if name := c.Query("name"); name != "" {
		countries, err = h.Repos.Country.SearchByName(name)
	} else {
		countries, err = h.Repos.Country.ListAll()
	}
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, countries)
}

// CreateCountry 管理员添加国家
func (h *Handler) CreateCountry(c *gin.Context) {
	var req namedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数格式错误")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	existing, err := h.Repos.Country.FindByName(req.Name)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if existing != nil {
		utils.BadRequest(c, "该国家已存在")
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}
	country := &model.Country{Name: req.Name, Slug: slug}
	if err := h.Repos.Country.Create(country); err != nil {
		utils.InternalServerError(c, "国家创建失败")
		return
	}
	utils.SuccessWithMessage(c, "国家已创建", country)
}

// UpdateCountry 管理员更新国家
func (h *Handler) UpdateCountry(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "国家 ID 无效")
		return
	}
	var req namedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数格式错误")
		return
	}

	country, err := h.Repos.Country.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if country == nil {
		utils.NotFound(c, "国家不存在")
		return
	}

	country.Name = req.Name
	if req.Slug != "" {
		country.Slug = req.Slug
	}
	if err := h.Repos.Country.Update(country); err != nil {
		utils.InternalServerError(c, "国家更新失败")
		return
	}
	utils.SuccessWithMessage(c, "国家已更新", country)
}

// DeleteCountry 管理员删除国家
func (h *Handler) DeleteCountry(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "国家 ID 无效")
		return
	}
	if err := h.Repos.Country.Delete(id); err != nil {
		utils.InternalServerError(c, "国家删除失败")
		return
	}
	utils.SuccessWithMessage(c, "国家已删除", nil)
}

// ==================== 演员 ====================

// ListActors 演员列表，支持按名字模糊匹配
func (h *Handler) ListActors(c *gin.Context) {
	page, perPage := utils.ParsePage(c.Query("page"), c.Query("per_page"), 50)
	actors, total, err := h.Repos.Actor.List(c.Query("name"), perPage, (page-1)*perPage)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, utils.NewPagedData(actors, total, page, perPage))
}

// UpdateActor 管理员更新演员名
func (h *Handler) UpdateActor(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "演员 ID 无效")
		return
	}
	var req namedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数格式错误")
		return
	}

	actor, err := h.Repos.Actor.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if actor == nil {
		utils.NotFound(c, "演员不存在")
		return
	}

	actor.Name = req.Name
	if err := h.Repos.Actor.Update(actor); err != nil {
		utils.InternalServerError(c, "演员更新失败")
		return
	}
	utils.SuccessWithMessage(c, "演员已更新", actor)
}

// DeleteActor 管理员删除演员
func (h *Handler) DeleteActor(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "演员 ID 无效")
		return
	}
	if err := h.Repos.Actor.Delete(id); err != nil {
		utils.InternalServerError(c, "演员删除失败")
		return
	}
	utils.SuccessWithMessage(c, "演员已删除", nil)
}

// ==================== 导演 ====================

// ListDirectors 导演列表，支持按名字模糊匹配
func (h *Handler) ListDirectors(c *gin.Context) {
	page, perPage := utils.ParsePage(c.Query("page"), c.Query("per_page"), 50)
	directors, total, err := h.Repos.Director.List(c.Query("name"), perPage, (page-1)*perPage)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, utils.NewPagedData(directors, total, page, perPage))
}

// UpdateDirector 管理员更新导演名
func (h *Handler) UpdateDirector(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "导演 ID 无效")
		return
	}
	var req namedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数格式错误")
		return
	}

	director, err := h.Repos.Director.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if director == nil {
		utils.NotFound(c, "导演不存在")
		return
	}

	director.Name = req.Name
	if err := h.Repos.Director.Update(director); err != nil {
		utils.InternalServerError(c, "导演更新失败")
		return
	}
	utils.SuccessWithMessage(c, "导演已更新", director)
}

// DeleteDirector 管理员删除导演
func (h *Handler) DeleteDirector(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "导演 ID 无效")
		return
	}
	if err := h.Repos.Director.Delete(id); err != nil {
		utils.InternalServerError(c, "导演删除失败")
		return
	}
	utils.SuccessWithMessage(c, "导演已删除", nil)
}
