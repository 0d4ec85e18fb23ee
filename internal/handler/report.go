package handler

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/phimhub/internal/middleware"
	"github.com/user/phimhub/internal/model"
	"github.com/user/phimhub/internal/utils"
)

type reportRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	URLImage    string `json:"url_image"`
}

// notifyAdmins 给全部管理员发站内通知
func (h *Handler) notifyAdmins(title, content string) {
	admins, err := h.Repos.User.ListAdmins()
	if err != nil {
		log.Printf("[Notify] 查询管理员失败: %v", err)
		return
	}
	notifications := make([]*model.Notification, 0, len(admins))
	for _, admin := range admins {
		notifications = append(notifications, &model.Notification{
			UserID:  admin.UserID,
			Title:   title,
			Content: content,
		})
	}
	if err := h.Repos.Notification.CreateBatch(notifications); err != nil {
		log.Printf("[Notify] 管理员通知发送失败: %v", err)
	}
}

// CreateBugReport 提交问题反馈，通知管理员
func (h *Handler) CreateBugReport(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数格式错误")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	report := &model.ReportBug{
		UserID:      middleware.GetUserID(c),
		Title:       req.Title,
		Description: req.Description,
		URLImage:    req.URLImage,
	}
	if err := h.Repos.ReportBug.Create(report); err != nil {
		utils.InternalServerError(c, "反馈提交失败")
		return
	}

	h.notifyAdmins("新问题反馈", "收到新的问题反馈："+req.Title)

	utils.SuccessWithMessage(c, "反馈已提交，感谢支持", report)
}

// ListBugReports 管理员看全部反馈，普通用户只看自己的
func (h *Handler) ListBugReports(c *gin.Context) {
	page, perPage := utils.ParsePage(c.Query("page"), c.Query("per_page"), 20)

	var (
		reports []*model.ReportBug
		total   int64
		err     error
	)
	if middleware.IsAdmin(c) {
		reports, total, err = h.Repos.ReportBug.List(perPage, (page-1)*perPage)
	} else {
		reports, total, err = h.Repos.ReportBug.ListByUser(middleware.GetUserID(c), perPage, (page-1)*perPage)
	}
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, utils.NewPagedData(reports, total, page, perPage))
}

// GetBugReport 查看单条反馈，仅提交者本人或管理员可见
func (h *Handler) GetBugReport(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "反馈 ID 无效")
		return
	}
	report, err := h.Repos.ReportBug.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if report == nil || (report.UserID != middleware.GetUserID(c) && !middleware.IsAdmin(c)) {
		utils.NotFound(c, "反馈不存在")
		return
	}
	utils.Success(c, report)
}

// UpdateBugReport 提交者修改自己的反馈
func (h *Handler) UpdateBugReport(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "反馈 ID 无效")
		return
	}
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数格式错误")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	report, err := h.Repos.ReportBug.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if report == nil || report.UserID != middleware.GetUserID(c) {
		utils.NotFound(c, "反馈不存在")
		return
	}
	if err := h.Repos.ReportBug.Update(id, req.Title, req.Description, req.URLImage); err != nil {
		utils.InternalServerError(c, "反馈更新失败")
		return
	}
	utils.SuccessWithMessage(c, "反馈已更新", nil)
}

// DeleteBugReport 管理员删除问题反馈
func (h *Handler) DeleteBugReport(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "反馈 ID 无效")
		return
	}
	report, err := h.Repos.ReportBug.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if report == nil {
		utils.NotFound(c, "反馈不存在")
		return
	}
	if err := h.Repos.ReportBug.Delete(id); err != nil {
		utils.InternalServerError(c, "反馈删除失败")
		return
	}
	utils.SuccessWithMessage(c, "反馈已删除", nil)
}

// CreateFeatureRequest 提交功能建议，通知管理员
func (h *Handler) CreateFeatureRequest(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数格式错误")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	feature := &model.RequestFeature{
		UserID:      middleware.GetUserID(c),
		Title:       req.Title,
		Description: req.Description,
		URLImage:    req.URLImage,
	}
	if err := h.Repos.RequestFeature.Create(feature); err != nil {
		utils.InternalServerError(c, "建议提交失败")
		return
	}

	h.notifyAdmins("新功能建议", "收到新的功能建议："+req.Title)

	utils.SuccessWithMessage(c, "建议已提交，感谢支持", feature)
}

// ListFeatureRequests 管理员看全部建议，普通用户只看自己的
func (h *Handler) ListFeatureRequests(c *gin.Context) {
	page, perPage := utils.ParsePage(c.Query("page"), c.Query("per_page"), 20)

	var (
		features []*model.RequestFeature
		total    int64
		err      error
	)
	if middleware.IsAdmin(c) {
		features, total, err = h.Repos.RequestFeature.List(perPage, (page-1)*perPage)
	} else {
		features, total, err = h.Repos.RequestFeature.ListByUser(middleware.GetUserID(c), perPage, (page-1)*perPage)
	}
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, utils.NewPagedData(features, total, page, perPage))
}

// GetFeatureRequest 查看单条建议，仅提交者本人或管理员可见
func (h *Handler) GetFeatureRequest(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "建议 ID 无效")
		return
	}
	feature, err := h.Repos.RequestFeature.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if feature == nil || (feature.UserID != middleware.GetUserID(c) && !middleware.IsAdmin(c)) {
		utils.NotFound(c, "建议不存在")
		return
	}
	utils.Success(c, feature)
}

// UpdateFeatureRequest 提交者修改自己的建议
func (h *Handler) UpdateFeatureRequest(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "建议 ID 无效")
		return
	}
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数格式错误")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	feature, err := h.Repos.RequestFeature.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if feature == nil || feature.UserID != middleware.GetUserID(c) {
		utils.NotFound(c, "建议不存在")
		return
	}
	if err := h.Repos.RequestFeature.Update(id, req.Title, req.Description, req.URLImage); err != nil {
		utils.InternalServerError(c, "建议更新失败")
		return
	}
	utils.SuccessWithMessage(c, "建议已更新", nil)
}

// DeleteFeatureRequest 管理员删除功能建议
func (h *Handler) DeleteFeatureRequest(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "建议 ID 无效")
		return
	}
	feature, err := h.Repos.RequestFeature.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if feature == nil {
		utils.NotFound(c, "建议不存在")
		return
	}
	if err := h.Repos.RequestFeature.Delete(id); err != nil {
		utils.InternalServerError(c, "建议删除失败")
		return
	}
	utils.SuccessWithMessage(c, "建议已删除", nil)
}
