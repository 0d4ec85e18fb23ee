package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/phimhub/internal/middleware"
	"github.com/user/phimhub/internal/utils"
)

// ListNotifications 我的通知，未读在前
func (h *Handler) ListNotifications(c *gin.Context) {
	userID := middleware.GetUserID(c)
	page, perPage := utils.ParsePage(c.Query("page"), c.Query("per_page"), 20)
	notifications, total, err := h.Repos.Notification.ListByUser(userID, perPage, (page-1)*perPage)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	unread, err := h.Repos.Notification.CountUnread(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, gin.H{
		"notifications": utils.NewPagedData(notifications, total, page, perPage),
		"unread_count":  unread,
	})
}

// MarkNotificationRead 标记单条通知已读
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "通知 ID 无效")
		return
	}
	if err := h.Repos.Notification.MarkRead(id, middleware.GetUserID(c)); err != nil {
		utils.InternalServerError(c, "操作失败")
		return
	}
	utils.SuccessWithMessage(c, "已标记已读", nil)
}

// MarkAllNotificationsRead 全部标记已读
func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	if err := h.Repos.Notification.MarkAllRead(middleware.GetUserID(c)); err != nil {
		utils.InternalServerError(c, "操作失败")
		return
	}
	utils.SuccessWithMessage(c, "全部已读", nil)
}

// DeleteNotification 删除自己的通知
func (h *Handler) DeleteNotification(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "通知 ID 无效")
		return
	}
	if err := h.Repos.Notification.Delete(id, middleware.GetUserID(c)); err != nil {
		utils.InternalServerError(c, "通知删除失败")
		return
	}
	utils.SuccessWithMessage(c, "通知已删除", nil)
}
