package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/phimhub/internal/utils"
)

type crawlRequest struct {
	Slugs []string `json:"slugs" validate:"required,min=1,max=100,dive,required"`
	Async bool     `json:"async"`
}

// CrawlFilms 管理员触发采集
// 同步模式等待全部 slug 处理完并返回逐条结果；异步模式立即返回
func (h *Handler) CrawlFilms(c *gin.Context) {
	var req crawlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数格式错误")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	if req.Async {
		h.Crawler.CrawlAsync(req.Slugs)
		utils.SuccessWithMessage(c, "采集任务已提交", gin.H{"count": len(req.Slugs)})
		return
	}

	results := h.Crawler.CrawlFilms(c.Request.Context(), req.Slugs)

	okCount := 0
	for _, r := range results {
		if r.Status == "ok" {
			okCount++
		}
	}
	utils.Success(c, gin.H{
		"total":   len(results),
		"ok":      okCount,
		"failed":  len(results) - okCount,
		"results": results,
	})
}
