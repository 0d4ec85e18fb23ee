package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/user/phimhub/internal/config"
	"github.com/user/phimhub/internal/model"
	"github.com/user/phimhub/internal/repository"
	"github.com/user/phimhub/internal/service"
	"github.com/user/phimhub/internal/utils"
)

// Handler HTTP 处理器
type Handler struct {
	Repos    *repository.Repositories
	Config   *config.Config
	Crawler  *service.FilmCrawler
	validate *validator.Validate

	// 搜索结果缓存，key 是关键词+分页
	searchCache *utils.SearchCache[*utils.PagedData]
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	// 创建采集服务
	fetcher := service.NewFilmFetcher(cfg.CrawlBaseUrl)
	saver := service.NewFilmSaver(service.NewFilmStore(repos))
	crawler := service.NewFilmCrawler(fetcher, saver)

	return &Handler{
		Repos:       repos,
		Config:      cfg,
		Crawler:     crawler,
		validate:    validator.New(),
		searchCache: utils.NewSearchCache[*utils.PagedData](1000, 10*time.Minute),
	}
}

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	sqlDB, err := h.Repos.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		utils.Error(c, 503, "数据库不可用")
		return
	}
	utils.Success(c, gin.H{
		"status": "ok",
		"site":   h.Config.SiteName,
		"time":   time.Now().Format(time.RFC3339),
	})
}

// currentUser 获取当前登录用户，未找到返回 nil
func (h *Handler) currentUser(c *gin.Context) (*model.User, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		return nil, nil
	}
	return h.Repos.User.FindByID(userID.(int))
}
