package service

import (
	"context"
	"log"
	"time"

	"github.com/user/phimhub/internal/repository"
)

// CleanupService 周期清理过期数据：已读通知和过旧的观看历史
type CleanupService struct {
	repos           *repository.Repositories
	interval        time.Duration
	notificationAge time.Duration
	historyDays     int
}

// NewCleanupService 创建清理服务，默认每 24 小时跑一轮
func NewCleanupService(repos *repository.Repositories) *CleanupService {
	return &CleanupService{
		repos:           repos,
		interval:        24 * time.Hour,
		notificationAge: 30 * 24 * time.Hour,
		historyDays:     180,
	}
}

// Start 启动后台清理循环，ctx 取消后退出
func (s *CleanupService) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.runOnce()
		for {
			select {
			case <-ticker.C:
				s.runOnce()
			case <-ctx.Done():
				log.Println("[Cleanup] 清理服务已停止")
				return
			}
		}
	}()
}

func (s *CleanupService) runOnce() {
	cutoff := time.Now().Add(-s.notificationAge)
	if n, err := s.repos.Notification.DeleteReadOlderThan(cutoff); err != nil {
		log.Printf("[Cleanup] 清理已读通知失败: %v", err)
	} else if n > 0 {
		log.Printf("[Cleanup] 清理已读通知 %d 条", n)
	}

	if n, err := s.repos.History.DeleteOlderThan(s.historyDays); err != nil {
		log.Printf("[Cleanup] 清理观看历史失败: %v", err)
	} else if n > 0 {
		log.Printf("[Cleanup] 清理观看历史 %d 条", n)
	}
}
