package repository

import (
	"errors"
	"time"

	"github.com/user/phimhub/internal/model"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create 创建单条通知
func (r *NotificationRepository) Create(n *model.Notification) error {
	n.CreatedAt = time.Now()
	return r.db.Create(n).Error
}

// CreateBatch 批量创建通知（通知全体管理员时用）
func (r *NotificationRepository) CreateBatch(ns []*model.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	now := time.Now()
	for _, n := range ns {
		n.CreatedAt = now
	}
	return r.db.Create(&ns).Error
}

// FindByID 按 ID 查找通知
func (r *NotificationRepository) FindByID(id int) (*model.Notification, error) {
	var n model.Notification
	err := r.db.First(&n, "notification_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ListByUser 分页获取用户通知，未读在前
func (r *NotificationRepository) ListByUser(userID, limit, offset int) ([]*model.Notification, int64, error) {
	var total int64
	if err := r.db.Model(&model.Notification{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ns []*model.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("is_read ASC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ns).Error
	return ns, total, err
}

// CountUnread 未读通知数
func (r *NotificationRepository) CountUnread(userID int) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Count(&count).Error
	return count, err
}

// MarkRead 标记单条已读
func (r *NotificationRepository) MarkRead(notificationID, userID int) error {
	return r.db.Model(&model.Notification{}).
		Where("notification_id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true).Error
}

// MarkAllRead 全部标记已读
func (r *NotificationRepository) MarkAllRead(userID int) error {
	return r.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Update("is_read", true).Error
}

// Delete 删除通知
func (r *NotificationRepository) Delete(notificationID, userID int) error {
	return r.db.Delete(&model.Notification{}, "notification_id = ? AND user_id = ?", notificationID, userID).Error
}

// DeleteReadOlderThan 清理早于指定时间的已读通知
func (r *NotificationRepository) DeleteReadOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("is_read = true AND created_at < ?", cutoff).Delete(&model.Notification{})
	return result.RowsAffected, result.Error
}
