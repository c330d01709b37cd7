package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"deltahub/internal/model"
)

// ==================== 接口定义 ====================

// WebhookRepository 回调投递仓储接口
type WebhookRepository interface {
	Create(ctx context.Context, delivery *model.WebhookDelivery) error
	ListRetryable(ctx context.Context, limit int) ([]model.WebhookDelivery, error)
	MarkDelivered(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, errMsg string) error
}

// ==================== 仓储实现 ====================

type webhookRepo struct {
	db *gorm.DB
}

// NewWebhookRepository 创建回调投递仓储
func NewWebhookRepository(db *gorm.DB) WebhookRepository {
	return &webhookRepo{db: db}
}

func (r *webhookRepo) Create(ctx context.Context, delivery *model.WebhookDelivery) error {
	return r.db.WithContext(ctx).Create(delivery).Error
}

// ListRetryable 取待投递与未超限的失败记录
func (r *webhookRepo) ListRetryable(ctx context.Context, limit int) ([]model.WebhookDelivery, error) {
	if limit <= 0 {
		limit = 50
	}
	var deliveries []model.WebhookDelivery
	err := r.db.WithContext(ctx).
		Where("status IN ?", []string{model.WebhookStatusPending, model.WebhookStatusFailed}).
		Where("attempts < ?", model.WebhookMaxAttempts).
		Order("created_at ASC").
		Limit(limit).
		Find(&deliveries).Error
	return deliveries, err
}

func (r *webhookRepo) MarkDelivered(ctx context.Context, id int64) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&model.WebhookDelivery{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       model.WebhookStatusDelivered,
			"attempts":     gorm.Expr("attempts + 1"),
			"last_error":   "",
			"delivered_at": &now,
		}).Error
}

func (r *webhookRepo) MarkFailed(ctx context.Context, id int64, errMsg string) error {
	return r.db.WithContext(ctx).
		Model(&model.WebhookDelivery{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     model.WebhookStatusFailed,
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": errMsg,
		}).Error
}
