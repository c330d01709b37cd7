package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"gorm.io/datatypes"

	"deltahub/internal/model"
	"deltahub/internal/repository"
)

// 单次重试批量上限
const webhookRetryBatch = 50

// ==================== WebhookService 回调投递服务 ====================

// WebhookService 店铺回调投递服务
// 每次投递都落一条记录，失败的由定时任务捞起来重投，
// 最多 WebhookMaxAttempts 次后放弃
type WebhookService struct {
	webhookRepo repository.WebhookRepository
	client      *resty.Client
}

// NewWebhookService 创建回调投递服务
func NewWebhookService(webhookRepo repository.WebhookRepository, timeout time.Duration) *WebhookService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "DeltaHub-Webhook/1.0")

	return &WebhookService{
		webhookRepo: webhookRepo,
		client:      client,
	}
}

// orderProcessedPayload 订单处理完成事件体
type orderProcessedPayload struct {
	Event       string  `json:"event"`
	OrderID     int64   `json:"order_id"`
	ProductID   int64   `json:"product_id"`
	BloggerID   int64   `json:"blogger_id"`
	Quantity    int     `json:"quantity"`
	Total       float64 `json:"total"`
	ProcessedAt string  `json:"processed_at"`
}

// NotifyOrderProcessed 订单迁入 processed 后通知店铺
// 店铺未配置回调地址时静默跳过。首投失败不返回错误，交给重试任务
func (s *WebhookService) NotifyOrderProcessed(ctx context.Context, shop *model.Shop, order *model.Order) error {
	if shop == nil || shop.WebhookURL == "" {
		return nil
	}

	payload, err := json.Marshal(orderProcessedPayload{
		Event:       "order.processed",
		OrderID:     order.ID,
		ProductID:   order.ProductID,
		BloggerID:   order.BloggerID,
		Quantity:    order.Quantity,
		Total:       order.Total(),
		ProcessedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	delivery := &model.WebhookDelivery{
		ShopID:    shop.ID,
		OrderID:   order.ID,
		Event:     "order.processed",
		Payload:   datatypes.JSON(payload),
		TargetURL: shop.WebhookURL,
		Status:    model.WebhookStatusPending,
	}
	if err := s.webhookRepo.Create(ctx, delivery); err != nil {
		return err
	}

	if err := s.deliver(ctx, delivery); err != nil {
		log.Printf("[Webhook] 首次投递失败 delivery=%d url=%s: %v", delivery.ID, delivery.TargetURL, err)
	}
	return nil
}

// deliver 执行一次 HTTP 投递并更新记录状态
func (s *WebhookService) deliver(ctx context.Context, delivery *model.WebhookDelivery) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody([]byte(delivery.Payload)).
		Post(delivery.TargetURL)
	if err != nil {
		if merr := s.webhookRepo.MarkFailed(ctx, delivery.ID, err.Error()); merr != nil {
			return merr
		}
		return err
	}

	if resp.StatusCode() >= 200 && resp.StatusCode() < 300 {
		return s.webhookRepo.MarkDelivered(ctx, delivery.ID)
	}

	errMsg := fmt.Sprintf("对端返回 %d", resp.StatusCode())
	if merr := s.webhookRepo.MarkFailed(ctx, delivery.ID, errMsg); merr != nil {
		return merr
	}
	return fmt.Errorf("投递失败: %s", errMsg)
}

// RetryPending 重投未送达的回调，返回本轮成功数
func (s *WebhookService) RetryPending(ctx context.Context) (int, error) {
	deliveries, err := s.webhookRepo.ListRetryable(ctx, webhookRetryBatch)
	if err != nil {
		return 0, err
	}

	succeeded := 0
	for i := range deliveries {
		if err := s.deliver(ctx, &deliveries[i]); err != nil {
			log.Printf("[Webhook] 重投失败 delivery=%d attempts=%d: %v",
				deliveries[i].ID, deliveries[i].Attempts+1, err)
			continue
		}
		succeeded++
	}
	return succeeded, nil
}
