package service

import (
	"context"
	"log"

	"gorm.io/gorm"

	"deltahub/internal/api/dto"
	"deltahub/internal/model"
	"deltahub/internal/repository"
)

// ==================== OrderService 订单服务 ====================

// OrderService 订单服务
// 状态机：waiting_to_process -> processed | cancelled
// 迁入 processed 时在同一事务内完成结算，保证计数恰好一次
type OrderService struct {
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	analyticsRepo repository.AnalyticsRepository
	webhookSvc    *WebhookService
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	analyticsRepo repository.AnalyticsRepository,
	webhookSvc *WebhookService,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		analyticsRepo: analyticsRepo,
		webhookSvc:    webhookSvc,
	}
}

// Create 创建订单（公开入口，代表终端买家下单，不做归属校验）
// price_per_item 在此刻定格为快照
func (s *OrderService) Create(ctx context.Context, req *dto.OrderCreateReq) (*model.Order, error) {
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if req.PricePerItem < 0 {
		return nil, ErrInvalidPrice
	}

	order := &model.Order{
		ProductID:    req.ProductID,
		BloggerID:    req.BloggerID,
		Quantity:     req.Quantity,
		PricePerItem: req.PricePerItem,
		ClientPhone:  req.ClientPhone,
		Status:       model.OrderStatusWaiting,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Transition 订单状态迁移
// 鉴权：当前店铺必须拥有订单关联的商品。
// 状态写入带 status = waiting 守卫，且与结算 upsert 同事务提交：
// 重复或并发的"标记已处理"最多只有一个能生效，计数不会翻倍
func (s *OrderService) Transition(ctx context.Context, orderID int64, newStatus string, current *model.Shop) (*model.Order, error) {
	if !model.ValidOrderStatus(newStatus) || newStatus == model.OrderStatusWaiting {
		return nil, ErrInvalidStatus
	}

	order, err := s.orderRepo.GetWithProduct(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.Product == nil {
		return nil, ErrOrderNotFound
	}
	if order.Product.ShopID != current.ID {
		return nil, ErrForbidden
	}

	err = s.orderRepo.Transaction(ctx, func(tx *gorm.DB) error {
		rows, err := s.orderRepo.WithTx(tx).UpdateStatusIfWaiting(ctx, orderID, newStatus)
		if err != nil {
			return err
		}
		if rows == 0 {
			// 订单存在但没改到行，说明已处于终态
			return ErrOrderFinalized
		}

		if newStatus == model.OrderStatusProcessed {
			return s.analyticsRepo.WithTx(tx).Settle(ctx, order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = newStatus

	// 结算已提交，回调投递异步进行，失败交给重试任务
	if newStatus == model.OrderStatusProcessed && s.webhookSvc != nil {
		go func() {
			if err := s.webhookSvc.NotifyOrderProcessed(context.Background(), current, order); err != nil {
				log.Printf("[Order] 回调投递失败 order=%d: %v", order.ID, err)
			}
		}()
	}

	return order, nil
}

// ListByProduct 商品维度的订单列表（店铺视角）
func (s *OrderService) ListByProduct(ctx context.Context, productID int64, current *model.Shop) ([]model.Order, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if product.ShopID != current.ID {
		return nil, ErrForbidden
	}
	return s.orderRepo.ListByProduct(ctx, productID)
}
