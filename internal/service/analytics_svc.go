package service

import (
	"context"

	"deltahub/internal/model"
	"deltahub/internal/repository"
)

// ==================== AnalyticsService 归因分析服务 ====================

// AnalyticsService 归因分析服务
type AnalyticsService struct {
	analyticsRepo repository.AnalyticsRepository
	productRepo   repository.ProductRepository
}

// NewAnalyticsService 创建归因分析服务
func NewAnalyticsService(
	analyticsRepo repository.AnalyticsRepository,
	productRepo repository.ProductRepository,
) *AnalyticsService {
	return &AnalyticsService{
		analyticsRepo: analyticsRepo,
		productRepo:   productRepo,
	}
}

// RecordVisit 记录一次访问
// 公开入口，不校验商品/博主是否存在（悬空行由定时任务回收）
func (s *AnalyticsService) RecordVisit(ctx context.Context, productID, bloggerID int64) error {
	return s.analyticsRepo.IncrementVisit(ctx, productID, bloggerID)
}

// ListForProduct 商品维度的归因明细
// 商品不存在 -> NotFound；存在但不属于当前店铺 -> Forbidden，
// 两种情况必须区分，避免把"没有"和"不是你的"混为一谈
func (s *AnalyticsService) ListForProduct(ctx context.Context, productID int64, current *model.Shop) ([]model.Analytics, error) {
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

	return s.analyticsRepo.ListByProduct(ctx, productID)
}

// ListForShop 店铺维度的归因汇总（覆盖该店所有商品）
func (s *AnalyticsService) ListForShop(ctx context.Context, shopID int64, current *model.Shop) ([]model.Analytics, error) {
	if current == nil || current.ID != shopID {
		return nil, ErrForbidden
	}
	return s.analyticsRepo.ListByShop(ctx, shopID)
}
