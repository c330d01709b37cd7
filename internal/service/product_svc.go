package service

import (
	"context"
	"log"
	"path/filepath"

	"deltahub/internal/api/dto"
	"deltahub/internal/model"
	"deltahub/internal/repository"
)

// ==================== ProductService 商品服务 ====================

// ProductService 商品服务
type ProductService struct {
	productRepo   repository.ProductRepository
	analyticsRepo repository.AnalyticsRepository
	storage       *StorageService
}

// NewProductService 创建商品服务
func NewProductService(
	productRepo repository.ProductRepository,
	analyticsRepo repository.AnalyticsRepository,
	storage *StorageService,
) *ProductService {
	return &ProductService{
		productRepo:   productRepo,
		analyticsRepo: analyticsRepo,
		storage:       storage,
	}
}

// Create 新建商品
// 只能往自己的店铺里建：shop_id 与当前店铺不符直接 Forbidden
func (s *ProductService) Create(ctx context.Context, req *dto.ProductCreateReq, current *model.Shop) (*model.Product, error) {
	if req.ShopID != current.ID {
		return nil, ErrForbidden
	}

	product := &model.Product{
		ShopID:      req.ShopID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Tags:        req.Tags,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// List 当前店铺的商品列表
func (s *ProductService) List(ctx context.Context, current *model.Shop, skip, limit int) ([]model.Product, error) {
	return s.productRepo.ListByShop(ctx, current.ID, skip, limit)
}

// GetPublic 公开查询单个商品
// 带 blogger_id 时顺手记一次访问；访问计数失败不影响读路径，
// 只打日志（公开浏览不应因统计异常而 500）
func (s *ProductService) GetPublic(ctx context.Context, productID, bloggerID int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if bloggerID > 0 {
		if err := s.analyticsRepo.IncrementVisit(ctx, productID, bloggerID); err != nil {
			log.Printf("[Product] 记录访问失败 product=%d blogger=%d: %v", productID, bloggerID, err)
		}
	}

	return product, nil
}

// UploadImage 上传商品图片
// 文件名由存储层用 uuid 派生，落库的是可访问 URL
func (s *ProductService) UploadImage(ctx context.Context, productID int64, current *model.Shop, data []byte, originalName string) (string, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return "", err
	}
	if product == nil {
		return "", ErrProductNotFound
	}
	if product.ShopID != current.ID {
		return "", ErrForbidden
	}

	url, err := s.storage.SaveImage(ctx, data, filepath.Ext(originalName))
	if err != nil {
		return "", err
	}

	if err := s.productRepo.UpdateFields(ctx, productID, map[string]interface{}{"image_url": url}); err != nil {
		return "", err
	}
	return url, nil
}
