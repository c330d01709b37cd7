package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"deltahub/internal/api/dto"
	"deltahub/internal/model"
	"deltahub/internal/repository"
)

// ==================== ShopService 店铺服务 ====================

// ShopService 店铺服务
type ShopService struct {
	shopRepo repository.ShopRepository
}

// NewShopService 创建店铺服务
func NewShopService(shopRepo repository.ShopRepository) *ShopService {
	return &ShopService{shopRepo: shopRepo}
}

// Register 店铺注册
// 邮箱唯一；密码只存 bcrypt 哈希
func (s *ShopService) Register(ctx context.Context, req *dto.ShopCreateReq) (*model.Shop, error) {
	exists, err := s.shopRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	shop := &model.Shop{
		Name:           req.Name,
		Description:    req.Description,
		Email:          req.Email,
		HashedPassword: string(hashed),
		WebhookURL:     req.WebhookURL,
	}
	if err := s.shopRepo.Create(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// GetShop 查店铺
// 只能查自己：id 与当前认证店铺不符直接 Forbidden，
// 先做权限判断再查库，避免泄露他店是否存在
func (s *ShopService) GetShop(ctx context.Context, id int64, current *model.Shop) (*model.Shop, error) {
	if current == nil || current.ID != id {
		return nil, ErrForbidden
	}
	shop, err := s.shopRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopNotFound
	}
	return shop, nil
}
