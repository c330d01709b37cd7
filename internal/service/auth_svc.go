package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"deltahub/internal/api/dto"
	"deltahub/internal/middleware"
	"deltahub/internal/repository"
)

// ==================== AuthService 认证服务 ====================

// AuthService 认证服务
// JWTManager 在进程启动时创建并注入，密钥不走全局变量
type AuthService struct {
	shopRepo repository.ShopRepository
	jwt      *middleware.JWTManager
}

// NewAuthService 创建认证服务
func NewAuthService(shopRepo repository.ShopRepository, jwt *middleware.JWTManager) *AuthService {
	return &AuthService{shopRepo: shopRepo, jwt: jwt}
}

// Login 邮箱+密码换取 Bearer Token
// 店铺不存在和密码错误返回同一个错误，不暴露邮箱是否注册
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.TokenResp, error) {
	shop, err := s.shopRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(shop.HashedPassword), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(shop.ID, shop.Email)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResp{
		AccessToken: token,
		TokenType:   "bearer",
		ShopID:      shop.ID,
		Email:       shop.Email,
		Name:        shop.Name,
	}, nil
}
