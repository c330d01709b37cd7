package service

import (
	"context"

	"deltahub/internal/api/dto"
	"deltahub/internal/model"
	"deltahub/internal/repository"
)

// ==================== BloggerService 博主服务 ====================

// BloggerService 博主服务
type BloggerService struct {
	bloggerRepo repository.BloggerRepository
}

// NewBloggerService 创建博主服务
func NewBloggerService(bloggerRepo repository.BloggerRepository) *BloggerService {
	return &BloggerService{bloggerRepo: bloggerRepo}
}

// Register 博主注册（公开入口，无需认证）
func (s *BloggerService) Register(ctx context.Context, req *dto.BloggerCreateReq) (*model.Blogger, error) {
	exists, err := s.bloggerRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	blogger := &model.Blogger{
		Name:  req.Name,
		Email: req.Email,
		Bio:   req.Bio,
	}
	if err := s.bloggerRepo.Create(ctx, blogger); err != nil {
		return nil, err
	}
	return blogger, nil
}

// List 博主列表
func (s *BloggerService) List(ctx context.Context, skip, limit int) ([]model.Blogger, error) {
	return s.bloggerRepo.List(ctx, skip, limit)
}
