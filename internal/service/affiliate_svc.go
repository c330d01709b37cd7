package service

import (
	"context"

	"deltahub/internal/model"
	"deltahub/internal/repository"
	"deltahub/pkg/utils"
)

// 短码随机字节数，编码后 11 个字符
const linkCodeBytes = 8

// ==================== AffiliateService 推广链接服务 ====================

// AffiliateService 推广链接服务
type AffiliateService struct {
	linkRepo    repository.AffiliateLinkRepository
	productRepo repository.ProductRepository
	bloggerRepo repository.BloggerRepository
}

// NewAffiliateService 创建推广链接服务
func NewAffiliateService(
	linkRepo repository.AffiliateLinkRepository,
	productRepo repository.ProductRepository,
	bloggerRepo repository.BloggerRepository,
) *AffiliateService {
	return &AffiliateService{
		linkRepo:    linkRepo,
		productRepo: productRepo,
		bloggerRepo: bloggerRepo,
	}
}

// CreateOrGet 幂等创建推广链接
// 商品必须存在且属于当前店铺（不属于也报"不存在"，不泄露他店商品）；
// 配对已有链接时原样返回。短码碰撞极罕见，按"重试直到唯一"处理
func (s *AffiliateService) CreateOrGet(ctx context.Context, productID, bloggerID int64, current *model.Shop) (*model.AffiliateLink, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.ShopID != current.ID {
		return nil, ErrProductNotFound
	}

	blogger, err := s.bloggerRepo.GetByID(ctx, bloggerID)
	if err != nil {
		return nil, err
	}
	if blogger == nil {
		return nil, ErrBloggerNotFound
	}

	existing, err := s.linkRepo.GetByPair(ctx, productID, bloggerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	for {
		code, err := utils.GenerateLinkCode(linkCodeBytes)
		if err != nil {
			return nil, err
		}

		exists, err := s.linkRepo.CodeExists(ctx, code)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		link := &model.AffiliateLink{
			Code:      code,
			ProductID: productID,
			BloggerID: bloggerID,
		}
		if err := s.linkRepo.Create(ctx, link); err != nil {
			// 插入失败可能是并发请求先建了同配对的链接，回查后返回已有记录
			if winner, qerr := s.linkRepo.GetByPair(ctx, productID, bloggerID); qerr == nil && winner != nil {
				return winner, nil
			}
			// 也可能是短码在查重与插入之间被占用，换个码重来
			if taken, qerr := s.linkRepo.CodeExists(ctx, code); qerr == nil && taken {
				continue
			}
			return nil, err
		}
		return link, nil
	}
}

// GetByCode 公开按短码解析，附带商品与博主详情
func (s *AffiliateService) GetByCode(ctx context.Context, code string) (*model.AffiliateLink, error) {
	link, err := s.linkRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, ErrLinkNotFound
	}
	return link, nil
}
