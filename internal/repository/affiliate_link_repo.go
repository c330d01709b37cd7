package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"deltahub/internal/model"
)

// ==================== 接口定义 ====================

// AffiliateLinkRepository 推广链接仓储接口
type AffiliateLinkRepository interface {
	Create(ctx context.Context, link *model.AffiliateLink) error
	GetByPair(ctx context.Context, productID, bloggerID int64) (*model.AffiliateLink, error)
	GetByCode(ctx context.Context, code string) (*model.AffiliateLink, error)
	CodeExists(ctx context.Context, code string) (bool, error)
}

// ==================== 仓储实现 ====================

type affiliateLinkRepo struct {
	db *gorm.DB
}

// NewAffiliateLinkRepository 创建推广链接仓储
func NewAffiliateLinkRepository(db *gorm.DB) AffiliateLinkRepository {
	return &affiliateLinkRepo{db: db}
}

func (r *affiliateLinkRepo) Create(ctx context.Context, link *model.AffiliateLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *affiliateLinkRepo) GetByPair(ctx context.Context, productID, bloggerID int64) (*model.AffiliateLink, error) {
	var link model.AffiliateLink
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND blogger_id = ?", productID, bloggerID).
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// GetByCode 按短码查询，附带商品与博主详情（公开展示用）
func (r *affiliateLinkRepo) GetByCode(ctx context.Context, code string) (*model.AffiliateLink, error) {
	var link model.AffiliateLink
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Blogger").
		Where("code = ?", code).
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *affiliateLinkRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.AffiliateLink{}).
		Where("code = ?", code).
		Count(&count).Error
	return count > 0, err
}
