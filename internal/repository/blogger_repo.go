package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"deltahub/internal/model"
)

// ==================== 接口定义 ====================

// BloggerRepository 博主仓储接口
type BloggerRepository interface {
	Create(ctx context.Context, blogger *model.Blogger) error
	GetByID(ctx context.Context, id int64) (*model.Blogger, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, offset, limit int) ([]model.Blogger, error)
}

// ==================== 仓储实现 ====================

type bloggerRepo struct {
	db *gorm.DB
}

// NewBloggerRepository 创建博主仓储
func NewBloggerRepository(db *gorm.DB) BloggerRepository {
	return &bloggerRepo{db: db}
}

func (r *bloggerRepo) Create(ctx context.Context, blogger *model.Blogger) error {
	return r.db.WithContext(ctx).Create(blogger).Error
}

func (r *bloggerRepo) GetByID(ctx context.Context, id int64) (*model.Blogger, error) {
	var blogger model.Blogger
	err := r.db.WithContext(ctx).First(&blogger, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blogger, nil
}

func (r *bloggerRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Blogger{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (r *bloggerRepo) List(ctx context.Context, offset, limit int) ([]model.Blogger, error) {
	if limit <= 0 {
		limit = 100
	}
	var bloggers []model.Blogger
	err := r.db.WithContext(ctx).
		Offset(offset).
		Limit(limit).
		Find(&bloggers).Error
	return bloggers, err
}
