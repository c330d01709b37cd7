package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"deltahub/internal/model"
)

// ==================== 接口定义 ====================

// AnalyticsRepository 归因聚合仓储接口
// 计数器更新一律走原子 upsert（insert-or-increment），
// 禁止读-改-写：并发访问同一配对时会丢更新
type AnalyticsRepository interface {
	IncrementVisit(ctx context.Context, productID, bloggerID int64) error
	Settle(ctx context.Context, order *model.Order) error
	GetByPair(ctx context.Context, productID, bloggerID int64) (*model.Analytics, error)
	ListByProduct(ctx context.Context, productID int64) ([]model.Analytics, error)
	ListByShop(ctx context.Context, shopID int64) ([]model.Analytics, error)
	DeleteOrphans(ctx context.Context) (int64, error)

	// 事务
	WithTx(tx *gorm.DB) AnalyticsRepository
}

// ==================== 仓储实现 ====================

type analyticsRepo struct {
	db *gorm.DB
}

// NewAnalyticsRepository 创建归因聚合仓储
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepo{db: db}
}

// IncrementVisit 访问计数 +1
// INSERT ... ON CONFLICT (product_id, blogger_id) DO UPDATE，
// 依赖 idx_analytics_pair 唯一索引，整条语句在存储层原子执行
func (r *analyticsRepo) IncrementVisit(ctx context.Context, productID, bloggerID int64) error {
	row := model.Analytics{
		ProductID:  productID,
		BloggerID:  bloggerID,
		VisitCount: 1,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}, {Name: "blogger_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"visit_count": gorm.Expr("analytics.visit_count + 1"),
			"updated_at":  time.Now(),
		}),
	}).Create(&row).Error
}

// Settle 把一笔已处理订单折入配对计数器
// 只允许在订单状态迁移的同一事务内调用（经 WithTx），
// 保证状态写入与计数更新作为一个单元提交
func (r *analyticsRepo) Settle(ctx context.Context, order *model.Order) error {
	row := model.Analytics{
		ProductID:   order.ProductID,
		BloggerID:   order.BloggerID,
		OrderCount:  1,
		ItemsSold:   int64(order.Quantity),
		MoneyEarned: order.Total(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}, {Name: "blogger_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"order_count":  gorm.Expr("analytics.order_count + 1"),
			"items_sold":   gorm.Expr("analytics.items_sold + ?", int64(order.Quantity)),
			"money_earned": gorm.Expr("analytics.money_earned + ?", order.Total()),
			"updated_at":   time.Now(),
		}),
	}).Create(&row).Error
}

func (r *analyticsRepo) GetByPair(ctx context.Context, productID, bloggerID int64) (*model.Analytics, error) {
	var row model.Analytics
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND blogger_id = ?", productID, bloggerID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *analyticsRepo) ListByProduct(ctx context.Context, productID int64) ([]model.Analytics, error) {
	var rows []model.Analytics
	err := r.db.WithContext(ctx).
		Preload("Blogger").
		Where("product_id = ?", productID).
		Find(&rows).Error
	return rows, err
}

func (r *analyticsRepo) ListByShop(ctx context.Context, shopID int64) ([]model.Analytics, error) {
	var rows []model.Analytics
	err := r.db.WithContext(ctx).
		Preload("Blogger").
		Joins("JOIN products ON products.id = analytics.product_id").
		Where("products.shop_id = ?", shopID).
		Find(&rows).Error
	return rows, err
}

// DeleteOrphans 清理悬空聚合行
// 访问记录是公开入口且不校验实体存在，配对可能指向已不存在的
// 商品或博主，由定时任务兜底回收
func (r *analyticsRepo) DeleteOrphans(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("product_id NOT IN (?)", r.db.Model(&model.Product{}).Select("id")).
		Or("blogger_id NOT IN (?)", r.db.Model(&model.Blogger{}).Select("id")).
		Delete(&model.Analytics{})
	return result.RowsAffected, result.Error
}

func (r *analyticsRepo) WithTx(tx *gorm.DB) AnalyticsRepository {
	return &analyticsRepo{db: tx}
}
