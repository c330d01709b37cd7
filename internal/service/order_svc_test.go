package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"deltahub/internal/api/dto"
	"deltahub/internal/model"
	"deltahub/internal/repository"
)

// ==================== 测试辅助 ====================

func setupOrderTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	// :memory: 每个连接各是一个独立库，必须锁定单连接
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取底层连接失败: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.Shop{}, &model.Blogger{}, &model.Product{},
		&model.Order{}, &model.Analytics{},
	); err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	return db
}

type orderTestEnv struct {
	svc           *OrderService
	analyticsRepo repository.AnalyticsRepository
	shop          *model.Shop
	product       *model.Product
	blogger       *model.Blogger
}

func newOrderTestEnv(t *testing.T, db *gorm.DB) *orderTestEnv {
	shop := &model.Shop{Name: "测试店铺", Email: "shop@test.com", HashedPassword: "x"}
	if err := db.Create(shop).Error; err != nil {
		t.Fatalf("创建店铺失败: %v", err)
	}
	product := &model.Product{ShopID: shop.ID, Name: "测试商品", Price: 20}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}
	blogger := &model.Blogger{Name: "测试博主", Email: "blogger@test.com"}
	if err := db.Create(blogger).Error; err != nil {
		t.Fatalf("创建博主失败: %v", err)
	}

	analyticsRepo := repository.NewAnalyticsRepository(db)
	svc := NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		analyticsRepo,
		nil, // 不测回调投递
	)
	return &orderTestEnv{
		svc:           svc,
		analyticsRepo: analyticsRepo,
		shop:          shop,
		product:       product,
		blogger:       blogger,
	}
}

func (e *orderTestEnv) createOrder(t *testing.T, qty int, price float64) *model.Order {
	order, err := e.svc.Create(context.Background(), &dto.OrderCreateReq{
		ProductID:    e.product.ID,
		BloggerID:    e.blogger.ID,
		Quantity:     qty,
		PricePerItem: price,
		ClientPhone:  "13800000000",
	})
	if err != nil {
		t.Fatalf("创建订单失败: %v", err)
	}
	return order
}

// ==================== 单元测试 ====================

func TestOrderCreate(t *testing.T) {
	db := setupOrderTestDB(t)
	env := newOrderTestEnv(t, db)

	order := env.createOrder(t, 3, 20)
	if order.Status != model.OrderStatusWaiting {
		t.Errorf("新订单状态应为待处理, 实际 %s", order.Status)
	}

	// 非法数量与单价
	_, err := env.svc.Create(context.Background(), &dto.OrderCreateReq{
		ProductID: env.product.ID, BloggerID: env.blogger.ID,
		Quantity: 0, PricePerItem: 20, ClientPhone: "13800000000",
	})
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("期望 ErrInvalidQuantity, 实际 %v", err)
	}

	_, err = env.svc.Create(context.Background(), &dto.OrderCreateReq{
		ProductID: env.product.ID, BloggerID: env.blogger.ID,
		Quantity: 1, PricePerItem: -1, ClientPhone: "13800000000",
	})
	if !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("期望 ErrInvalidPrice, 实际 %v", err)
	}
}

func TestOrderTransitionSettlesOnce(t *testing.T) {
	db := setupOrderTestDB(t)
	env := newOrderTestEnv(t, db)
	ctx := context.Background()

	order := env.createOrder(t, 3, 20)

	updated, err := env.svc.Transition(ctx, order.ID, model.OrderStatusProcessed, env.shop)
	if err != nil {
		t.Fatalf("状态迁移失败: %v", err)
	}
	if updated.Status != model.OrderStatusProcessed {
		t.Errorf("期望 processed, 实际 %s", updated.Status)
	}

	row, err := env.analyticsRepo.GetByPair(ctx, env.product.ID, env.blogger.ID)
	if err != nil || row == nil {
		t.Fatalf("查询归因行失败: %v", err)
	}
	if row.OrderCount != 1 || row.ItemsSold != 3 || row.MoneyEarned != 60 {
		t.Errorf("结算结果错误: %+v", row)
	}

	// 重复标记已处理必须被拒绝，计数不变
	_, err = env.svc.Transition(ctx, order.ID, model.OrderStatusProcessed, env.shop)
	if !errors.Is(err, ErrOrderFinalized) {
		t.Fatalf("期望 ErrOrderFinalized, 实际 %v", err)
	}

	row, _ = env.analyticsRepo.GetByPair(ctx, env.product.ID, env.blogger.ID)
	if row.OrderCount != 1 || row.ItemsSold != 3 || row.MoneyEarned != 60 {
		t.Errorf("重复迁移不应改动计数: %+v", row)
	}
}

func TestOrderTransitionConcurrentDuplicate(t *testing.T) {
	db := setupOrderTestDB(t)
	env := newOrderTestEnv(t, db)
	ctx := context.Background()

	order := env.createOrder(t, 2, 10)

	// 两个并发的"标记已处理"：状态守卫保证恰好一个改到行，
	// 另一个拿到终态错误，结算不会翻倍
	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.svc.Transition(ctx, order.ID, model.OrderStatusProcessed, env.shop)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, finalized int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrOrderFinalized):
			finalized++
		default:
			t.Fatalf("意外错误: %v", err)
		}
	}
	if succeeded != 1 || finalized != 1 {
		t.Fatalf("期望恰好 1 成功 1 被拒, 实际成功 %d 被拒 %d", succeeded, finalized)
	}

	row, err := env.analyticsRepo.GetByPair(ctx, env.product.ID, env.blogger.ID)
	if err != nil || row == nil {
		t.Fatalf("查询归因行失败: %v", err)
	}
	if row.OrderCount != 1 || row.ItemsSold != 2 || row.MoneyEarned != 20 {
		t.Errorf("并发重复处理不得重复结算: %+v", row)
	}
}

func TestOrderCancelIsTerminal(t *testing.T) {
	db := setupOrderTestDB(t)
	env := newOrderTestEnv(t, db)
	ctx := context.Background()

	order := env.createOrder(t, 1, 10)

	if _, err := env.svc.Transition(ctx, order.ID, model.OrderStatusCancelled, env.shop); err != nil {
		t.Fatalf("取消失败: %v", err)
	}

	// 取消不结算
	row, err := env.analyticsRepo.GetByPair(ctx, env.product.ID, env.blogger.ID)
	if err != nil {
		t.Fatalf("查询归因行失败: %v", err)
	}
	if row != nil {
		t.Errorf("取消的订单不应产生归因行: %+v", row)
	}

	// 已取消的订单不能再处理
	_, err = env.svc.Transition(ctx, order.ID, model.OrderStatusProcessed, env.shop)
	if !errors.Is(err, ErrOrderFinalized) {
		t.Errorf("期望 ErrOrderFinalized, 实际 %v", err)
	}
}

func TestOrderTransitionAccessControl(t *testing.T) {
	db := setupOrderTestDB(t)
	env := newOrderTestEnv(t, db)
	ctx := context.Background()

	order := env.createOrder(t, 1, 10)

	// 别家店不能动这笔订单
	other := &model.Shop{Name: "别家店", Email: "other@test.com", HashedPassword: "x"}
	db.Create(other)

	_, err := env.svc.Transition(ctx, order.ID, model.OrderStatusProcessed, other)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("期望 ErrForbidden, 实际 %v", err)
	}

	// 不存在的订单
	_, err = env.svc.Transition(ctx, 9999, model.OrderStatusProcessed, env.shop)
	if !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("期望 ErrOrderNotFound, 实际 %v", err)
	}

	// 目标状态非法（含退回待处理）
	_, err = env.svc.Transition(ctx, order.ID, "shipped", env.shop)
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("期望 ErrInvalidStatus, 实际 %v", err)
	}
	_, err = env.svc.Transition(ctx, order.ID, model.OrderStatusWaiting, env.shop)
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("期望 ErrInvalidStatus, 实际 %v", err)
	}
}

func TestOrderListByProduct(t *testing.T) {
	db := setupOrderTestDB(t)
	env := newOrderTestEnv(t, db)
	ctx := context.Background()

	env.createOrder(t, 1, 10)
	env.createOrder(t, 2, 10)

	orders, err := env.svc.ListByProduct(ctx, env.product.ID, env.shop)
	if err != nil {
		t.Fatalf("查询订单列表失败: %v", err)
	}
	if len(orders) != 2 {
		t.Errorf("期望 2 笔订单, 实际 %d", len(orders))
	}

	other := &model.Shop{Name: "别家店", Email: "other2@test.com", HashedPassword: "x"}
	db.Create(other)
	if _, err := env.svc.ListByProduct(ctx, env.product.ID, other); !errors.Is(err, ErrForbidden) {
		t.Errorf("期望 ErrForbidden, 实际 %v", err)
	}
}
