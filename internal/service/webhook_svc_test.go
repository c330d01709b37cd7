package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"deltahub/internal/model"
	"deltahub/internal/repository"
)

// ==================== 测试辅助 ====================

func setupWebhookTestEnv(t *testing.T) (repository.WebhookRepository, *WebhookService) {
	db := setupOrderTestDB(t)
	if err := db.AutoMigrate(&model.WebhookDelivery{}); err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	repo := repository.NewWebhookRepository(db)
	return repo, NewWebhookService(repo, 2*time.Second)
}

func testOrder() *model.Order {
	o := &model.Order{
		ProductID:    1,
		BloggerID:    2,
		Quantity:     3,
		PricePerItem: 20,
		Status:       model.OrderStatusProcessed,
	}
	o.ID = 42
	return o
}

// ==================== 单元测试 ====================

func TestNotifyOrderProcessed(t *testing.T) {
	var received atomic.Int64
	var lastBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received.Add(1)
		json.NewDecoder(r.Body).Decode(&lastBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	repo, svc := setupWebhookTestEnv(t)
	shop := &model.Shop{Name: "测试店铺", Email: "shop@test.com", WebhookURL: server.URL}
	shop.ID = 7

	if err := svc.NotifyOrderProcessed(context.Background(), shop, testOrder()); err != nil {
		t.Fatalf("投递失败: %v", err)
	}

	if received.Load() != 1 {
		t.Fatalf("期望收到 1 次回调, 实际 %d", received.Load())
	}
	if lastBody["event"] != "order.processed" {
		t.Errorf("事件类型错误: %v", lastBody["event"])
	}
	if lastBody["total"] != 60.0 {
		t.Errorf("金额错误: %v", lastBody["total"])
	}

	// 送达后不再出现在待重试队列里
	pending, err := repo.ListRetryable(context.Background(), 10)
	if err != nil {
		t.Fatalf("查询待重试失败: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("已送达的回调不应待重试: %d 条", len(pending))
	}
}

func TestNotifySkipsShopWithoutURL(t *testing.T) {
	repo, svc := setupWebhookTestEnv(t)
	shop := &model.Shop{Name: "无回调店", Email: "shop@test.com"}

	if err := svc.NotifyOrderProcessed(context.Background(), shop, testOrder()); err != nil {
		t.Fatalf("未配置回调地址应静默跳过: %v", err)
	}

	pending, _ := repo.ListRetryable(context.Background(), 10)
	if len(pending) != 0 {
		t.Errorf("不应产生投递记录: %d 条", len(pending))
	}
}

func TestRetryPending(t *testing.T) {
	// 对端先持续 500，修好后重投成功
	var healthy atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if healthy.Load() {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	repo, svc := setupWebhookTestEnv(t)
	shop := &model.Shop{Name: "测试店铺", Email: "shop@test.com", WebhookURL: server.URL}
	shop.ID = 7

	if err := svc.NotifyOrderProcessed(context.Background(), shop, testOrder()); err != nil {
		t.Fatalf("投递失败: %v", err)
	}

	pending, _ := repo.ListRetryable(context.Background(), 10)
	if len(pending) != 1 {
		t.Fatalf("首投失败后应有 1 条待重试, 实际 %d", len(pending))
	}
	if pending[0].Status != model.WebhookStatusFailed || pending[0].Attempts != 1 {
		t.Errorf("失败记录状态错误: %+v", pending[0])
	}

	healthy.Store(true)
	succeeded, err := svc.RetryPending(context.Background())
	if err != nil {
		t.Fatalf("重投失败: %v", err)
	}
	if succeeded != 1 {
		t.Errorf("期望补投成功 1 条, 实际 %d", succeeded)
	}

	pending, _ = repo.ListRetryable(context.Background(), 10)
	if len(pending) != 0 {
		t.Errorf("送达后队列应清空, 实际 %d 条", len(pending))
	}
}
