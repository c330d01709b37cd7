package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"deltahub/internal/model"
	"deltahub/internal/repository"
)

// ==================== 测试辅助 ====================

func setupAuthTestDB(t *testing.T) *gorm.DB {
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

	if err := db.AutoMigrate(&model.Shop{}); err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	return db
}

// ==================== 单元测试 ====================

func TestTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager(nil)

	token, err := manager.GenerateToken(7, "shop@test.com")
	if err != nil {
		t.Fatalf("签发失败: %v", err)
	}

	claims, err := manager.ParseToken(token)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if claims.ShopID != 7 || claims.Subject != "shop@test.com" {
		t.Errorf("Claims 错误: %+v", claims)
	}
}

func TestTokenWrongKeyRejected(t *testing.T) {
	signer := NewJWTManager(&JWTConfig{SecretKey: "key-a", TokenTTL: time.Minute, Issuer: "t"})
	verifier := NewJWTManager(&JWTConfig{SecretKey: "key-b", TokenTTL: time.Minute, Issuer: "t"})

	token, err := signer.GenerateToken(1, "shop@test.com")
	if err != nil {
		t.Fatalf("签发失败: %v", err)
	}

	if _, err := verifier.ParseToken(token); err == nil {
		t.Error("不同密钥签发的 Token 必须被拒绝")
	}
}

func TestTokenExpiryRejected(t *testing.T) {
	manager := NewJWTManager(&JWTConfig{SecretKey: "k", TokenTTL: -time.Minute, Issuer: "t"})

	token, err := manager.GenerateToken(1, "shop@test.com")
	if err != nil {
		t.Fatalf("签发失败: %v", err)
	}

	if _, err := manager.ParseToken(token); err == nil {
		t.Error("过期 Token 必须被拒绝")
	}
}

func TestShopAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupAuthTestDB(t)

	shop := &model.Shop{Name: "测试店铺", Email: "shop@test.com", HashedPassword: "x"}
	if err := db.Create(shop).Error; err != nil {
		t.Fatalf("创建店铺失败: %v", err)
	}

	manager := NewJWTManager(nil)
	shopRepo := repository.NewShopRepository(db)

	r := gin.New()
	r.GET("/protected", ShopAuth(manager, shopRepo), func(c *gin.Context) {
		current := CurrentShop(c)
		c.JSON(http.StatusOK, gin.H{"shop_id": current.ID})
	})

	// 无认证头
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("无认证头期望 401, 实际 %d", w.Code)
	}

	// 格式错误
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("非 Bearer 期望 401, 实际 %d", w.Code)
	}

	// 正常通过并注入店铺
	token, _ := manager.GenerateToken(shop.ID, shop.Email)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("合法 Token 期望 200, 实际 %d: %s", w.Code, w.Body.String())
	}

	// Token 对应的店铺已不存在
	ghost, _ := manager.GenerateToken(999, "ghost@test.com")
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+ghost)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("店铺不存在期望 401, 实际 %d", w.Code)
	}
}
