package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"deltahub/internal/model"
	"deltahub/internal/repository"
)

// ==================== JWT 配置 ====================

// JWTConfig JWT 配置
type JWTConfig struct {
	SecretKey string        // 签名密钥
	TokenTTL  time.Duration // Token 有效期
	Issuer    string        // 签发者
}

// DefaultJWTConfig 默认配置（生产环境必须替换密钥）
func DefaultJWTConfig() *JWTConfig {
	return &JWTConfig{
		SecretKey: "deltahub-secret-key-change-in-production",
		TokenTTL:  30 * time.Minute,
		Issuer:    "deltahub",
	}
}

// ==================== Claims 定义 ====================

// ShopClaims 店铺声明
// sub 放邮箱，shop_id 放店铺主键，与签发时的店铺一一对应
type ShopClaims struct {
	ShopID int64 `json:"shop_id"`
	jwt.RegisteredClaims
}

// ==================== JWTManager ====================

// JWTManager 持有签名密钥，进程启动时创建一次并显式传入
// 签发与校验都走同一实例，不依赖任何包级全局状态
type JWTManager struct {
	cfg *JWTConfig
}

// NewJWTManager 创建 JWT 管理器
func NewJWTManager(cfg *JWTConfig) *JWTManager {
	if cfg == nil {
		cfg = DefaultJWTConfig()
	}
	return &JWTManager{cfg: cfg}
}

// TokenTTL Token 有效期
func (m *JWTManager) TokenTTL() time.Duration {
	return m.cfg.TokenTTL
}

// GenerateToken 为店铺签发 Access Token
func (m *JWTManager) GenerateToken(shopID int64, email string) (string, error) {
	now := time.Now()
	claims := &ShopClaims{
		ShopID: shopID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.cfg.Issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.cfg.SecretKey))
}

// ParseToken 解析并校验 Token
// 任何失败（签名、过期、算法不符）对调用方都是同一个结果：无效
func (m *JWTManager) ParseToken(tokenString string) (*ShopClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ShopClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(m.cfg.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*ShopClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// ==================== Gin 中间件 ====================

// Context Keys
const (
	ContextKeyShopID = "shop_id"
	ContextKeyShop   = "shop"
)

// ShopAuth 店铺认证中间件
// 解析 Bearer Token 并加载店铺记录；店铺已不存在同样视为未认证
func ShopAuth(manager *JWTManager, shopRepo repository.ShopRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "未提供认证信息"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "认证格式错误，应为 Bearer {token}"})
			c.Abort()
			return
		}

		claims, err := manager.ParseToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token 无效或已过期"})
			c.Abort()
			return
		}

		shop, err := shopRepo.GetByEmail(c.Request.Context(), claims.Subject)
		if err != nil || shop == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token 无效或已过期"})
			c.Abort()
			return
		}

		c.Set(ContextKeyShopID, shop.ID)
		c.Set(ContextKeyShop, shop)

		c.Next()
	}
}

// CurrentShop 从 Context 取当前认证店铺
func CurrentShop(c *gin.Context) *model.Shop {
	if v, exists := c.Get(ContextKeyShop); exists {
		if shop, ok := v.(*model.Shop); ok {
			return shop
		}
	}
	return nil
}
