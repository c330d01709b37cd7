package model

import (
	"time"

	"gorm.io/datatypes"
)

// ==================== 回调投递状态常量 ====================

const (
	WebhookStatusPending   = "pending"   // 待投递
	WebhookStatusDelivered = "delivered" // 已送达
	WebhookStatusFailed    = "failed"    // 投递失败（等待重试）
)

// 投递放弃前的最大尝试次数
const WebhookMaxAttempts = 5

// WebhookDelivery 回调投递记录
// 订单进入 processed 后写入一条，由通知服务异步投递
type WebhookDelivery struct {
	BaseModel
	ShopID  int64  `gorm:"index;not null" json:"shop_id"`
	OrderID int64  `gorm:"index;not null" json:"order_id"`
	Event   string `gorm:"size:64;not null" json:"event"`

	// 事件原始载荷（PostgreSQL JSONB）
	Payload datatypes.JSON `gorm:"type:jsonb" json:"payload"`

	TargetURL   string     `gorm:"size:255;not null" json:"target_url"`
	Status      string     `gorm:"size:16;index;default:'pending'" json:"status"`
	Attempts    int        `gorm:"default:0" json:"attempts"`
	LastError   string     `gorm:"type:text" json:"last_error,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
}

func (WebhookDelivery) TableName() string {
	return "webhook_deliveries"
}
