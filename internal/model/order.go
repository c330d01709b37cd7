package model

// ==================== 订单状态常量 ====================

// OrderStatus 订单状态
// 状态机：waiting_to_process -> processed | cancelled，两个终态不可再迁移
const (
	OrderStatusWaiting   = "waiting_to_process" // 待处理（初始态）
	OrderStatusProcessed = "processed"          // 已处理（终态）
	OrderStatusCancelled = "cancelled"          // 已取消（终态）
)

// ValidOrderStatus 是否为合法状态值
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusWaiting, OrderStatusProcessed, OrderStatusCancelled:
		return true
	}
	return false
}

// ==================== Order 订单 ====================

// Order 订单
// 直接引用 (product_id, blogger_id) 归因对，不经过推广码
// price_per_item 是下单时的快照，结算时不回读商品价格
type Order struct {
	BaseModel
	ProductID int64    `gorm:"index;not null" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"-"`
	BloggerID int64    `gorm:"index;not null" json:"blogger_id"`
	Blogger   *Blogger `gorm:"foreignKey:BloggerID" json:"-"`

	Quantity     int     `gorm:"not null" json:"quantity"` // 必须 > 0
	PricePerItem float64 `gorm:"not null" json:"price_per_item"`
	ClientPhone  string  `gorm:"size:32" json:"client_phone"`

	Status string `gorm:"size:32;index;default:'waiting_to_process'" json:"status"`
}

func (Order) TableName() string {
	return "orders"
}

// IsFinal 是否处于终态
func (o *Order) IsFinal() bool {
	return o.Status == OrderStatusProcessed || o.Status == OrderStatusCancelled
}

// Total 订单总金额
func (o *Order) Total() float64 {
	return float64(o.Quantity) * o.PricePerItem
}
