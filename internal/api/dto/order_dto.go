package dto

// ==================== 订单相关 DTO ====================

// OrderCreateReq 订单创建请求
type OrderCreateReq struct {
	ProductID    int64   `json:"product_id" binding:"required"`
	BloggerID    int64   `json:"blogger_id" binding:"required"`
	Quantity     int     `json:"quantity" binding:"required,gt=0"`
	PricePerItem float64 `json:"price_per_item" binding:"gte=0"`
	ClientPhone  string  `json:"client_phone" binding:"required"`
}

// OrderStatusReq 订单状态迁移请求
type OrderStatusReq struct {
	Status string `json:"status" binding:"required"`
}
