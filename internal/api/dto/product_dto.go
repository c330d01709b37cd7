package dto

import "github.com/lib/pq"

// ==================== 商品相关 DTO ====================

// ProductCreateReq 商品创建请求
type ProductCreateReq struct {
	ShopID      int64          `json:"shop_id" binding:"required"`
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	Price       float64        `json:"price" binding:"gte=0"`
	ImageURL    string         `json:"image_url"`
	Tags        pq.StringArray `json:"tags"`
}
