package model

import (
	"github.com/lib/pq"
)

// Product 商品
// 归属于唯一店铺，分析与推广链接均以商品 ID 为键
type Product struct {
	BaseModel
	ShopID int64 `gorm:"index;not null" json:"shop_id"` // 店铺 ID (归属隔离核心)
	Shop   *Shop `gorm:"foreignKey:ShopID" json:"-"`

	Name        string  `gorm:"size:255;index" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"not null;default:0" json:"price"` // 非负
	ImageURL    string  `gorm:"size:512" json:"image_url,omitempty"`

	// 标签 (Postgres Array)
	Tags pq.StringArray `gorm:"type:text[]" json:"tags,omitempty"`
}

func (Product) TableName() string {
	return "products"
}
