package model

// Analytics 归因聚合行
// 每个 (product_id, blogger_id) 配对唯一一行，首次访问或首单时惰性创建
// 联合唯一索引是并发 upsert 正确性的前提，不能省
type Analytics struct {
	BaseModel
	ProductID int64    `gorm:"uniqueIndex:idx_analytics_pair;not null" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"-"`
	BloggerID int64    `gorm:"uniqueIndex:idx_analytics_pair;not null" json:"blogger_id"`
	Blogger   *Blogger `gorm:"foreignKey:BloggerID" json:"blogger,omitempty"`

	// 计数器只增不减；order_count / items_sold / money_earned
	// 仅反映已到达 processed 的订单
	VisitCount  int64   `gorm:"not null;default:0" json:"visit_count"`
	OrderCount  int64   `gorm:"not null;default:0" json:"order_count"`
	ItemsSold   int64   `gorm:"not null;default:0" json:"items_sold"`
	MoneyEarned float64 `gorm:"not null;default:0" json:"money_earned"`
}

func (Analytics) TableName() string {
	return "analytics"
}
