package model

// Shop 店铺（认证主体）
// 密码只存 bcrypt 哈希，永不可逆
type Shop struct {
	BaseModel
	Name        string `gorm:"size:100;index" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Email       string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	// bcrypt 哈希，序列化时隐藏
	HashedPassword string `gorm:"size:255;not null" json:"-"`

	// 订单处理完成后的回调地址（可选）
	WebhookURL string `gorm:"size:255" json:"webhook_url,omitempty"`

	// 商品数据 (Has Many)
	Products []Product `gorm:"foreignKey:ShopID" json:"products,omitempty"`
}

func (Shop) TableName() string {
	return "shops"
}
