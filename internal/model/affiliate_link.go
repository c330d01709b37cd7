package model

// AffiliateLink 推广链接
// 一个不可猜测的短码对应唯一 (product_id, blogger_id) 配对
// 配对上的唯一索引保证幂等创建：同配对重复创建返回已有记录
type AffiliateLink struct {
	BaseModel
	Code      string   `gorm:"size:32;uniqueIndex;not null" json:"code"`
	ProductID int64    `gorm:"uniqueIndex:idx_link_pair;not null" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	BloggerID int64    `gorm:"uniqueIndex:idx_link_pair;not null" json:"blogger_id"`
	Blogger   *Blogger `gorm:"foreignKey:BloggerID" json:"blogger,omitempty"`
}

func (AffiliateLink) TableName() string {
	return "affiliate_links"
}
