package model

// Blogger 博主（引流方）
// 博主不是认证主体：当前流程中只作为归因配对的一端
type Blogger struct {
	BaseModel
	Name  string `gorm:"size:100;index" json:"name"`
	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Bio   string `gorm:"type:text" json:"bio"`
}

func (Blogger) TableName() string {
	return "bloggers"
}
