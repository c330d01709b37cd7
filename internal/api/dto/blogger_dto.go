package dto

// ==================== 博主相关 DTO ====================

// BloggerCreateReq 博主注册请求
type BloggerCreateReq struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Bio   string `json:"bio"`
}
