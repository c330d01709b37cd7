package dto

// ==================== 店铺相关 DTO ====================

// ShopCreateReq 店铺注册请求
type ShopCreateReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	WebhookURL  string `json:"webhook_url" binding:"omitempty,url"`
}

// LoginReq 登录请求
// 兼容表单（username 字段）与 JSON（email 字段）两种提交方式
type LoginReq struct {
	Email    string `form:"username" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// TokenResp 登录成功响应
type TokenResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ShopID      int64  `json:"shop_id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
}
