package dto

// ==================== 推广链接相关 DTO ====================

// AffiliateLinkCreateReq 推广链接创建请求（幂等：同配对重复创建返回已有链接）
type AffiliateLinkCreateReq struct {
	ProductID int64 `json:"product_id" binding:"required"`
	BloggerID int64 `json:"blogger_id" binding:"required"`
}
