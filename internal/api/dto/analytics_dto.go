package dto

// ==================== 归因分析相关 DTO ====================

// VisitReq 访问上报请求
// 同时接受 JSON 体与查询参数两种写法
type VisitReq struct {
	ProductID int64 `form:"product_id" json:"product_id" binding:"required"`
	BloggerID int64 `form:"blogger_id" json:"blogger_id" binding:"required"`
}
