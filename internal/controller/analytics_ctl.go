package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"deltahub/internal/api/dto"
	"deltahub/internal/middleware"
	"deltahub/internal/service"
)

// AnalyticsController 归因分析控制器
type AnalyticsController struct {
	svc *service.AnalyticsService
}

// NewAnalyticsController 创建归因分析控制器
func NewAnalyticsController(svc *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{svc: svc}
}

// RecordVisit 访问上报
// @Summary 访问上报
// @Description 公开接口，为商品×博主配对累加一次访问；配对行不存在则创建
// @Tags Analytics (归因分析)
// @Accept json
// @Produce json
// @Param request body dto.VisitReq true "配对参数"
// @Success 200 {object} map[string]string "上报成功"
// @Router /analytics/visit [post]
func (a *AnalyticsController) RecordVisit(c *gin.Context) {
	var req dto.VisitReq
	// 兼容 JSON 体与查询参数两种上报方式
	if err := c.ShouldBindJSON(&req); err != nil {
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if err := a.svc.RecordVisit(c.Request.Context(), req.ProductID, req.BloggerID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "visit recorded"})
}

// ListForProduct 商品维度归因明细
// @Summary 商品归因明细
// @Description 商品归属店铺查看各博主带来的访问与成交数据
// @Tags Analytics (归因分析)
// @Produce json
// @Security BearerAuth
// @Param id path int true "商品 ID"
// @Success 200 {array} model.Analytics "归因记录列表"
// @Failure 403 {object} map[string]string "商品不属于当前店铺"
// @Failure 404 {object} map[string]string "商品不存在"
// @Router /products/{id}/analytics [get]
func (a *AnalyticsController) ListForProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rows, err := a.svc.ListForProduct(c.Request.Context(), id, middleware.CurrentShop(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}
