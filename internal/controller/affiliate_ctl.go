package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"deltahub/internal/api/dto"
	"deltahub/internal/middleware"
	"deltahub/internal/service"
)

// AffiliateController 推广链接控制器
type AffiliateController struct {
	svc *service.AffiliateService
}

// NewAffiliateController 创建推广链接控制器
func NewAffiliateController(svc *service.AffiliateService) *AffiliateController {
	return &AffiliateController{svc: svc}
}

// Create 创建推广链接
// @Summary 创建推广链接
// @Description 为自家商品与博主的配对生成短码链接；同配对重复创建幂等返回已有链接
// @Tags AffiliateLink (推广链接)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AffiliateLinkCreateReq true "配对参数"
// @Success 200 {object} map[string]interface{} "推广链接"
// @Failure 404 {object} map[string]string "商品或博主不存在"
// @Router /affiliate-links/ [post]
func (a *AffiliateController) Create(c *gin.Context) {
	var req dto.AffiliateLinkCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := a.svc.CreateOrGet(c.Request.Context(), req.ProductID, req.BloggerID, middleware.CurrentShop(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, link)
}

// GetByCode 按短码解析推广链接
// @Summary 解析推广链接
// @Description 公开接口，返回链接及关联的商品与博主
// @Tags AffiliateLink (推广链接)
// @Produce json
// @Param code path string true "链接短码"
// @Success 200 {object} map[string]interface{} "链接详情"
// @Failure 404 {object} map[string]string "链接不存在"
// @Router /affiliate-links/{code} [get]
func (a *AffiliateController) GetByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少链接短码"})
		return
	}

	link, err := a.svc.GetByCode(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, link)
}
