package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"deltahub/internal/api/dto"
	"deltahub/internal/middleware"
	"deltahub/internal/service"
)

// ShopController 店铺控制器
type ShopController struct {
	svc          *service.ShopService
	analyticsSvc *service.AnalyticsService
}

// NewShopController 创建店铺控制器
func NewShopController(svc *service.ShopService, analyticsSvc *service.AnalyticsService) *ShopController {
	return &ShopController{svc: svc, analyticsSvc: analyticsSvc}
}

// Register 店铺注册
// @Summary 店铺注册
// @Description 创建店铺账号，邮箱唯一，密码以 bcrypt 哈希存储
// @Tags Shop (店铺)
// @Accept json
// @Produce json
// @Param request body dto.ShopCreateReq true "注册参数"
// @Success 201 {object} map[string]interface{} "新建店铺"
// @Failure 400 {object} map[string]string "参数错误或邮箱已注册"
// @Router /shops/ [post]
func (s *ShopController) Register(c *gin.Context) {
	var req dto.ShopCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shop, err := s.svc.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, shop)
}

// Get 查询店铺
// @Summary 查询店铺
// @Description 只能查询当前认证店铺自己的信息
// @Tags Shop (店铺)
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺 ID"
// @Success 200 {object} map[string]interface{} "店铺信息"
// @Failure 403 {object} map[string]string "无权访问其他店铺"
// @Failure 404 {object} map[string]string "店铺不存在"
// @Router /shops/{id} [get]
func (s *ShopController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	shop, err := s.svc.GetShop(c.Request.Context(), id, middleware.CurrentShop(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, shop)
}

// Analytics 店铺维度归因汇总
// @Summary 店铺归因汇总
// @Description 汇总当前店铺所有商品的访问与成交归因数据
// @Tags Shop (店铺)
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺 ID"
// @Success 200 {array} model.Analytics "归因记录列表"
// @Failure 403 {object} map[string]string "无权访问其他店铺"
// @Router /shops/{id}/analytics [get]
func (s *ShopController) Analytics(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rows, err := s.analyticsSvc.ListForShop(c.Request.Context(), id, middleware.CurrentShop(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}
