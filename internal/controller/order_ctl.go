package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"deltahub/internal/api/dto"
	"deltahub/internal/middleware"
	"deltahub/internal/service"
)

// OrderController 订单控制器
type OrderController struct {
	svc *service.OrderService
}

// NewOrderController 创建订单控制器
func NewOrderController(svc *service.OrderService) *OrderController {
	return &OrderController{svc: svc}
}

// Create 创建订单
// @Summary 创建订单
// @Description 公开接口，代表终端买家下单，单价在此刻定格为快照
// @Tags Order (订单)
// @Accept json
// @Produce json
// @Param request body dto.OrderCreateReq true "订单参数"
// @Success 201 {object} map[string]interface{} "新建订单，状态 waiting_to_process"
// @Failure 400 {object} map[string]string "数量或单价非法"
// @Router /orders/ [post]
func (o *OrderController) Create(c *gin.Context) {
	var req dto.OrderCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := o.svc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// UpdateStatus 订单状态迁移
// @Summary 订单状态迁移
// @Description 订单关联商品的归属店铺把订单标记为 processed 或 cancelled；已终态的订单不可再迁移
// @Tags Order (订单)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "订单 ID"
// @Param request body dto.OrderStatusReq true "目标状态"
// @Success 200 {object} map[string]interface{} "迁移后的订单"
// @Failure 403 {object} map[string]string "订单商品不属于当前店铺"
// @Failure 404 {object} map[string]string "订单不存在"
// @Failure 409 {object} map[string]string "订单已处于终态"
// @Router /orders/{id}/status [put]
func (o *OrderController) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.OrderStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := o.svc.Transition(c.Request.Context(), id, req.Status, middleware.CurrentShop(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}
