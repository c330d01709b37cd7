package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"deltahub/internal/api/dto"
	"deltahub/internal/service"
)

// BloggerController 博主控制器
type BloggerController struct {
	svc *service.BloggerService
}

// NewBloggerController 创建博主控制器
func NewBloggerController(svc *service.BloggerService) *BloggerController {
	return &BloggerController{svc: svc}
}

// Register 博主注册
// @Summary 博主注册
// @Description 公开接口，邮箱唯一
// @Tags Blogger (博主)
// @Accept json
// @Produce json
// @Param request body dto.BloggerCreateReq true "注册参数"
// @Success 201 {object} map[string]interface{} "新建博主"
// @Failure 400 {object} map[string]string "邮箱已注册"
// @Router /bloggers/ [post]
func (b *BloggerController) Register(c *gin.Context) {
	var req dto.BloggerCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	blogger, err := b.svc.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, blogger)
}

// List 博主列表
// @Summary 博主列表
// @Description 公开接口，支持 skip/limit 分页
// @Tags Blogger (博主)
// @Produce json
// @Param skip query int false "偏移量" default(0)
// @Param limit query int false "条数上限" default(100)
// @Success 200 {array} model.Blogger "博主列表"
// @Router /bloggers/ [get]
func (b *BloggerController) List(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	bloggers, err := b.svc.List(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bloggers)
}
