package controller

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"deltahub/internal/api/dto"
	"deltahub/internal/middleware"
	"deltahub/internal/service"
	"deltahub/pkg/utils"
)

// 单张图片大小上限 5MB
const maxImageSize = 5 << 20

// ProductController 商品控制器
type ProductController struct {
	svc      *service.ProductService
	orderSvc *service.OrderService
	imageDir string // local 存储模式下的图片目录
}

// NewProductController 创建商品控制器
func NewProductController(svc *service.ProductService, orderSvc *service.OrderService, imageDir string) *ProductController {
	return &ProductController{svc: svc, orderSvc: orderSvc, imageDir: imageDir}
}

// Create 创建商品
// @Summary 创建商品
// @Description 在当前认证店铺下创建商品，shop_id 必须与当前店铺一致
// @Tags Product (商品)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProductCreateReq true "商品参数"
// @Success 201 {object} map[string]interface{} "新建商品"
// @Failure 403 {object} map[string]string "无权向其他店铺添加商品"
// @Router /products/ [post]
func (p *ProductController) Create(c *gin.Context) {
	var req dto.ProductCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := p.svc.Create(c.Request.Context(), &req, middleware.CurrentShop(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// List 商品列表
// @Summary 商品列表
// @Description 当前认证店铺的商品列表，支持 skip/limit 分页
// @Tags Product (商品)
// @Produce json
// @Security BearerAuth
// @Param skip query int false "偏移量" default(0)
// @Param limit query int false "条数上限" default(100)
// @Success 200 {array} model.Product "商品列表"
// @Router /products/ [get]
func (p *ProductController) List(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	products, err := p.svc.List(c.Request.Context(), middleware.CurrentShop(c), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// Get 公开查询商品
// @Summary 查询商品
// @Description 公开接口；带 blogger_id 参数时记录一次该博主的访问
// @Tags Product (商品)
// @Produce json
// @Param id path int true "商品 ID"
// @Param blogger_id query int false "博主 ID（记录访问归因）"
// @Success 200 {object} map[string]interface{} "商品信息"
// @Failure 404 {object} map[string]string "商品不存在"
// @Router /products/{id} [get]
func (p *ProductController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	bloggerID, _ := strconv.ParseInt(c.Query("blogger_id"), 10, 64)

	product, err := p.svc.GetPublic(c.Request.Context(), id, bloggerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// ListOrders 商品订单列表
// @Summary 商品订单列表
// @Description 当前店铺名下指定商品的全部订单
// @Tags Product (商品)
// @Produce json
// @Security BearerAuth
// @Param id path int true "商品 ID"
// @Success 200 {array} model.Order "订单列表"
// @Failure 403 {object} map[string]string "商品不属于当前店铺"
// @Failure 404 {object} map[string]string "商品不存在"
// @Router /products/{id}/orders [get]
func (p *ProductController) ListOrders(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	orders, err := p.orderSvc.ListByProduct(c.Request.Context(), id, middleware.CurrentShop(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// UploadImage 上传商品图片
// @Summary 上传商品图片
// @Description 商品归属店铺上传主图，multipart 表单字段名 file
// @Tags Product (商品)
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "商品 ID"
// @Param file formData file true "图片文件"
// @Success 200 {object} map[string]string "图片 URL"
// @Failure 403 {object} map[string]string "商品不属于当前店铺"
// @Router /products/{id}/image [post]
func (p *ProductController) UploadImage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少上传文件"})
		return
	}
	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "图片超过大小限制"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, err)
		return
	}

	url, err := p.svc.UploadImage(c.Request.Context(), id, middleware.CurrentShop(c), data, fileHeader.Filename)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

// ServeImage 读取本地存储的图片
// @Summary 读取图片
// @Description 公开接口，按文件名返回本地存储的图片
// @Tags Product (商品)
// @Produce octet-stream
// @Param filename path string true "文件名"
// @Success 200 {file} binary "图片内容"
// @Failure 404 {object} map[string]string "文件不存在"
// @Router /images/{filename} [get]
func (p *ProductController) ServeImage(c *gin.Context) {
	// Base 去掉任何路径成分，防止越出图片目录
	filename := filepath.Base(c.Param("filename"))
	if filename == "." || filename == "/" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的文件名"})
		return
	}

	path := filepath.Join(p.imageDir, filename)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "文件不存在"})
		return
	}

	c.Header("Content-Type", utils.ContentTypeByExt(filepath.Ext(filename)))
	c.File(path)
}
