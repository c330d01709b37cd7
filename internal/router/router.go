package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"deltahub/internal/controller"
	"deltahub/internal/middleware"
	"deltahub/internal/repository"

	_ "deltahub/docs"
)

// Controllers 路由需要的全部控制器
type Controllers struct {
	Auth      *controller.AuthController
	Shop      *controller.ShopController
	Blogger   *controller.BloggerController
	Product   *controller.ProductController
	Order     *controller.OrderController
	Affiliate *controller.AffiliateController
	Analytics *controller.AnalyticsController
	Admin     *controller.AdminController
}

// InitRoutes 注册所有路由
// 路径沿用对外已发布的 API 形态，不加 /api 前缀
func InitRoutes(r *gin.Engine,
	ctls *Controllers,
	jwtManager *middleware.JWTManager,
	shopRepo repository.ShopRepository) {

	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := middleware.ShopAuth(jwtManager, shopRepo)

	// 2. 认证
	r.POST("/token", ctls.Auth.Token)

	// 3. 店铺
	shops := r.Group("/shops")
	{
		// POST /shops/ 公开注册
		shops.POST("/", ctls.Shop.Register)
		shops.GET("/:id", auth, ctls.Shop.Get)
		// 与 GET /shops/:id 行为一致，路径保留兼容
		shops.GET("/me/:id", auth, ctls.Shop.Get)
		shops.GET("/:id/analytics", auth, ctls.Shop.Analytics)
	}

	// 4. 博主（全部公开）
	bloggers := r.Group("/bloggers")
	{
		bloggers.POST("/", ctls.Blogger.Register)
		bloggers.GET("/", ctls.Blogger.List)
	}

	// 5. 商品
	products := r.Group("/products")
	{
		products.POST("/", auth, ctls.Product.Create)
		products.GET("/", auth, ctls.Product.List)
		// 公开详情，带 blogger_id 时记一次访问
		products.GET("/:id", ctls.Product.Get)
		products.GET("/:id/analytics", auth, ctls.Analytics.ListForProduct)
		products.GET("/:id/orders", auth, ctls.Product.ListOrders)
		products.POST("/:id/image", auth, ctls.Product.UploadImage)
	}
	r.GET("/images/:filename", ctls.Product.ServeImage)

	// 6. 订单
	orders := r.Group("/orders")
	{
		// 公开下单入口
		orders.POST("/", ctls.Order.Create)
		orders.PUT("/:id/status", auth, ctls.Order.UpdateStatus)
	}

	// 7. 推广链接
	links := r.Group("/affiliate-links")
	{
		links.POST("/", auth, ctls.Affiliate.Create)
		links.GET("/:code", ctls.Affiliate.GetByCode)
	}

	// 8. 归因分析
	r.POST("/analytics/visit", ctls.Analytics.RecordVisit)

	// 9. 运维
	r.POST("/admin/migrate", ctls.Admin.Migrate)
}
