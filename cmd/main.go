package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"deltahub/internal/config"
	"deltahub/internal/controller"
	"deltahub/internal/middleware"
	"deltahub/internal/model"
	"deltahub/internal/repository"
	"deltahub/internal/router"
	"deltahub/internal/service"
	"deltahub/internal/task"
	"deltahub/pkg/database"
)

// @title DeltaHub API
// @version 1.0
// @description 联盟推广与归因分析服务：店铺、博主、商品、推广链接、订单结算
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. 加载配置
	cfg := config.Load()

	// 2. 初始化数据库
	db := initDatabase(cfg)

	// 3. 初始化依赖
	deps := initDependencies(db, cfg)

	// 4. 启动定时任务
	initTasks(deps)

	// 5. 初始化路由
	r := gin.Default()
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	router.InitRoutes(r, deps.Controllers, deps.JWT, deps.Repos.Shop)

	// 6. 启动服务
	startServer(r, cfg.ServerPort)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	JWT         *middleware.JWTManager
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Shop      repository.ShopRepository
	Blogger   repository.BloggerRepository
	Product   repository.ProductRepository
	Analytics repository.AnalyticsRepository
	Order     repository.OrderRepository
	Link      repository.AffiliateLinkRepository
	Webhook   repository.WebhookRepository
}

// Services 服务集合
type Services struct {
	Auth      *service.AuthService
	Shop      *service.ShopService
	Blogger   *service.BloggerService
	Product   *service.ProductService
	Analytics *service.AnalyticsService
	Order     *service.OrderService
	Affiliate *service.AffiliateService
	Storage   *service.StorageService
	Webhook   *service.WebhookService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase(cfg *config.Config) *gorm.DB {
	return database.InitDB(cfg.DatabaseDSN,
		// 账户
		&model.Shop{}, &model.Blogger{},
		// 商品与推广
		&model.Product{}, &model.AffiliateLink{},
		// 订单与归因
		&model.Order{}, &model.Analytics{},
		// 回调投递
		&model.WebhookDelivery{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB, cfg *config.Config) *Dependencies {
	// -------- Repo 层 --------
	repos := initRepositories(db)

	// -------- 基础设施 --------
	jwtManager := middleware.NewJWTManager(&middleware.JWTConfig{
		SecretKey: cfg.JWTSecret,
		TokenTTL:  cfg.JWTTTL,
		Issuer:    cfg.JWTIssuer,
	})
	storageSvc := initStorageService(cfg)

	// -------- 业务服务 --------
	webhookSvc := service.NewWebhookService(repos.Webhook, cfg.WebhookTimeout)
	services := &Services{
		Storage: storageSvc,
		Webhook: webhookSvc,
	}
	services.Shop = service.NewShopService(repos.Shop)
	services.Auth = service.NewAuthService(repos.Shop, jwtManager)
	services.Blogger = service.NewBloggerService(repos.Blogger)
	services.Product = service.NewProductService(repos.Product, repos.Analytics, storageSvc)
	services.Analytics = service.NewAnalyticsService(repos.Analytics, repos.Product)
	services.Order = service.NewOrderService(repos.Order, repos.Product, repos.Analytics, webhookSvc)
	services.Affiliate = service.NewAffiliateService(repos.Link, repos.Product, repos.Blogger)

	// -------- Controller 层 --------
	controllers := initControllers(db, services, cfg)

	return &Dependencies{
		DB:          db,
		JWT:         jwtManager,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// initRepositories 初始化所有仓库
func initRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Shop:      repository.NewShopRepository(db),
		Blogger:   repository.NewBloggerRepository(db),
		Product:   repository.NewProductRepository(db),
		Analytics: repository.NewAnalyticsRepository(db),
		Order:     repository.NewOrderRepository(db),
		Link:      repository.NewAffiliateLinkRepository(db),
		Webhook:   repository.NewWebhookRepository(db),
	}
}

// initStorageService 初始化存储服务
// 初始化失败时回退到本地磁盘，图片上传路径永远可用
func initStorageService(cfg *config.Config) *service.StorageService {
	return service.NewStorageServiceOrLocal(cfg)
}

// initControllers 初始化所有控制器
func initControllers(db *gorm.DB, svc *Services, cfg *config.Config) *router.Controllers {
	return &router.Controllers{
		Auth:      controller.NewAuthController(svc.Auth),
		Shop:      controller.NewShopController(svc.Shop, svc.Analytics),
		Blogger:   controller.NewBloggerController(svc.Blogger),
		Product:   controller.NewProductController(svc.Product, svc.Order, cfg.StoragePath),
		Order:     controller.NewOrderController(svc.Order),
		Affiliate: controller.NewAffiliateController(svc.Affiliate),
		Analytics: controller.NewAnalyticsController(svc.Analytics),
		Admin:     controller.NewAdminController(db),
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	// 悬空归因行回收
	orphanReaper := task.NewOrphanReaper(deps.Repos.Analytics)
	orphanReaper.Start()

	// 回调补投
	webhookRetrier := task.NewWebhookRetrier(deps.Services.Webhook)
	webhookRetrier.Start()

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine, port string) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}
