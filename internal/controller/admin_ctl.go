package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"deltahub/internal/model"
)

// AdminController 运维控制器
type AdminController struct {
	db *gorm.DB
}

// NewAdminController 创建运维控制器
func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{db: db}
}

// Migrate 执行数据库迁移
// @Summary 执行数据库迁移
// @Description 对全部模型执行 AutoMigrate；运维工具，错误原样返回
// @Tags Admin (运维)
// @Produce json
// @Success 200 {object} map[string]string "迁移完成"
// @Failure 500 {object} map[string]string "迁移失败"
// @Router /admin/migrate [post]
func (a *AdminController) Migrate(c *gin.Context) {
	err := a.db.AutoMigrate(
		&model.Shop{},
		&model.Blogger{},
		&model.Product{},
		&model.AffiliateLink{},
		&model.Order{},
		&model.Analytics{},
		&model.WebhookDelivery{},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "migrations applied"})
}
