package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"deltahub/internal/api/dto"
	"deltahub/internal/service"
)

// AuthController 认证控制器
type AuthController struct {
	svc *service.AuthService
}

// NewAuthController 创建认证控制器
func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{svc: svc}
}

// Token 登录换取 Token
// @Summary 登录
// @Description 邮箱+密码换取 Bearer Token，有效期 30 分钟
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body dto.LoginReq true "登录参数"
// @Success 200 {object} dto.TokenResp "Token 信息"
// @Failure 401 {object} map[string]string "邮箱或密码错误"
// @Router /token [post]
func (a *AuthController) Token(c *gin.Context) {
	var req dto.LoginReq
	// 既接受 JSON，也接受 OAuth2 风格的表单提交
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := a.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
