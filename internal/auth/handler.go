package auth

import (
	"net/http"

	"github.com/fekuna/omnipos-menu-service/internal/httpx"
	"github.com/fekuna/omnipos-menu-service/internal/logger"
	"github.com/fekuna/omnipos-menu-service/internal/validation"
	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthHandler struct {
	auth     *Authenticator
	validate *validatorv10.Validate
	logger   logger.ZapLogger
}

func NewAuthHandler(auth *Authenticator, v *validatorv10.Validate, log logger.ZapLogger) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		validate: v,
		logger:   log,
	}
}

func (h *AuthHandler) Register(public, admin *gin.RouterGroup) {
	public.POST("/auth/login", h.Login)
	admin.GET("/auth/me", h.Me)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"email": GetAdminEmail(c), "role": RoleAdmin})
}
