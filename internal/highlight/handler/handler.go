package handler

import (
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-menu-service/internal/apperror"
	"github.com/fekuna/omnipos-menu-service/internal/highlight"
	"github.com/fekuna/omnipos-menu-service/internal/highlight/dto"
	"github.com/fekuna/omnipos-menu-service/internal/httpx"
	"github.com/fekuna/omnipos-menu-service/internal/logger"
	"github.com/fekuna/omnipos-menu-service/internal/validation"
	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

type HighlightHandler struct {
	uc       highlight.UseCase
	validate *validatorv10.Validate
	logger   logger.ZapLogger
}

func NewHighlightHandler(uc highlight.UseCase, v *validatorv10.Validate, log logger.ZapLogger) *HighlightHandler {
	return &HighlightHandler{
		uc:       uc,
		validate: v,
		logger:   log,
	}
}

func (h *HighlightHandler) Register(public, admin *gin.RouterGroup) {
	public.GET("/highlights", h.ListHighlights)
	public.GET("/highlights/best-sellers", h.BestSellers)

	admin.POST("/highlights", h.CreateHighlight)
	admin.DELETE("/highlights/:id", h.DeleteHighlight)
}

func (h *HighlightHandler) ListHighlights(c *gin.Context) {
	highlights, err := h.uc.ListHighlights(c.Request.Context())
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, highlights)
}

func (h *HighlightHandler) BestSellers(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httpx.Error(c, h.logger, apperror.Validation("invalid limit"))
			return
		}
		limit = n
	}

	ranking, err := h.uc.BestSellers(c.Request.Context(), limit)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ranking)
}

func (h *HighlightHandler) CreateHighlight(c *gin.Context) {
	var req dto.HighlightRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	hl, err := h.uc.CreateHighlight(c.Request.Context(), &req)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, hl)
}

func (h *HighlightHandler) DeleteHighlight(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	if err := h.uc.DeleteHighlight(c.Request.Context(), id); err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
