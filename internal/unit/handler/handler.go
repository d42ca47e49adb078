package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-menu-service/internal/httpx"
	"github.com/fekuna/omnipos-menu-service/internal/logger"
	"github.com/fekuna/omnipos-menu-service/internal/unit"
	"github.com/fekuna/omnipos-menu-service/internal/unit/dto"
	"github.com/fekuna/omnipos-menu-service/internal/validation"
	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

type UnitHandler struct {
	uc       unit.UseCase
	validate *validatorv10.Validate
	logger   logger.ZapLogger
}

func NewUnitHandler(uc unit.UseCase, v *validatorv10.Validate, log logger.ZapLogger) *UnitHandler {
	return &UnitHandler{
		uc:       uc,
		validate: v,
		logger:   log,
	}
}

func (h *UnitHandler) Register(public, admin *gin.RouterGroup) {
	public.GET("/unit-measures", h.ListUnits)

	admin.POST("/unit-measures", h.CreateUnit)
	admin.PUT("/unit-measures/:id", h.UpdateUnit)
	admin.DELETE("/unit-measures/:id", h.DeleteUnit)
	admin.GET("/stats/by-unit", h.StatsByUnit)
}

func (h *UnitHandler) ListUnits(c *gin.Context) {
	units, err := h.uc.ListUnits(c.Request.Context())
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, units)
}

func (h *UnitHandler) CreateUnit(c *gin.Context) {
	var req dto.UnitInput
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	u, err := h.uc.CreateUnit(c.Request.Context(), &req)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *UnitHandler) UpdateUnit(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	var req dto.UnitInput
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	u, err := h.uc.UpdateUnit(c.Request.Context(), id, &req)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UnitHandler) DeleteUnit(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	if err := h.uc.DeleteUnit(c.Request.Context(), id); err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UnitHandler) StatsByUnit(c *gin.Context) {
	stats, err := h.uc.StatsByUnit(c.Request.Context())
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
