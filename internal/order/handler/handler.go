package handler

import (
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-menu-service/internal/apperror"
	"github.com/fekuna/omnipos-menu-service/internal/httpx"
	"github.com/fekuna/omnipos-menu-service/internal/logger"
	"github.com/fekuna/omnipos-menu-service/internal/order"
	"github.com/fekuna/omnipos-menu-service/internal/order/dto"
	"github.com/fekuna/omnipos-menu-service/internal/validation"
	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

type OrderHandler struct {
	uc       order.UseCase
	validate *validatorv10.Validate
	logger   logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, v *validatorv10.Validate, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:       uc,
		validate: v,
		logger:   log,
	}
}

// Register mounts order submission on the public group and order management
// on the admin group.
func (h *OrderHandler) Register(public, admin *gin.RouterGroup) {
	public.POST("/orders", h.PlaceOrder)

	admin.GET("/orders", h.ListOrders)
	admin.GET("/orders/:id", h.GetOrder)
	admin.PUT("/orders/:id/status", h.UpdateStatus)
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	placed, err := h.uc.PlaceOrder(c.Request.Context(), req.ToInput())
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCreateOrderResponse(placed))
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	filters := &dto.OrderFilters{Status: c.Query("status")}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			httpx.Error(c, h.logger, apperror.Validation("invalid limit"))
			return
		}
		filters.Limit = limit
	}

	orders, err := h.uc.ListOrders(c.Request.Context(), filters)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	o, err := h.uc.GetOrder(c.Request.Context(), id)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	var req dto.UpdateStatusRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	o, err := h.uc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, o)
}
