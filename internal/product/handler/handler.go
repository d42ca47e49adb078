package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/fekuna/omnipos-menu-service/internal/httpx"
	"github.com/fekuna/omnipos-menu-service/internal/logger"
	"github.com/fekuna/omnipos-menu-service/internal/product"
	"github.com/fekuna/omnipos-menu-service/internal/product/dto"
	"github.com/fekuna/omnipos-menu-service/internal/validation"
	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ProductHandler struct {
	uc       product.UseCase
	validate *validatorv10.Validate
	logger   logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, v *validatorv10.Validate, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:       uc,
		validate: v,
		logger:   log,
	}
}

func (h *ProductHandler) Register(public, admin *gin.RouterGroup) {
	public.GET("/products", h.ListProducts)
	public.GET("/products/:id", h.GetProduct)

	admin.POST("/products", h.CreateProduct)
	admin.PUT("/products/:id", h.UpdateProduct)
	admin.PATCH("/products/:id/availability", h.SetAvailability)
	admin.DELETE("/products/:id", h.DeleteProduct)
	admin.GET("/admin/products/export", h.ExportProducts)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	available, err := httpx.QueryBool(c, "available")
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	categoryID, err := httpx.QueryID(c, "categoryId")
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	products, err := h.uc.ListProducts(c.Request.Context(), &dto.ProductFilters{
		Available:   available,
		CategoryID:  categoryID,
		SearchQuery: c.Query("q"),
	})
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	p, err := h.uc.GetProduct(c.Request.Context(), id)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	p, err := h.uc.CreateProduct(c.Request.Context(), req.ToInput())
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	var req dto.ProductRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	p, err := h.uc.UpdateProduct(c.Request.Context(), &dto.UpdateProductInput{ID: id, CreateProductInput: *req.ToInput()})
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) SetAvailability(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	var req dto.AvailabilityRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	p, err := h.uc.SetAvailability(c.Request.Context(), id, *req.Available)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	if err := h.uc.DeleteProduct(c.Request.Context(), id); err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) ExportProducts(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.uc.ExportProducts(c.Request.Context(), &buf); err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	filename := fmt.Sprintf("produtos_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
