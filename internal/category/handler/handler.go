package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-menu-service/internal/category"
	"github.com/fekuna/omnipos-menu-service/internal/category/dto"
	"github.com/fekuna/omnipos-menu-service/internal/httpx"
	"github.com/fekuna/omnipos-menu-service/internal/logger"
	"github.com/fekuna/omnipos-menu-service/internal/validation"
	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

type CategoryHandler struct {
	uc       category.UseCase
	validate *validatorv10.Validate
	logger   logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, v *validatorv10.Validate, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:       uc,
		validate: v,
		logger:   log,
	}
}

func (h *CategoryHandler) Register(public, admin *gin.RouterGroup) {
	public.GET("/menu", h.GetMenu)
	public.GET("/categories", h.GetTree)
	public.GET("/categories/all", h.ListCategories)
	public.GET("/categories/:id", h.GetCategory)

	admin.POST("/categories", h.CreateCategory)
	admin.PUT("/categories/:id", h.UpdateCategory)
	admin.DELETE("/categories/:id", h.DeleteCategory)
}

func (h *CategoryHandler) GetMenu(c *gin.Context) {
	menu, err := h.uc.GetMenu(c.Request.Context())
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

func (h *CategoryHandler) GetTree(c *gin.Context) {
	tree, err := h.uc.GetTree(c.Request.Context())
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, tree)
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	parentID, err := httpx.QueryID(c, "parentId")
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	rootsOnly, err := httpx.QueryBool(c, "rootsOnly")
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	filters := &dto.CategoryFilters{ParentID: parentID}
	if rootsOnly != nil {
		filters.RootsOnly = *rootsOnly
	}

	categories, err := h.uc.ListCategories(c.Request.Context(), filters)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	cat, err := h.uc.GetCategory(c.Request.Context(), id)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	cat, err := h.uc.CreateCategory(c.Request.Context(), &dto.CreateCategoryInput{
		Name:     req.Name,
		ParentID: req.ParentID,
	})
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	var req dto.UpdateCategoryRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	cat, err := h.uc.UpdateCategory(c.Request.Context(), &dto.UpdateCategoryInput{
		ID:        id,
		Name:      req.Name,
		ParentID:  req.ParentID.Value,
		ParentSet: req.ParentID.Set,
	})
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	force, err := httpx.QueryBool(c, "force")
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	if err := h.uc.DeleteCategory(c.Request.Context(), id, force != nil && *force); err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
