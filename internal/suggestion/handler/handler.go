package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-menu-service/internal/httpx"
	"github.com/fekuna/omnipos-menu-service/internal/logger"
	"github.com/fekuna/omnipos-menu-service/internal/suggestion"
	"github.com/fekuna/omnipos-menu-service/internal/suggestion/dto"
	"github.com/fekuna/omnipos-menu-service/internal/validation"
	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

type SuggestionHandler struct {
	uc       suggestion.UseCase
	validate *validatorv10.Validate
	logger   logger.ZapLogger
}

func NewSuggestionHandler(uc suggestion.UseCase, v *validatorv10.Validate, log logger.ZapLogger) *SuggestionHandler {
	return &SuggestionHandler{
		uc:       uc,
		validate: v,
		logger:   log,
	}
}

func (h *SuggestionHandler) Register(public, admin *gin.RouterGroup) {
	public.GET("/suggestions", h.ListSuggestions)
	public.POST("/suggestions", h.CreateSuggestion)
	public.POST("/suggestions/:id/vote", h.Vote)

	admin.DELETE("/suggestions/:id", h.DeleteSuggestion)
}

func (h *SuggestionHandler) ListSuggestions(c *gin.Context) {
	suggestions, err := h.uc.ListSuggestions(c.Request.Context(), &dto.SuggestionFilters{
		Sort:        c.Query("sort"),
		SearchQuery: c.Query("q"),
	})
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, suggestions)
}

func (h *SuggestionHandler) CreateSuggestion(c *gin.Context) {
	var req dto.SuggestionRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	s, err := h.uc.CreateSuggestion(c.Request.Context(), &req)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *SuggestionHandler) Vote(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	var req dto.VoteRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	s, err := h.uc.Vote(c.Request.Context(), id, req.Delta)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SuggestionHandler) DeleteSuggestion(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	if err := h.uc.DeleteSuggestion(c.Request.Context(), id); err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
