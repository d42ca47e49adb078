// Package server assembles the HTTP router and the gRPC health server.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/fekuna/omnipos-menu-service/config"
	"github.com/fekuna/omnipos-menu-service/internal/auth"
	"github.com/fekuna/omnipos-menu-service/internal/cache"
	"github.com/fekuna/omnipos-menu-service/internal/event"
	"github.com/fekuna/omnipos-menu-service/internal/logger"
	"github.com/fekuna/omnipos-menu-service/internal/metrics"
	"github.com/fekuna/omnipos-menu-service/internal/order/whatsapp"
	"github.com/fekuna/omnipos-menu-service/internal/search"
	"github.com/fekuna/omnipos-menu-service/internal/validation"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	catHandlerPkg "github.com/fekuna/omnipos-menu-service/internal/category/handler"
	catRepoPkg "github.com/fekuna/omnipos-menu-service/internal/category/repository"
	catUCPkg "github.com/fekuna/omnipos-menu-service/internal/category/usecase"

	hlHandlerPkg "github.com/fekuna/omnipos-menu-service/internal/highlight/handler"
	hlRepoPkg "github.com/fekuna/omnipos-menu-service/internal/highlight/repository"
	hlUCPkg "github.com/fekuna/omnipos-menu-service/internal/highlight/usecase"

	"github.com/fekuna/omnipos-menu-service/internal/highlight"

	orderHandlerPkg "github.com/fekuna/omnipos-menu-service/internal/order/handler"
	orderRepoPkg "github.com/fekuna/omnipos-menu-service/internal/order/repository"
	orderUCPkg "github.com/fekuna/omnipos-menu-service/internal/order/usecase"

	prodHandlerPkg "github.com/fekuna/omnipos-menu-service/internal/product/handler"
	prodRepoPkg "github.com/fekuna/omnipos-menu-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-menu-service/internal/product/usecase"

	sugHandlerPkg "github.com/fekuna/omnipos-menu-service/internal/suggestion/handler"
	sugRepoPkg "github.com/fekuna/omnipos-menu-service/internal/suggestion/repository"
	sugUCPkg "github.com/fekuna/omnipos-menu-service/internal/suggestion/usecase"

	unitHandlerPkg "github.com/fekuna/omnipos-menu-service/internal/unit/handler"
	unitRepoPkg "github.com/fekuna/omnipos-menu-service/internal/unit/repository"
	unitUCPkg "github.com/fekuna/omnipos-menu-service/internal/unit/usecase"
)

const serviceName = "menu"

// Deps are the process-wide collaborators. Cache, Search and Publisher are optional.
type Deps struct {
	Config    *config.Config
	DB        *sqlx.DB
	Cache     *cache.RedisClient
	Search    *search.Client
	Publisher event.Publisher
	Registry  *prometheus.Registry
	Logger    logger.ZapLogger
}

type Server struct {
	Router     *gin.Engine
	Highlights highlight.UseCase
}

type routeRegistrar interface {
	Register(public, admin *gin.RouterGroup)
}

func New(d *Deps) *Server {
	cfg := d.Config
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	if d.Registry == nil {
		d.Registry = prometheus.NewRegistry()
	}
	m := metrics.NewServerMetrics(d.Registry, serviceName)
	v := validation.New()

	catRepo := catRepoPkg.NewPGRepository(d.DB)
	prodRepo := prodRepoPkg.NewPGRepository(d.DB)
	orderRepo := orderRepoPkg.NewPGRepository(d.DB)
	unitRepo := unitRepoPkg.NewPGRepository(d.DB)
	sugRepo := sugRepoPkg.NewPGRepository(d.DB)
	hlRepo := hlRepoPkg.NewPGRepository(d.DB)

	formatter := whatsapp.NewFormatter(cfg.WhatsApp.BaseURL, cfg.WhatsApp.Number, cfg.WhatsApp.CurrencySymbol)

	catUC := catUCPkg.NewCategoryUseCase(catRepo, d.Cache, d.Logger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, d.Cache, d.Search, d.Logger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, prodRepo, formatter, d.Publisher, m,
		orderUCPkg.Options{RequireAvailable: cfg.Order.RequireAvailable}, d.Logger)
	unitUC := unitUCPkg.NewUnitUseCase(unitRepo, d.Logger)
	sugUC := sugUCPkg.NewSuggestionUseCase(sugRepo, d.Logger)
	hlUC := hlUCPkg.NewHighlightUseCase(hlRepo, prodRepo, d.Cache, d.Logger)

	tokens := auth.NewTokenManager(cfg.JWT.SecretKey, cfg.JWT.TTL)
	authenticator := auth.NewAuthenticator(cfg.Admin.Email, cfg.Admin.PasswordHash, tokens, d.Logger)

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(d.Logger), Metrics(m))
	r.Use(cors.New(corsConfig(cfg.CORS.AllowOrigins)))

	r.GET("/health", healthHandler(d.DB))
	r.GET("/metrics", gin.WrapH(metrics.Handler(d.Registry)))

	public := r.Group("/api")
	gate := auth.RequireAdmin(tokens, d.Logger)
	if err := cfg.Validate(); err != nil {
		d.Logger.Error("admin routes disabled", zap.Error(err))
		gate = auth.DenyAll(d.Logger)
	}
	admin := r.Group("/api", gate)

	handlers := []routeRegistrar{
		auth.NewAuthHandler(authenticator, v, d.Logger),
		catHandlerPkg.NewCategoryHandler(catUC, v, d.Logger),
		prodHandlerPkg.NewProductHandler(prodUC, v, d.Logger),
		orderHandlerPkg.NewOrderHandler(orderUC, v, d.Logger),
		unitHandlerPkg.NewUnitHandler(unitUC, v, d.Logger),
		sugHandlerPkg.NewSuggestionHandler(sugUC, v, d.Logger),
		hlHandlerPkg.NewHighlightHandler(hlUC, v, d.Logger),
	}
	for _, h := range handlers {
		h.Register(public, admin)
	}

	return &Server{Router: r, Highlights: hlUC}
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	if len(origins) == 0 {
		c.AllowAllOrigins = true
	}
	return c
}

func healthHandler(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
	}
}
