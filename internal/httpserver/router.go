package httpserver

import (
	"context"
	"errors"
	"io"
	"time"

	"offerboard/internal/domain"
	offersvc "offerboard/internal/service/offer"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

type OfferService interface {
	Create(ctx context.Context, in offersvc.CreateInput) (*domain.Offer, error)
	List(ctx context.Context, title string, limit, offset int) ([]domain.Offer, int, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Offer, error)
	UpdateBySlug(ctx context.Context, slug string, patch domain.OfferPatch) (*domain.Offer, error)
	DeleteBySlug(ctx context.Context, slug string) error
	Filter(ctx context.Context, f domain.OfferFilter) ([]domain.Offer, error)
}

type CategoryService interface {
	List(ctx context.Context, limit, offset int) ([]domain.Category, int, error)
}

type EnterpriseService interface {
	List(ctx context.Context, limit, offset int) ([]domain.Enterprise, int, error)
}

// Deps groups the services the router dispatches to.
type Deps struct {
	OfferSvc      OfferService
	CategorySvc   CategoryService
	EnterpriseSvc EnterpriseService
}

// buildRouter wires routes for the API.
func buildRouter(logger logrus.FieldLogger, db *pgxpool.Pool, deps Deps, corsOrigins []string) (*gin.Engine, error) {
	if deps.OfferSvc == nil || deps.CategorySvc == nil || deps.EnterpriseSvc == nil {
		return nil, errors.New("httpserver: offer, category and enterprise services are required")
	}
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())
	if len(corsOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     corsOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{deps: deps, logger: logger}

	offerts := router.Group("/offerts")
	offerts.POST("", h.createOffer)
	offerts.GET("", h.listOffers)
	offerts.GET("/filter", h.filterOffers)
	offerts.GET("/:slug", h.getOffer)
	offerts.PUT("/:slug", h.updateOffer)
	offerts.DELETE("/:slug", h.deleteOffer)

	router.GET("/categorys", h.listCategories)
	router.GET("/enterprises", h.listEnterprises)

	return router, nil
}

func requestLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		logger.WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(started).Milliseconds(),
		}).Info("http request")
	}
}
