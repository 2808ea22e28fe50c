package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"stayhub/internal/infra/config"
	"stayhub/internal/infra/obs"
)

type BookingHTTP interface {
	Create(c *gin.Context)
	Confirm(c *gin.Context)
	Complete(c *gin.Context)
	Cancel(c *gin.Context)
	ListMine(c *gin.Context)
	ListForAccommodation(c *gin.Context)
}

type AccommodationHTTP interface {
	CreateOne(c *gin.Context)
	UpdateOne(c *gin.Context)
	DeleteOne(c *gin.Context)
	Catalog(c *gin.Context)
	Preview(c *gin.Context)
	Stats(c *gin.Context)
}

type Handlers struct {
	Booking       BookingHTTP
	Accommodation AccommodationHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Booking != nil {
		api.POST("/reservations", h.Booking.Create)
		api.POST("/reservations/:id/confirm", h.Booking.Confirm)
		api.POST("/reservations/:id/complete", h.Booking.Complete)
		api.POST("/reservations/:id/cancel", h.Booking.Cancel)
		api.GET("/me/reservations", h.Booking.ListMine)
	}
	if h.Accommodation != nil {
		api.GET("/accommodations", h.Accommodation.Catalog)
		api.POST("/accommodations", h.Accommodation.CreateOne)
		api.PUT("/accommodations/:id", h.Accommodation.UpdateOne)
		api.DELETE("/accommodations/:id", h.Accommodation.DeleteOne)
		api.GET("/accommodations/:id/price-preview", h.Accommodation.Preview)
		api.GET("/accommodations/:id/metrics", h.Accommodation.Stats)
		if h.Booking != nil {
			api.GET("/accommodations/:id/reservations", h.Booking.ListForAccommodation)
		}
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
