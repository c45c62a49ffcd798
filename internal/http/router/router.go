// Package router assembles the Gin engine from the application's modules.
package router

import (
	"net/http"
	"time"

	apphttp "village_rides_backend/internal/http"
	"village_rides_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// New builds the HTTP engine: global middleware, health endpoints, and the
// route groups each module mounts its handlers on.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(cors.New(corsConfig(app)))

	globalLimiter := httpkit.NewIPRateLimiter(rate.Every(50*time.Millisecond), 40, app.Logger)
	engine.Use(globalLimiter.RateLimit())

	engine.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/api/ready", func(c *gin.Context) {
		if err := app.Health.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	authMiddleware := httpkit.AuthMiddleware(app.Config)

	v1 := engine.Group("/api/v1")
	admin := v1.Group("/admin")
	admin.Use(authMiddleware)

	ctx := &apphttp.RouterContext{
		Engine:             engine,
		V1:                 v1,
		Admin:              admin,
		Config:             app.Config,
		AuthMiddleware:     authMiddleware,
		AuthRateLimiter:    httpkit.NewAuthRateLimiter(app.Logger),
		GeocodeRateLimiter: httpkit.NewGeocodeRateLimiter(app.Logger),
	}

	for _, module := range app.Modules {
		module.RegisterRoutes(ctx)
		app.Logger.Info("module routes registered", "module", module.Name())
	}

	return engine
}

func corsConfig(app *apphttp.App) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	cfg.MaxAge = 12 * time.Hour

	if app.Config.GetCORSAllowAll() {
		cfg.AllowAllOrigins = true
		return cfg
	}

	cfg.AllowOrigins = app.Config.GetCORSOrigins()
	cfg.AllowCredentials = app.Config.GetCORSAllowCreds()
	return cfg
}
