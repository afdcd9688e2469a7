// Package https_server builds the gin engine: middleware first, then the
// routes registered by the router package.
package https_server

import (
	"net/http"
	"time"

	"mindful_server/internal/config"
	"mindful_server/internal/infrastructure/logger"
	"mindful_server/internal/infrastructure/middleware"
	"mindful_server/internal/router"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Init returns an engine with logging, recovery, tracing, CORS, security
// headers and request metrics installed ahead of rt's routes.
func Init(cfg *config.Config, rt *router.Router) *gin.Engine {
	isDev := cfg.MainConfig.Mode == "dev" || cfg.MainConfig.Mode == gin.DebugMode
	if isDev {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(logger.GinLogger())
	engine.Use(logger.GinRecovery(true))
	if cfg.TraceConfig.Enabled {
		engine.Use(otelgin.Middleware(cfg.AppName))
	}

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowOrigins) == 0 || (len(cfg.AllowOrigins) == 1 && cfg.AllowOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.MaxAge = 12 * time.Hour
	engine.Use(cors.New(corsConfig))

	engine.Use(middleware.Secure(&cfg.SecurityConfig, isDev))
	engine.Use(middleware.Metrics())

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Route not found"})
	})

	rt.RegisterRoutes(engine)
	return engine
}

// NewServer wraps engine in an http.Server listening on the configured address.
func NewServer(cfg *config.Config, engine http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      time.Duration(cfg.AIConfig.Timeout+15) * time.Second,
		IdleTimeout:       90 * time.Second,
	}
}
