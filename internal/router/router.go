// Package router mounts the API resources and the operational endpoints.
package router

import (
	"mindful_server/internal/handler"
	"mindful_server/internal/infrastructure/metrics"

	"github.com/gin-gonic/gin"
)

// Router holds what route registration needs.
type Router struct {
	handlers       *handler.Handlers
	health         *handler.HealthHandler
	journalLimiter gin.HandlerFunc
}

// NewRouter builds a Router. journalLimiter may be nil to leave the journal
// endpoint unthrottled; health may be nil to skip /healthz.
func NewRouter(handlers *handler.Handlers, health *handler.HealthHandler, journalLimiter gin.HandlerFunc) *Router {
	return &Router{handlers: handlers, health: health, journalLimiter: journalLimiter}
}

// RegisterRoutes registers every route on r.
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	if rt.health != nil {
		r.GET("/healthz", rt.health.Check)
	}
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	rt.RegisterUserRoutes(api)
	rt.RegisterPostRoutes(api)
	rt.RegisterBookingRoutes(api)
	rt.RegisterLiveSessionRoutes(api)
	rt.RegisterJournalRoutes(api)
}
