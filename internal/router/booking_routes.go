package router

import "github.com/gin-gonic/gin"

// RegisterBookingRoutes mounts the booked sessions under /sessions, the path
// the web client uses.
func (rt *Router) RegisterBookingRoutes(rg *gin.RouterGroup) {
	sessions := rg.Group("/sessions")
	{
		sessions.POST("", rt.handlers.Booking.Create)
		sessions.GET("", rt.handlers.Booking.List)
		sessions.GET("/user/:id", rt.handlers.Booking.ListByUser)
		sessions.GET("/:id", rt.handlers.Booking.Get)
		sessions.PUT("/:id", rt.handlers.Booking.Update)
		sessions.DELETE("/:id", rt.handlers.Booking.Delete)
	}
}
