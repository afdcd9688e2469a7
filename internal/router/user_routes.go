package router

import "github.com/gin-gonic/gin"

func (rt *Router) RegisterUserRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.POST("", rt.handlers.User.Create)
		users.GET("", rt.handlers.User.List)
		users.GET("/mood/:mood", rt.handlers.User.ListByMood)
		users.GET("/:id", rt.handlers.User.Get)
		users.PUT("/:id", rt.handlers.User.Update)
		users.DELETE("/:id", rt.handlers.User.Delete)
		users.POST("/:id/mood", rt.handlers.User.RecordMood)
		users.GET("/:id/mood-history", rt.handlers.User.MoodHistory)
	}
}
