package router

import "github.com/gin-gonic/gin"

func (rt *Router) RegisterPostRoutes(rg *gin.RouterGroup) {
	posts := rg.Group("/posts")
	{
		posts.POST("", rt.handlers.Post.Create)
		posts.GET("", rt.handlers.Post.List)
		posts.GET("/filter/supportive", rt.handlers.Post.ListSupportive)
		posts.GET("/mood/:mood", rt.handlers.Post.ListByMood)
		posts.GET("/user/:id", rt.handlers.Post.ListByUser)
		posts.GET("/:id", rt.handlers.Post.Get)
		posts.PUT("/:id", rt.handlers.Post.Update)
		posts.DELETE("/:id", rt.handlers.Post.Delete)
		posts.PATCH("/:id/like", rt.handlers.Post.ToggleLike)
		posts.PATCH("/:id/supportive", rt.handlers.Post.ToggleSupportive)
	}
}
