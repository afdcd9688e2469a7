package router

import "github.com/gin-gonic/gin"

func (rt *Router) RegisterLiveSessionRoutes(rg *gin.RouterGroup) {
	live := rg.Group("/livesessions")
	{
		live.POST("", rt.handlers.LiveSession.Create)
		live.GET("", rt.handlers.LiveSession.List)
	}
}
