package router

import "github.com/gin-gonic/gin"

// RegisterJournalRoutes mounts the journal reply under both paths the client
// has used, behind the per-IP limiter.
func (rt *Router) RegisterJournalRoutes(rg *gin.RouterGroup) {
	chain := []gin.HandlerFunc{rt.handlers.Journal.Analyze}
	if rt.journalLimiter != nil {
		chain = append([]gin.HandlerFunc{rt.journalLimiter}, chain...)
	}
	rg.POST("/journal/analyze", chain...)
	rg.POST("/analyze", chain...)
}
