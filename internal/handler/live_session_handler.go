package handler

import (
	"net/http"

	"mindful_server/internal/dto/request"
	"mindful_server/internal/service"

	"github.com/gin-gonic/gin"
)

// LiveSessionHandler serves /api/livesessions.
type LiveSessionHandler struct {
	liveSvc service.LiveSessionService
}

func NewLiveSessionHandler(liveSvc service.LiveSessionService) *LiveSessionHandler {
	return &LiveSessionHandler{liveSvc: liveSvc}
}

func (h *LiveSessionHandler) Create(c *gin.Context) {
	var req request.CreateLiveSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err, "roomId and host are required fields")
		return
	}
	session, err := h.liveSvc.Create(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusCreated, session)
}

// List returns every room, newest first, optionally filtered by status.
func (h *LiveSessionHandler) List(c *gin.Context) {
	var q request.LiveSessionListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		HandleParamError(c, err, "")
		return
	}
	sessions, err := h.liveSvc.List(c.Request.Context(), q)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(sessions),
		"data":    sessions,
	})
}
