package handler

import (
	"net/http"

	"mindful_server/internal/dto/request"
	"mindful_server/internal/service"
	"mindful_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// JournalHandler serves the journal reply endpoint. Its bodies are the bare
// {reply} / {error, reply} shape rather than the success envelope.
type JournalHandler struct {
	journalSvc service.JournalService
}

func NewJournalHandler(journalSvc service.JournalService) *JournalHandler {
	return &JournalHandler{journalSvc: journalSvc}
}

// Analyze handles POST /api/journal/analyze and its /api/analyze alias.
func (h *JournalHandler) Analyze(c *gin.Context) {
	var req request.JournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must be a JSON object."})
		return
	}

	reply, err := h.journalSvc.Reply(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		if reply == nil {
			HandleError(c, err)
			return
		}
		c.JSON(errorx.HTTPStatus(errorx.GetCode(err)), reply)
		return
	}
	c.JSON(http.StatusOK, reply)
}
