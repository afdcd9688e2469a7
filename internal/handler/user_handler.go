package handler

import (
	"net/http"

	"mindful_server/internal/dto/request"
	"mindful_server/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler serves /api/users.
type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Create handles POST /api/users.
func (h *UserHandler) Create(c *gin.Context) {
	var req request.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err, "name and email are required fields")
		return
	}
	user, err := h.userSvc.Create(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusCreated, user)
}

// List handles GET /api/users.
func (h *UserHandler) List(c *gin.Context) {
	var q request.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		HandleParamError(c, err, "")
		return
	}
	result, err := h.userSvc.List(c.Request.Context(), q)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandlePage(c, result)
}

// ListByMood handles GET /api/users/mood/:mood.
func (h *UserHandler) ListByMood(c *gin.Context) {
	var q request.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		HandleParamError(c, err, "")
		return
	}
	result, err := h.userSvc.ListByMood(c.Request.Context(), c.Param("mood"), q)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandlePage(c, result)
}

// Get handles GET /api/users/:id. The body includes the user's booking ids.
func (h *UserHandler) Get(c *gin.Context) {
	detail, err := h.userSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusOK, detail)
}

// Update handles PUT /api/users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	var req request.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err, "")
		return
	}
	user, err := h.userSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusOK, user)
}

// Delete handles DELETE /api/users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	HandleDeleted(c, "User deleted successfully")
}

// RecordMood handles POST /api/users/:id/mood.
func (h *UserHandler) RecordMood(c *gin.Context) {
	var req request.RecordMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err, "mood is a required field")
		return
	}
	user, err := h.userSvc.RecordMood(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusOK, user)
}

// MoodHistory handles GET /api/users/:id/mood-history.
func (h *UserHandler) MoodHistory(c *gin.Context) {
	history, err := h.userSvc.MoodHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusOK, history)
}
