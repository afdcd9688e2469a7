package handler

import (
	"net/http"

	"mindful_server/internal/dto/request"
	"mindful_server/internal/service"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves /api/sessions, the booked one-to-one sessions.
type BookingHandler struct {
	bookingSvc service.BookingService
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

// Create handles POST /api/sessions.
func (h *BookingHandler) Create(c *gin.Context) {
	var req request.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err, "user and type are required fields")
		return
	}
	booking, err := h.bookingSvc.Create(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusCreated, booking)
}

// List handles GET /api/sessions with optional status and type filters.
func (h *BookingHandler) List(c *gin.Context) {
	var q request.BookingListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		HandleParamError(c, err, "")
		return
	}
	result, err := h.bookingSvc.List(c.Request.Context(), q)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandlePage(c, result)
}

// ListByUser handles GET /api/sessions/user/:id.
func (h *BookingHandler) ListByUser(c *gin.Context) {
	var q request.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		HandleParamError(c, err, "")
		return
	}
	result, err := h.bookingSvc.ListByUser(c.Request.Context(), c.Param("id"), q)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandlePage(c, result)
}

// Get handles GET /api/sessions/:id.
func (h *BookingHandler) Get(c *gin.Context) {
	booking, err := h.bookingSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusOK, booking)
}

// Update handles PUT /api/sessions/:id.
func (h *BookingHandler) Update(c *gin.Context) {
	var req request.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err, "")
		return
	}
	booking, err := h.bookingSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusOK, booking)
}

// Delete handles DELETE /api/sessions/:id.
func (h *BookingHandler) Delete(c *gin.Context) {
	if err := h.bookingSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	HandleDeleted(c, "Session deleted successfully")
}
