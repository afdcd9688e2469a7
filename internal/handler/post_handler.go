package handler

import (
	"errors"
	"io"
	"net/http"

	"mindful_server/internal/dto/request"
	"mindful_server/internal/service"

	"github.com/gin-gonic/gin"
)

// PostHandler serves the community feed under /api/posts.
type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{postSvc: postSvc}
}

func (h *PostHandler) Create(c *gin.Context) {
	var req request.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err, "user and content are required fields")
		return
	}
	post, err := h.postSvc.Create(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusCreated, post)
}

// List accepts optional mood and supportive filters.
func (h *PostHandler) List(c *gin.Context) {
	var q request.PostListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		HandleParamError(c, err, "")
		return
	}
	result, err := h.postSvc.List(c.Request.Context(), q)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandlePage(c, result)
}

func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.postSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusOK, post)
}

func (h *PostHandler) ListByUser(c *gin.Context) {
	var q request.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		HandleParamError(c, err, "")
		return
	}
	result, err := h.postSvc.ListByUser(c.Request.Context(), c.Param("id"), q)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandlePage(c, result)
}

func (h *PostHandler) ListByMood(c *gin.Context) {
	var q request.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		HandleParamError(c, err, "")
		return
	}
	result, err := h.postSvc.ListByMood(c.Request.Context(), c.Param("mood"), q)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandlePage(c, result)
}

func (h *PostHandler) ListSupportive(c *gin.Context) {
	var q request.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		HandleParamError(c, err, "")
		return
	}
	result, err := h.postSvc.ListSupportive(c.Request.Context(), q)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandlePage(c, result)
}

func (h *PostHandler) Update(c *gin.Context) {
	var req request.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err, "")
		return
	}
	post, err := h.postSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusOK, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.postSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	HandleDeleted(c, "Post deleted successfully")
}

// ToggleLike handles PATCH /api/posts/:id/like. An empty body or a missing
// increment counts as a like.
func (h *PostHandler) ToggleLike(c *gin.Context) {
	var req request.ToggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		HandleParamError(c, err, "")
		return
	}
	increment := req.Increment == nil || *req.Increment
	post, err := h.postSvc.ToggleLike(c.Request.Context(), c.Param("id"), increment)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusOK, post)
}

// ToggleSupportive handles PATCH /api/posts/:id/supportive.
func (h *PostHandler) ToggleSupportive(c *gin.Context) {
	post, err := h.postSvc.ToggleSupportive(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusOK, post)
}
