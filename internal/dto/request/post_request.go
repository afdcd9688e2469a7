package request

// CreatePostRequest is the body of POST /api/posts.
type CreatePostRequest struct {
	User       string `json:"user" binding:"required"`
	Content    string `json:"content" binding:"required"`
	Mood       string `json:"mood" binding:"max=50"`
	Supportive bool   `json:"supportive"`
}

// UpdatePostRequest replaces only the fields present in the body.
type UpdatePostRequest struct {
	Content    *string `json:"content" binding:"omitempty,min=1"`
	Mood       *string `json:"mood" binding:"omitempty,max=50"`
	Supportive *bool   `json:"supportive"`
	Replies    *int    `json:"replies" binding:"omitempty,min=0"`
}

// ToggleLikeRequest is the body of PATCH /api/posts/:id/like. A missing
// increment counts as true.
type ToggleLikeRequest struct {
	Increment *bool `json:"increment"`
}

// PostListQuery filters GET /api/posts. Supportive is "true" or "false".
type PostListQuery struct {
	PageQuery
	Mood       string `form:"mood"`
	Supportive string `form:"supportive" binding:"omitempty,oneof=true false"`
}
