package request

// CreateUserRequest is the body of POST /api/users.
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Email string `json:"email" binding:"required,email,max=255"`
	Mood  string `json:"mood" binding:"max=50"`
}

// UpdateUserRequest replaces only the fields present in the body.
type UpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Email *string `json:"email" binding:"omitempty,email,max=255"`
	Mood  *string `json:"mood" binding:"omitempty,max=50"`
}

// RecordMoodRequest is the body of POST /api/users/:id/mood.
type RecordMoodRequest struct {
	Mood string `json:"mood" binding:"required,max=50"`
}
