package request

import "time"

// CreateBookingRequest is the body of POST /api/sessions.
type CreateBookingRequest struct {
	User          string     `json:"user" binding:"required"`
	Type          string     `json:"type" binding:"required,oneof=Therapy Meditation Coaching"`
	Date          *time.Time `json:"date"`
	Duration      *int       `json:"duration" binding:"omitempty,min=1,max=300"`
	Therapist     string     `json:"therapist" binding:"max=100"`
	Goal          string     `json:"goal" binding:"max=500"`
	Notes         string     `json:"notes"`
	Status        string     `json:"status" binding:"omitempty,oneof=scheduled completed cancelled in-progress"`
	SessionRating *int       `json:"sessionRating" binding:"omitempty,min=1,max=5"`
}

// UpdateBookingRequest replaces only the fields present in the body.
type UpdateBookingRequest struct {
	User          *string    `json:"user"`
	Type          *string    `json:"type" binding:"omitempty,oneof=Therapy Meditation Coaching"`
	Date          *time.Time `json:"date"`
	Duration      *int       `json:"duration" binding:"omitempty,min=1,max=300"`
	Therapist     *string    `json:"therapist" binding:"omitempty,max=100"`
	Goal          *string    `json:"goal" binding:"omitempty,max=500"`
	Notes         *string    `json:"notes"`
	Status        *string    `json:"status" binding:"omitempty,oneof=scheduled completed cancelled in-progress"`
	SessionRating *int       `json:"sessionRating" binding:"omitempty,min=1,max=5"`
}

// BookingListQuery filters GET /api/sessions.
type BookingListQuery struct {
	PageQuery
	Status string `form:"status" binding:"omitempty,oneof=scheduled completed cancelled in-progress"`
	Type   string `form:"type" binding:"omitempty,oneof=Therapy Meditation Coaching"`
}
