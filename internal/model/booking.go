package model

import (
	"slices"
	"strings"
	"time"

	"gorm.io/gorm"
)

// BookingStatus is the lifecycle state of a booked session.
type BookingStatus string

const (
	BookingScheduled  BookingStatus = "scheduled"
	BookingInProgress BookingStatus = "in-progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

// Session kinds a user can book.
const (
	BookingTherapy    = "Therapy"
	BookingMeditation = "Meditation"
	BookingCoaching   = "Coaching"
)

const DefaultBookingDuration = 45

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingScheduled:  {BookingInProgress, BookingCompleted, BookingCancelled},
	BookingInProgress: {BookingCompleted},
}

// CanTransitionTo reports whether a booking in status s may move to next.
// Writing the current status again is always allowed.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s == next {
		return true
	}
	return slices.Contains(bookingTransitions[s], next)
}

// Booking is a scheduled therapy, meditation or coaching session.
type Booking struct {
	Base
	UserID        string        `gorm:"column:user_id;type:char(36);index;not null" json:"-" validate:"required"`
	User          *User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty" validate:"-"`
	Date          time.Time     `gorm:"column:date;index" json:"date"`
	Type          string        `gorm:"column:type;type:varchar(20);not null" json:"type" validate:"required,oneof=Therapy Meditation Coaching"`
	Duration      int           `gorm:"column:duration;not null" json:"duration" validate:"min=1,max=300"`
	Therapist     string        `gorm:"column:therapist;type:varchar(100)" json:"therapist,omitempty" validate:"max=100"`
	Goal          string        `gorm:"column:goal;type:varchar(500)" json:"goal,omitempty" validate:"max=500"`
	Notes         string        `gorm:"column:notes;type:text" json:"notes,omitempty"`
	Status        BookingStatus `gorm:"column:status;type:varchar(20);index;not null" json:"status" validate:"oneof=scheduled completed cancelled in-progress"`
	SessionRating *int          `gorm:"column:session_rating" json:"sessionRating,omitempty" validate:"omitempty,min=1,max=5"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) BeforeSave(tx *gorm.DB) error {
	if b.Date.IsZero() {
		b.Date = time.Now()
	}
	if b.Duration == 0 {
		b.Duration = DefaultBookingDuration
	}
	if b.Status == "" {
		b.Status = BookingScheduled
	}
	b.Notes = strings.TrimSpace(b.Notes)
	b.Therapist = strings.TrimSpace(b.Therapist)
	b.Goal = strings.TrimSpace(b.Goal)
	return Validate(b)
}
