package handler

import (
	"mindful_server/internal/service"
)

// Handlers aggregates every handler for the router.
type Handlers struct {
	User        *UserHandler
	Booking     *BookingHandler
	Post        *PostHandler
	LiveSession *LiveSessionHandler
	Journal     *JournalHandler
}

// NewHandlers wires one handler per service.
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		User:        NewUserHandler(svc.User),
		Booking:     NewBookingHandler(svc.Booking),
		Post:        NewPostHandler(svc.Post),
		LiveSession: NewLiveSessionHandler(svc.LiveSession),
		Journal:     NewJournalHandler(svc.Journal),
	}
}
