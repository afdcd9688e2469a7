// Package service declares the business interfaces consumed by the HTTP
// handlers and wires their implementations.
package service

import (
	"context"

	"mindful_server/internal/dto/request"
	"mindful_server/internal/dto/respond"
	"mindful_server/internal/model"
)

// UserService manages users and their mood history.
type UserService interface {
	Create(ctx context.Context, req request.CreateUserRequest) (*model.User, error)
	List(ctx context.Context, q request.PageQuery) (*respond.PageResult[model.User], error)
	ListByMood(ctx context.Context, mood string, q request.PageQuery) (*respond.PageResult[model.User], error)
	Get(ctx context.Context, id string) (*respond.UserDetail, error)
	Update(ctx context.Context, id string, req request.UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, id string) error
	RecordMood(ctx context.Context, id string, req request.RecordMoodRequest) (*model.User, error)
	MoodHistory(ctx context.Context, id string) (*respond.MoodHistory, error)
}

// BookingService manages booked sessions and their status lifecycle.
type BookingService interface {
	Create(ctx context.Context, req request.CreateBookingRequest) (*model.Booking, error)
	Get(ctx context.Context, id string) (*model.Booking, error)
	List(ctx context.Context, q request.BookingListQuery) (*respond.PageResult[model.Booking], error)
	ListByUser(ctx context.Context, userID string, q request.PageQuery) (*respond.PageResult[model.Booking], error)
	Update(ctx context.Context, id string, req request.UpdateBookingRequest) (*model.Booking, error)
	Delete(ctx context.Context, id string) error
}

// PostService manages the community feed.
type PostService interface {
	Create(ctx context.Context, req request.CreatePostRequest) (*model.Post, error)
	Get(ctx context.Context, id string) (*model.Post, error)
	List(ctx context.Context, q request.PostListQuery) (*respond.PageResult[model.Post], error)
	ListByUser(ctx context.Context, userID string, q request.PageQuery) (*respond.PageResult[model.Post], error)
	ListByMood(ctx context.Context, mood string, q request.PageQuery) (*respond.PageResult[model.Post], error)
	ListSupportive(ctx context.Context, q request.PageQuery) (*respond.PageResult[model.Post], error)
	Update(ctx context.Context, id string, req request.UpdatePostRequest) (*model.Post, error)
	Delete(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, id string, increment bool) (*model.Post, error)
	ToggleSupportive(ctx context.Context, id string) (*model.Post, error)
}

// LiveSessionService records group rooms.
type LiveSessionService interface {
	Create(ctx context.Context, req request.CreateLiveSessionRequest) (*model.LiveSession, error)
	List(ctx context.Context, q request.LiveSessionListQuery) ([]model.LiveSession, error)
}

// JournalService produces supportive replies to journal entries.
type JournalService interface {
	Reply(ctx context.Context, req request.JournalRequest) (*respond.JournalReply, error)
}
