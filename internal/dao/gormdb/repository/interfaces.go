// Package repository is the gorm-backed data access layer. Services depend on
// the interfaces below; Repositories aggregates the implementations.
package repository

import (
	"context"
	"errors"

	"mindful_server/internal/model"
	"mindful_server/pkg/errorx"
	"mindful_server/pkg/util/pagination"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

func wrapDBError(err error, msg string) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errorx.Wrap(err, errorx.CodeNotFound, msg)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errorx.Wrap(err, errorx.CodeDuplicate, msg)
	case errors.As(err, &verrs):
		return errorx.Wrap(err, errorx.CodeInvalidParam, "Validation failed")
	}
	return errorx.Wrap(err, errorx.CodeDBError, msg)
}

func wrapDBErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errorx.Wrapf(err, errorx.CodeNotFound, format, args...)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errorx.Wrapf(err, errorx.CodeDuplicate, format, args...)
	case errors.As(err, &verrs):
		return errorx.Wrap(err, errorx.CodeInvalidParam, "Validation failed")
	}
	return errorx.Wrapf(err, errorx.CodeDBError, format, args...)
}

// paginate applies limit/offset. A zero limit leaves the query unbounded.
func paginate(p pagination.Page) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.Limit <= 0 {
			return db
		}
		return db.Offset(p.Offset()).Limit(p.Limit)
	}
}

// UserRepository persists users and their mood history.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// List returns the public projection ordered by newest first.
	List(ctx context.Context, page pagination.Page) ([]model.User, int64, error)
	ListByMood(ctx context.Context, mood string, page pagination.Page) ([]model.User, int64, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
	AppendMood(ctx context.Context, entry *model.MoodEntry) error
	// MoodHistory is ordered oldest first.
	MoodHistory(ctx context.Context, userID string) ([]model.MoodEntry, error)
	BookingIDs(ctx context.Context, userID string) ([]string, error)
}

// BookingFilter narrows booking lists. Empty fields match everything.
type BookingFilter struct {
	UserID string
	Status string
	Type   string
}

// BookingRepository persists bookings. Reads join the owner's name and email.
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	// List orders by date descending.
	List(ctx context.Context, filter BookingFilter, page pagination.Page) ([]model.Booking, int64, error)
	Update(ctx context.Context, booking *model.Booking) error
	Delete(ctx context.Context, id string) error
}

// PostFilter narrows the feed. A nil Supportive matches both values.
type PostFilter struct {
	UserID     string
	Mood       string
	Supportive *bool
}

// PostRepository persists feed posts. Reads join the author projection.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id string) (*model.Post, error)
	// List orders by creation time descending.
	List(ctx context.Context, filter PostFilter, page pagination.Page) ([]model.Post, int64, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id string) error
	// AddLikes applies delta in a single UPDATE.
	AddLikes(ctx context.Context, id string, delta int) error
	// ToggleSupportive negates the flag in a single UPDATE.
	ToggleSupportive(ctx context.Context, id string) error
}

// LiveSessionRepository persists live session rooms with their participants.
type LiveSessionRepository interface {
	Create(ctx context.Context, session *model.LiveSession) error
	FindByRoomID(ctx context.Context, roomID string) (*model.LiveSession, error)
	List(ctx context.Context, status string) ([]model.LiveSession, error)
}

// Repositories aggregates every repository over one *gorm.DB.
type Repositories struct {
	db          *gorm.DB
	User        UserRepository
	Booking     BookingRepository
	Post        PostRepository
	LiveSession LiveSessionRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:          db,
		User:        NewUserRepository(db),
		Booking:     NewBookingRepository(db),
		Post:        NewPostRepository(db),
		LiveSession: NewLiveSessionRepository(db),
	}
}

// Transaction runs fn against repositories bound to one transaction.
// Returning an error rolls it back.
func (r *Repositories) Transaction(ctx context.Context, fn func(txRepos *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
