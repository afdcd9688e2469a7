package booking

import (
	"context"
	"fmt"
	"time"

	"mindful_server/internal/dao/gormdb/repository"
	myredis "mindful_server/internal/dao/redis"
	"mindful_server/internal/dto/request"
	"mindful_server/internal/dto/respond"
	"mindful_server/internal/infrastructure/mq"
	"mindful_server/internal/model"
	"mindful_server/pkg/constants"
	"mindful_server/pkg/errorx"
	"mindful_server/pkg/util/pagination"

	"go.uber.org/zap"
)

var (
	errInvalidID     = errorx.New(errorx.CodeInvalidParam, "Invalid session ID format")
	errInvalidUserID = errorx.New(errorx.CodeInvalidParam, "Invalid user ID format")
	errNotFound      = errorx.New(errorx.CodeNotFound, "Session not found")
	errUserNotFound  = errorx.New(errorx.CodeNotFound, "User not found")
)

// Options tunes booking rules.
type Options struct {
	// StrictTransitions rejects status changes outside the lifecycle graph.
	StrictTransitions bool
}

type bookingService struct {
	repos     *repository.Repositories
	cache     myredis.AsyncCacheService
	publisher mq.Publisher
	opts      Options
}

func NewBookingService(repos *repository.Repositories, cache myredis.AsyncCacheService, publisher mq.Publisher, opts Options) *bookingService {
	return &bookingService{repos: repos, cache: cache, publisher: publisher, opts: opts}
}

func fail(op string, err error) error {
	if errorx.IsClientError(err) {
		return err
	}
	zap.L().Error(op, zap.Error(err))
	return errorx.ErrServerBusy
}

func listKey(userID string, page pagination.Page) string {
	return fmt.Sprintf("%s%s:%d:%d", constants.CACHE_USER_BOOKING_LIST, userID, page.Page, page.Limit)
}

// Create checks the owner inside the same transaction as the insert. With
// strict transitions a booking can only start out scheduled.
func (b *bookingService) Create(ctx context.Context, req request.CreateBookingRequest) (*model.Booking, error) {
	userID, ok := model.ParseID(req.User)
	if !ok {
		return nil, errInvalidUserID
	}
	req.User = userID
	if b.opts.StrictTransitions && req.Status != "" && model.BookingStatus(req.Status) != model.BookingScheduled {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "Invalid initial status %s, new sessions start as %s", req.Status, model.BookingScheduled)
	}

	booking := &model.Booking{
		UserID:        req.User,
		Type:          req.Type,
		Therapist:     req.Therapist,
		Goal:          req.Goal,
		Notes:         req.Notes,
		Status:        model.BookingStatus(req.Status),
		SessionRating: req.SessionRating,
	}
	if req.Date != nil {
		booking.Date = *req.Date
	}
	if req.Duration != nil {
		booking.Duration = *req.Duration
	}

	err := b.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		if _, err := tx.User.FindByID(ctx, req.User); err != nil {
			if errorx.IsNotFound(err) {
				return errUserNotFound
			}
			return err
		}
		return tx.Booking.Create(ctx, booking)
	})
	if err != nil {
		return nil, fail("create booking", err)
	}

	b.invalidate(ctx, booking.UserID)
	b.publish(ctx, mq.EventBookingCreated, booking.ID, mq.BookingStatusChanged{UserID: booking.UserID, To: string(booking.Status)})
	return b.find(ctx, booking.ID)
}

func (b *bookingService) Get(ctx context.Context, id string) (*model.Booking, error) {
	id, ok := model.ParseID(id)
	if !ok {
		return nil, errInvalidID
	}
	return b.find(ctx, id)
}

// List returns every booking on one page unless limit is given.
func (b *bookingService) List(ctx context.Context, q request.BookingListQuery) (*respond.PageResult[model.Booking], error) {
	page := pagination.New(q.Page, q.Limit, 0)
	bookings, total, err := b.repos.Booking.List(ctx, repository.BookingFilter{Status: q.Status, Type: q.Type}, page)
	if err != nil {
		return nil, fail("list bookings", err)
	}
	return &respond.PageResult[model.Booking]{Page: respond.NewPage(page, len(bookings), total), Data: bookings}, nil
}

// ListByUser is read-through cached per user and page.
func (b *bookingService) ListByUser(ctx context.Context, userID string, q request.PageQuery) (*respond.PageResult[model.Booking], error) {
	userID, ok := model.ParseID(userID)
	if !ok {
		return nil, errInvalidUserID
	}
	page := pagination.New(q.Page, q.Limit, 0)
	key := listKey(userID, page)

	gen := b.cache.Generation()
	cached, ok, err := myredis.GetJSON[respond.PageResult[model.Booking]](ctx, b.cache, key)
	if err != nil {
		zap.L().Warn("read booking list cache", zap.String("key", key), zap.Error(err))
	}
	if ok {
		return &cached, nil
	}

	bookings, total, err := b.repos.Booking.List(ctx, repository.BookingFilter{UserID: userID}, page)
	if err != nil {
		return nil, fail("list user bookings", err)
	}
	result := &respond.PageResult[model.Booking]{Page: respond.NewPage(page, len(bookings), total), Data: bookings}

	myredis.WriteBack(b.cache, key, result, time.Duration(constants.REDIS_TIMEOUT)*time.Minute, gen)
	return result, nil
}

// Update applies the non-nil fields. Moving a booking to another user checks
// the new owner exists; both owners' cached views are dropped. A status
// change publishes booking.status_changed after the row is saved.
func (b *bookingService) Update(ctx context.Context, id string, req request.UpdateBookingRequest) (*model.Booking, error) {
	id, ok := model.ParseID(id)
	if !ok {
		return nil, errInvalidID
	}
	booking, err := b.find(ctx, id)
	if err != nil {
		return nil, err
	}
	previousOwner := booking.UserID
	previousStatus := booking.Status

	if req.User != nil {
		owner, ok := model.ParseID(*req.User)
		if !ok {
			return nil, errInvalidUserID
		}
		if owner != booking.UserID {
			if _, err := b.repos.User.FindByID(ctx, owner); err != nil {
				if errorx.IsNotFound(err) {
					return nil, errUserNotFound
				}
				return nil, fail("find booking owner", err)
			}
			booking.UserID = owner
		}
	}
	if req.Status != nil {
		next := model.BookingStatus(*req.Status)
		if b.opts.StrictTransitions && !booking.Status.CanTransitionTo(next) {
			return nil, errorx.Newf(errorx.CodeInvalidParam, "Invalid status transition from %s to %s", booking.Status, next)
		}
		booking.Status = next
	}
	applyFields(booking, req)
	// the preloaded owner would otherwise be upserted with the row
	booking.User = nil

	if err := b.repos.Booking.Update(ctx, booking); err != nil {
		return nil, fail("update booking", err)
	}

	b.invalidate(ctx, previousOwner)
	if booking.UserID != previousOwner {
		b.invalidate(ctx, booking.UserID)
	}
	if booking.Status != previousStatus {
		b.publish(ctx, mq.EventBookingStatusChanged, booking.ID, mq.BookingStatusChanged{
			UserID: booking.UserID,
			From:   string(previousStatus),
			To:     string(booking.Status),
		})
	}
	return b.find(ctx, id)
}

func applyFields(booking *model.Booking, req request.UpdateBookingRequest) {
	if req.Type != nil {
		booking.Type = *req.Type
	}
	if req.Date != nil {
		booking.Date = *req.Date
	}
	if req.Duration != nil {
		booking.Duration = *req.Duration
	}
	if req.Therapist != nil {
		booking.Therapist = *req.Therapist
	}
	if req.Goal != nil {
		booking.Goal = *req.Goal
	}
	if req.Notes != nil {
		booking.Notes = *req.Notes
	}
	if req.SessionRating != nil {
		booking.SessionRating = req.SessionRating
	}
}

func (b *bookingService) Delete(ctx context.Context, id string) error {
	id, ok := model.ParseID(id)
	if !ok {
		return errInvalidID
	}
	booking, err := b.find(ctx, id)
	if err != nil {
		return err
	}
	if err := b.repos.Booking.Delete(ctx, id); err != nil {
		if errorx.IsNotFound(err) {
			return errNotFound
		}
		return fail("delete booking", err)
	}
	b.invalidate(ctx, booking.UserID)
	return nil
}

func (b *bookingService) find(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := b.repos.Booking.FindByID(ctx, id)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errNotFound
		}
		return nil, fail("find booking", err)
	}
	return booking, nil
}

// invalidate drops the owner's cached booking lists and user detail, which
// embeds the booking ids.
func (b *bookingService) invalidate(ctx context.Context, userID string) {
	if err := b.cache.DeleteByPattern(ctx, constants.CACHE_USER_BOOKING_LIST+userID+"*"); err != nil {
		zap.L().Warn("invalidate booking list cache", zap.String("user_id", userID), zap.Error(err))
	}
	if err := b.cache.Delete(ctx, constants.CACHE_USER_INFO+userID); err != nil {
		zap.L().Warn("invalidate user cache", zap.String("user_id", userID), zap.Error(err))
	}
}

func (b *bookingService) publish(ctx context.Context, eventType, bookingID string, payload mq.BookingStatusChanged) {
	ev, err := mq.NewEvent(eventType, bookingID, payload)
	if err == nil {
		err = b.publisher.Publish(ctx, ev)
	}
	if err != nil {
		zap.L().Warn("publish booking event", zap.String("type", eventType), zap.String("booking_id", bookingID), zap.Error(err))
	}
}
