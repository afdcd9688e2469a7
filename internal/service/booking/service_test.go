package booking

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"mindful_server/internal/dao/gormdb/gormtest"
	"mindful_server/internal/dao/gormdb/repository"
	myredis "mindful_server/internal/dao/redis"
	"mindful_server/internal/dto/request"
	"mindful_server/internal/infrastructure/mq"
	"mindful_server/internal/infrastructure/mq/mqtest"
	"mindful_server/internal/model"
	"mindful_server/pkg/errorx"
	"mindful_server/pkg/util/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const absentID = "3f2504e0-4f89-41d3-9a0c-0305e82c3301"

func strPtr(s string) *string { return &s }

func newService(t *testing.T, strict bool) (*bookingService, *repository.Repositories, *mqtest.Recorder) {
	t.Helper()
	repos := gormtest.NewRepositories(t)
	events := &mqtest.Recorder{}
	return NewBookingService(repos, myredis.NoopCache{}, events, Options{StrictTransitions: strict}), repos, events
}

func TestCreateBookingDefaults(t *testing.T) {
	ctx := context.Background()
	svc, repos, events := newService(t, true)
	user := gormtest.SeedUser(t, repos, "Ana")

	before := time.Now().Add(-time.Second)
	booking, err := svc.Create(ctx, request.CreateBookingRequest{User: user.ID, Type: model.BookingMeditation, Notes: "  breathe  "})
	require.NoError(t, err)

	assert.Equal(t, model.BookingScheduled, booking.Status)
	assert.Equal(t, model.DefaultBookingDuration, booking.Duration)
	assert.Equal(t, "breathe", booking.Notes)
	assert.True(t, booking.Date.After(before))
	require.NotNil(t, booking.User)
	assert.Equal(t, "ana@example.com", booking.User.Email)
	assert.Equal(t, []string{mq.EventBookingCreated}, events.Types())
}

func TestCreateBookingOwnerChecks(t *testing.T) {
	ctx := context.Background()
	svc, repos, _ := newService(t, true)

	_, err := svc.Create(ctx, request.CreateBookingRequest{User: "abc", Type: model.BookingTherapy})
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))

	_, err = svc.Create(ctx, request.CreateBookingRequest{User: absentID, Type: model.BookingTherapy})
	assert.True(t, errorx.IsNotFound(err))

	_, total, err := repos.Booking.List(ctx, repository.BookingFilter{}, pagination.New(1, 0, 0))
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCreateBookingInitialStatus(t *testing.T) {
	ctx := context.Background()

	strict, repos, _ := newService(t, true)
	user := gormtest.SeedUser(t, repos, "Ned")
	_, err := strict.Create(ctx, request.CreateBookingRequest{User: user.ID, Type: model.BookingTherapy, Status: "completed"})
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
	assert.Contains(t, err.Error(), "new sessions start as scheduled")

	booking, err := strict.Create(ctx, request.CreateBookingRequest{User: user.ID, Type: model.BookingTherapy, Status: "scheduled"})
	require.NoError(t, err)
	assert.Equal(t, model.BookingScheduled, booking.Status)

	permissive := NewBookingService(repos, myredis.NoopCache{}, mq.NopPublisher{}, Options{})
	booking, err = permissive.Create(ctx, request.CreateBookingRequest{User: user.ID, Type: model.BookingTherapy, Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, model.BookingCompleted, booking.Status)
}

func TestCreateBookingAcceptsUppercaseIDs(t *testing.T) {
	ctx := context.Background()
	svc, repos, _ := newService(t, true)
	user := gormtest.SeedUser(t, repos, "Oli")

	booking, err := svc.Create(ctx, request.CreateBookingRequest{User: strings.ToUpper(user.ID), Type: model.BookingTherapy})
	require.NoError(t, err)
	assert.Equal(t, user.ID, booking.UserID)

	got, err := svc.Get(ctx, "{"+strings.ToUpper(booking.ID)+"}")
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)
}

func TestCreateBookingRejectsInvalidType(t *testing.T) {
	svc, repos, _ := newService(t, true)
	user := gormtest.SeedUser(t, repos, "Bo")

	_, err := svc.Create(context.Background(), request.CreateBookingRequest{User: user.ID, Type: "Yoga"})
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name   string
		strict bool
		path   []string
		wantOK bool
	}{
		{"scheduled to completed", true, []string{"completed"}, true},
		{"scheduled to in-progress to completed", true, []string{"in-progress", "completed"}, true},
		{"completed is terminal when strict", true, []string{"completed", "scheduled"}, false},
		{"cancelled to in-progress when strict", true, []string{"cancelled", "in-progress"}, false},
		{"anything goes when permissive", false, []string{"completed", "scheduled"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svc, repos, _ := newService(t, tt.strict)
			user := gormtest.SeedUser(t, repos, "Cy")
			booking, err := svc.Create(ctx, request.CreateBookingRequest{User: user.ID, Type: model.BookingCoaching})
			require.NoError(t, err)

			for _, status := range tt.path {
				_, err = svc.Update(ctx, booking.ID, request.UpdateBookingRequest{Status: strPtr(status)})
				if err != nil {
					break
				}
			}
			if tt.wantOK {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
			assert.Contains(t, err.Error(), "Invalid status transition from")
		})
	}
}

func TestStatusChangePublishesEvent(t *testing.T) {
	ctx := context.Background()
	svc, repos, events := newService(t, true)
	user := gormtest.SeedUser(t, repos, "Dee")
	booking, err := svc.Create(ctx, request.CreateBookingRequest{User: user.ID, Type: model.BookingTherapy})
	require.NoError(t, err)

	_, err = svc.Update(ctx, booking.ID, request.UpdateBookingRequest{Goal: strPtr("sleep better")})
	require.NoError(t, err)
	_, err = svc.Update(ctx, booking.ID, request.UpdateBookingRequest{Status: strPtr("cancelled")})
	require.NoError(t, err)

	got := events.Events()
	require.Len(t, got, 2)
	assert.Equal(t, mq.EventBookingStatusChanged, got[1].Type)
	var payload mq.BookingStatusChanged
	require.NoError(t, json.Unmarshal(got[1].Payload, &payload))
	assert.Equal(t, mq.BookingStatusChanged{UserID: user.ID, From: "scheduled", To: "cancelled"}, payload)
}

func TestUpdateBooking(t *testing.T) {
	ctx := context.Background()
	svc, repos, _ := newService(t, true)
	owner := gormtest.SeedUser(t, repos, "Eve")
	next := gormtest.SeedUser(t, repos, "Fay")
	booking, err := svc.Create(ctx, request.CreateBookingRequest{User: owner.ID, Type: model.BookingTherapy})
	require.NoError(t, err)

	rating := 5
	updated, err := svc.Update(ctx, booking.ID, request.UpdateBookingRequest{User: strPtr(next.ID), SessionRating: &rating})
	require.NoError(t, err)
	assert.Equal(t, next.ID, updated.UserID)
	require.NotNil(t, updated.SessionRating)
	assert.Equal(t, 5, *updated.SessionRating)

	_, err = svc.Update(ctx, booking.ID, request.UpdateBookingRequest{User: strPtr(absentID)})
	assert.True(t, errorx.IsNotFound(err))

	bad := 9
	_, err = svc.Update(ctx, booking.ID, request.UpdateBookingRequest{SessionRating: &bad})
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))

	_, err = svc.Update(ctx, absentID, request.UpdateBookingRequest{})
	assert.True(t, errorx.IsNotFound(err))
}

func TestListBookings(t *testing.T) {
	ctx := context.Background()
	svc, repos, _ := newService(t, true)
	user := gormtest.SeedUser(t, repos, "Gus")
	other := gormtest.SeedUser(t, repos, "Hal")

	for i := 0; i < 3; i++ {
		date := time.Now().Add(time.Duration(i) * time.Hour)
		_, err := svc.Create(ctx, request.CreateBookingRequest{User: user.ID, Type: model.BookingTherapy, Date: &date})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, request.CreateBookingRequest{User: other.ID, Type: model.BookingMeditation})
	require.NoError(t, err)

	all, err := svc.List(ctx, request.BookingListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 4, all.Count)
	assert.Equal(t, 1, all.TotalPages)

	// without a limit every page number means the single page
	far, err := svc.List(ctx, request.BookingListQuery{PageQuery: request.PageQuery{Page: 3}})
	require.NoError(t, err)
	assert.Equal(t, 4, far.Count)
	assert.Equal(t, 1, far.CurrentPage)
	assert.Equal(t, 1, far.TotalPages)

	meditation, err := svc.List(ctx, request.BookingListQuery{Type: model.BookingMeditation})
	require.NoError(t, err)
	assert.EqualValues(t, 1, meditation.Total)

	mine, err := svc.ListByUser(ctx, user.ID, request.PageQuery{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, mine.Count)
	assert.EqualValues(t, 3, mine.Total)
	assert.Equal(t, 2, mine.TotalPages)
	assert.False(t, mine.Data[0].Date.Before(mine.Data[1].Date))

	_, err = svc.ListByUser(ctx, "nope", request.PageQuery{})
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
}

func TestGetAndDeleteBooking(t *testing.T) {
	ctx := context.Background()
	svc, repos, _ := newService(t, true)
	user := gormtest.SeedUser(t, repos, "Ivy")
	booking, err := svc.Create(ctx, request.CreateBookingRequest{User: user.ID, Type: model.BookingTherapy})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "xyz")
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))

	require.NoError(t, svc.Delete(ctx, booking.ID))
	_, err = svc.Get(ctx, booking.ID)
	assert.True(t, errorx.IsNotFound(err))
	assert.True(t, errorx.IsNotFound(svc.Delete(ctx, booking.ID)))
}
