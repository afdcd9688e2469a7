package model

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		ok       bool
	}{
		{BookingScheduled, BookingCompleted, true},
		{BookingScheduled, BookingCancelled, true},
		{BookingScheduled, BookingInProgress, true},
		{BookingInProgress, BookingCompleted, true},
		{BookingCompleted, BookingCompleted, true},
		{BookingCompleted, BookingScheduled, false},
		{BookingCancelled, BookingInProgress, false},
		{BookingInProgress, BookingCancelled, false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestBookingDefaultsAndValidation(t *testing.T) {
	b := &Booking{UserID: "u1", Type: BookingMeditation, Notes: "  breathe  "}
	require.NoError(t, b.BeforeSave(nil))
	assert.Equal(t, BookingScheduled, b.Status)
	assert.Equal(t, DefaultBookingDuration, b.Duration)
	assert.Equal(t, "breathe", b.Notes)
	assert.False(t, b.Date.IsZero())

	b.Type = "Yoga"
	err := b.BeforeSave(nil)
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "type", verrs[0].Field())

	rating := 6
	b.Type = BookingTherapy
	b.SessionRating = &rating
	assert.Error(t, b.BeforeSave(nil))
}

func TestLiveSessionParticipantDefaults(t *testing.T) {
	s := &LiveSession{RoomID: "room-1", HostID: "h", Participants: []LiveParticipant{{Name: "Ana"}, {Name: "Bo", Expression: "happy"}}}
	require.NoError(t, s.BeforeSave(nil))
	assert.Equal(t, LiveSessionActive, s.Status)
	assert.Equal(t, ExpressionNeutral, s.Participants[0].Expression)
	assert.Equal(t, ParticipantActive, s.Participants[1].Status)
	assert.Equal(t, 1, s.Participants[1].Position)

	s.Participants[0].Expression = "bored"
	assert.Error(t, s.BeforeSave(nil))
}

func TestUserValidation(t *testing.T) {
	u := &User{Name: " Ana ", Email: " ANA@Example.com "}
	require.NoError(t, u.BeforeSave(nil))
	assert.Equal(t, "Ana", u.Name)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, DefaultMood, u.Mood)

	assert.Error(t, (&User{Name: "x"}).BeforeSave(nil))
}

func TestIsValidID(t *testing.T) {
	assert.True(t, IsValidID("3f2504e0-4f89-41d3-9a0c-0305e82c3301"))
	assert.False(t, IsValidID("not-an-id"))
	assert.False(t, IsValidID(""))
}

func TestParseIDCanonicalizes(t *testing.T) {
	const want = "3f2504e0-4f89-41d3-9a0c-0305e82c3301"
	for _, in := range []string{
		want,
		"3F2504E0-4F89-41D3-9A0C-0305E82C3301",
		"{3f2504e0-4f89-41d3-9a0c-0305e82c3301}",
		"urn:uuid:3f2504e0-4f89-41d3-9a0c-0305e82c3301",
		"3f2504e04f8941d39a0c0305e82c3301",
	} {
		got, ok := ParseID(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseID("not-an-id")
	assert.False(t, ok)
}
