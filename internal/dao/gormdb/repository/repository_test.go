package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"mindful_server/internal/config"
	"mindful_server/internal/dao/gormdb"
	"mindful_server/internal/model"
	"mindful_server/pkg/errorx"
	"mindful_server/pkg/util/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepos(t *testing.T) *Repositories {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gormdb.Open(&config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, gormdb.Migrate(db))
	t.Cleanup(func() { _ = gormdb.Close(db) })
	return NewRepositories(db)
}

func seedUser(t *testing.T, repos *Repositories, name string) *model.User {
	t.Helper()
	user := &model.User{Name: name, Email: strings.ToLower(name) + "@example.com"}
	require.NoError(t, repos.User.Create(context.Background(), user))
	return user
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	ana := seedUser(t, repos, "Ana")
	assert.True(t, model.IsValidID(ana.ID))
	assert.Equal(t, model.DefaultMood, ana.Mood)

	got, err := repos.User.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, ana.ID, got.ID)

	err = repos.User.Create(ctx, &model.User{Name: "Copy", Email: "ana@example.com"})
	assert.Equal(t, errorx.CodeDuplicate, errorx.GetCode(err))

	_, err = repos.User.FindByID(ctx, "3f2504e0-4f89-41d3-9a0c-0305e82c3301")
	assert.True(t, errorx.IsNotFound(err))

	err = repos.User.Create(ctx, &model.User{Name: "NoMail"})
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
}

func TestUserListAndMood(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	for i := 0; i < 5; i++ {
		u := seedUser(t, repos, fmt.Sprintf("user%d", i))
		if i%2 == 0 {
			u.Mood = "happy"
			require.NoError(t, repos.User.Update(ctx, u))
		}
	}

	users, total, err := repos.User.List(ctx, pagination.New(2, 2, 50))
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, users, 2)

	happy, total, err := repos.User.ListByMood(ctx, "happy", pagination.New(1, 0, 10))
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, happy, 3)
}

func TestMoodHistoryOrder(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	user := seedUser(t, repos, "Mo")

	now := time.Now()
	require.NoError(t, repos.User.AppendMood(ctx, &model.MoodEntry{UserID: user.ID, Mood: "sad", Timestamp: now}))
	require.NoError(t, repos.User.AppendMood(ctx, &model.MoodEntry{UserID: user.ID, Mood: "calm", Timestamp: now.Add(-time.Hour)}))

	history, err := repos.User.MoodHistory(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "calm", history[0].Mood)
	assert.Equal(t, "sad", history[1].Mood)
}

func TestBookingRepository(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	user := seedUser(t, repos, "Bea")
	other := seedUser(t, repos, "Cy")

	base := time.Now()
	for i, typ := range []string{model.BookingTherapy, model.BookingMeditation, model.BookingCoaching} {
		b := &model.Booking{UserID: user.ID, Type: typ, Date: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, repos.Booking.Create(ctx, b))
	}
	require.NoError(t, repos.Booking.Create(ctx, &model.Booking{UserID: other.ID, Type: model.BookingTherapy}))

	all, total, err := repos.Booking.List(ctx, BookingFilter{UserID: user.ID}, pagination.New(1, 0, 0))
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, all, 3)
	assert.Equal(t, model.BookingCoaching, all[0].Type, "newest date first")
	require.NotNil(t, all[0].User)
	assert.Equal(t, "Bea", all[0].User.Name)

	therapy, total, err := repos.Booking.List(ctx, BookingFilter{Type: model.BookingTherapy}, pagination.New(1, 1, 0))
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, therapy, 1)

	ids, err := repos.User.BookingIDs(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 3)

	found, err := repos.Booking.FindByID(ctx, all[0].ID)
	require.NoError(t, err)
	found.Status = model.BookingCompleted
	require.NoError(t, repos.Booking.Update(ctx, found))

	again, err := repos.Booking.FindByID(ctx, found.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingCompleted, again.Status)

	require.NoError(t, repos.Booking.Delete(ctx, found.ID))
	assert.True(t, errorx.IsNotFound(repos.Booking.Delete(ctx, found.ID)))
}

func TestPostLikesAndSupportive(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	user := seedUser(t, repos, "Dee")

	post := &model.Post{UserID: user.ID, Content: "hello", Mood: "calm"}
	require.NoError(t, repos.Post.Create(ctx, post))

	require.NoError(t, repos.Post.AddLikes(ctx, post.ID, -1))
	require.NoError(t, repos.Post.AddLikes(ctx, post.ID, -1))
	got, err := repos.Post.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, -2, got.Likes)
	assert.Equal(t, "Dee", got.User.Name)

	require.NoError(t, repos.Post.ToggleSupportive(ctx, post.ID))
	got, _ = repos.Post.FindByID(ctx, post.ID)
	assert.True(t, got.Supportive)
	require.NoError(t, repos.Post.ToggleSupportive(ctx, post.ID))
	got, _ = repos.Post.FindByID(ctx, post.ID)
	assert.False(t, got.Supportive)

	missing := "3f2504e0-4f89-41d3-9a0c-0305e82c3301"
	assert.True(t, errorx.IsNotFound(repos.Post.AddLikes(ctx, missing, 1)))
}

func TestPostListFilters(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	user := seedUser(t, repos, "Eve")

	for i := 0; i < 4; i++ {
		p := &model.Post{UserID: user.ID, Content: fmt.Sprintf("post %d", i), Mood: "calm", Supportive: i%2 == 0}
		require.NoError(t, repos.Post.Create(ctx, p))
	}
	yes := true
	posts, total, err := repos.Post.List(ctx, PostFilter{Supportive: &yes}, pagination.New(1, 10, 10))
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, posts, 2)

	posts, total, err = repos.Post.List(ctx, PostFilter{Mood: "sad"}, pagination.New(1, 10, 10))
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, posts)
}

func TestLiveSessionRepository(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	host := seedUser(t, repos, "Host")
	guest := seedUser(t, repos, "Guest")

	session := &model.LiveSession{
		RoomID: "room-42",
		HostID: host.ID,
		Participants: []model.LiveParticipant{
			{UserID: &guest.ID, Name: "Guest", CalmScore: 60},
			{Name: "Walk-in", Expression: "happy"},
		},
	}
	require.NoError(t, repos.LiveSession.Create(ctx, session))
	assert.Len(t, session.Participants, 2)

	sessions, err := repos.LiveSession.List(ctx, model.LiveSessionActive)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	got := sessions[0]
	assert.Equal(t, "Host", got.Host.Name)
	require.Len(t, got.Participants, 2)
	assert.Equal(t, "Guest", got.Participants[0].User.Name)
	assert.Nil(t, got.Participants[1].User)
	assert.Equal(t, model.ExpressionNeutral, got.Participants[0].Expression)

	dup := &model.LiveSession{RoomID: "room-42", HostID: host.ID}
	assert.Equal(t, errorx.CodeDuplicate, errorx.GetCode(repos.LiveSession.Create(ctx, dup)))

	none, err := repos.LiveSession.List(ctx, model.LiveSessionCompleted)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	err := repos.Transaction(ctx, func(tx *Repositories) error {
		if err := tx.User.Create(ctx, &model.User{Name: "Tmp", Email: "tmp@example.com"}); err != nil {
			return err
		}
		return errorx.New(errorx.CodeInvalidParam, "abort")
	})
	require.Error(t, err)

	_, err = repos.User.FindByEmail(ctx, "tmp@example.com")
	assert.True(t, errorx.IsNotFound(err))
}

func TestDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	host := seedUser(t, repos, "Host")
	guest := seedUser(t, repos, "Guest")

	booking := &model.Booking{UserID: guest.ID, Type: model.BookingTherapy}
	require.NoError(t, repos.Booking.Create(ctx, booking))
	post := &model.Post{UserID: guest.ID, Content: "hi"}
	require.NoError(t, repos.Post.Create(ctx, post))
	require.NoError(t, repos.User.AppendMood(ctx, &model.MoodEntry{UserID: guest.ID, Mood: "sad", Timestamp: time.Now()}))
	require.NoError(t, repos.LiveSession.Create(ctx, &model.LiveSession{
		RoomID:       "hosted-by-host",
		HostID:       host.ID,
		Participants: []model.LiveParticipant{{UserID: &guest.ID, Name: "Guest"}},
	}))
	require.NoError(t, repos.LiveSession.Create(ctx, &model.LiveSession{RoomID: "hosted-by-guest", HostID: guest.ID}))

	require.NoError(t, repos.User.Delete(ctx, guest.ID))

	_, err := repos.Booking.FindByID(ctx, booking.ID)
	assert.True(t, errorx.IsNotFound(err))
	_, err = repos.Post.FindByID(ctx, post.ID)
	assert.True(t, errorx.IsNotFound(err))
	history, err := repos.User.MoodHistory(ctx, guest.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
	_, err = repos.LiveSession.FindByRoomID(ctx, "hosted-by-guest")
	assert.True(t, errorx.IsNotFound(err))

	kept, err := repos.LiveSession.FindByRoomID(ctx, "hosted-by-host")
	require.NoError(t, err)
	require.Len(t, kept.Participants, 1)
	assert.Equal(t, "Guest", kept.Participants[0].Name)
	assert.Nil(t, kept.Participants[0].UserID)
	assert.Nil(t, kept.Participants[0].User)
}
