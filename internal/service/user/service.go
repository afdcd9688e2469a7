package user

import (
	"context"
	"strings"
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
	errInvalidID  = errorx.New(errorx.CodeInvalidParam, "Invalid user ID format")
	errNotFound   = errorx.New(errorx.CodeNotFound, "User not found")
	errEmailTaken = errorx.New(errorx.CodeUserExist, "User with this email already exists")
)

type userService struct {
	repos     *repository.Repositories
	cache     myredis.AsyncCacheService
	publisher mq.Publisher
}

func NewUserService(repos *repository.Repositories, cache myredis.AsyncCacheService, publisher mq.Publisher) *userService {
	return &userService{repos: repos, cache: cache, publisher: publisher}
}

func cacheKey(id string) string {
	return constants.CACHE_USER_INFO + id
}

// fail passes client errors through and hides everything else behind a
// generic 500 after logging it.
func fail(op string, err error) error {
	if errorx.IsClientError(err) {
		return err
	}
	zap.L().Error(op, zap.Error(err))
	return errorx.ErrServerBusy
}

func (u *userService) Create(ctx context.Context, req request.CreateUserRequest) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := u.repos.User.FindByEmail(ctx, email); err == nil {
		return nil, errEmailTaken
	} else if !errorx.IsNotFound(err) {
		return nil, fail("find user by email", err)
	}

	user := &model.User{Name: req.Name, Email: email, Mood: req.Mood}
	if err := u.repos.User.Create(ctx, user); err != nil {
		if errorx.GetCode(err) == errorx.CodeDuplicate {
			return nil, errEmailTaken
		}
		return nil, fail("create user", err)
	}
	return user, nil
}

func (u *userService) List(ctx context.Context, q request.PageQuery) (*respond.PageResult[model.User], error) {
	page := pagination.New(q.Page, q.Limit, constants.DEFAULT_USER_LIMIT)
	users, total, err := u.repos.User.List(ctx, page)
	if err != nil {
		return nil, fail("list users", err)
	}
	return &respond.PageResult[model.User]{Page: respond.NewPage(page, len(users), total), Data: users}, nil
}

func (u *userService) ListByMood(ctx context.Context, mood string, q request.PageQuery) (*respond.PageResult[model.User], error) {
	page := pagination.New(q.Page, q.Limit, constants.DEFAULT_MOOD_LIMIT)
	users, total, err := u.repos.User.ListByMood(ctx, mood, page)
	if err != nil {
		return nil, fail("list users by mood", err)
	}
	return &respond.PageResult[model.User]{Page: respond.NewPage(page, len(users), total), Data: users}, nil
}

// Get is read-through cached; every mutation of the user or their bookings
// drops the entry.
func (u *userService) Get(ctx context.Context, id string) (*respond.UserDetail, error) {
	id, ok := model.ParseID(id)
	if !ok {
		return nil, errInvalidID
	}

	gen := u.cache.Generation()
	cached, ok, err := myredis.GetJSON[respond.UserDetail](ctx, u.cache, cacheKey(id))
	if err != nil {
		zap.L().Warn("read user cache", zap.String("id", id), zap.Error(err))
	}
	if ok {
		return &cached, nil
	}

	user, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	ids, err := u.repos.User.BookingIDs(ctx, id)
	if err != nil {
		return nil, fail("list booking ids", err)
	}
	if ids == nil {
		ids = []string{}
	}
	detail := &respond.UserDetail{User: *user, Sessions: ids}

	myredis.WriteBack(u.cache, cacheKey(id), detail, time.Duration(constants.REDIS_TIMEOUT)*time.Minute, gen)
	return detail, nil
}

func (u *userService) Update(ctx context.Context, id string, req request.UpdateUserRequest) (*model.User, error) {
	id, ok := model.ParseID(id)
	if !ok {
		return nil, errInvalidID
	}
	user, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			other, err := u.repos.User.FindByEmail(ctx, email)
			switch {
			case err == nil && other.ID != id:
				return nil, errEmailTaken
			case err != nil && !errorx.IsNotFound(err):
				return nil, fail("find user by email", err)
			}
		}
		user.Email = email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	previousMood := user.Mood
	if req.Mood != nil {
		user.Mood = *req.Mood
	}

	if err := u.save(ctx, user, previousMood); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userService) RecordMood(ctx context.Context, id string, req request.RecordMoodRequest) (*model.User, error) {
	id, ok := model.ParseID(id)
	if !ok {
		return nil, errInvalidID
	}
	user, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Mood = req.Mood
	// recording the same mood again still adds a point to the history
	if err := u.save(ctx, user, ""); err != nil {
		return nil, err
	}
	return user, nil
}

// save persists user and, when the mood differs from previousMood, appends a
// history entry in the same transaction.
func (u *userService) save(ctx context.Context, user *model.User, previousMood string) error {
	moodChanged := user.Mood != previousMood
	err := u.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		if err := tx.User.Update(ctx, user); err != nil {
			return err
		}
		if !moodChanged {
			return nil
		}
		return tx.User.AppendMood(ctx, &model.MoodEntry{UserID: user.ID, Mood: user.Mood, Timestamp: time.Now()})
	})
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeDuplicate {
			return errEmailTaken
		}
		return fail("update user", err)
	}
	u.invalidate(ctx, user.ID)

	if moodChanged {
		u.publish(ctx, user.ID, user.Mood)
	}
	return nil
}

func (u *userService) Delete(ctx context.Context, id string) error {
	id, ok := model.ParseID(id)
	if !ok {
		return errInvalidID
	}
	if err := u.repos.User.Delete(ctx, id); err != nil {
		if errorx.IsNotFound(err) {
			return errNotFound
		}
		return fail("delete user", err)
	}
	u.invalidate(ctx, id)
	return nil
}

func (u *userService) MoodHistory(ctx context.Context, id string) (*respond.MoodHistory, error) {
	id, ok := model.ParseID(id)
	if !ok {
		return nil, errInvalidID
	}
	user, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	history, err := u.repos.User.MoodHistory(ctx, id)
	if err != nil {
		return nil, fail("mood history", err)
	}
	if history == nil {
		history = []model.MoodEntry{}
	}
	return &respond.MoodHistory{UserID: id, CurrentMood: user.Mood, History: history}, nil
}

func (u *userService) find(ctx context.Context, id string) (*model.User, error) {
	user, err := u.repos.User.FindByID(ctx, id)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errNotFound
		}
		return nil, fail("find user", err)
	}
	return user, nil
}

// invalidate drops every cached view that embeds the user: the detail, their
// booking lists (owner projection) and the live session lists (host and
// participant projections, and rooms removed with the user).
func (u *userService) invalidate(ctx context.Context, id string) {
	if err := u.cache.Delete(ctx, cacheKey(id)); err != nil {
		zap.L().Warn("invalidate user cache", zap.String("id", id), zap.Error(err))
	}
	if err := u.cache.DeleteByPattern(ctx, constants.CACHE_USER_BOOKING_LIST+id+"*"); err != nil {
		zap.L().Warn("invalidate booking list cache", zap.String("user_id", id), zap.Error(err))
	}
	if err := u.cache.DeleteByPattern(ctx, constants.CACHE_LIVE_SESSION_LIST+"*"); err != nil {
		zap.L().Warn("invalidate live session cache", zap.String("user_id", id), zap.Error(err))
	}
}

func (u *userService) publish(ctx context.Context, id, mood string) {
	ev, err := mq.NewEvent(mq.EventUserMoodRecorded, id, map[string]string{"mood": mood})
	if err == nil {
		err = u.publisher.Publish(ctx, ev)
	}
	if err != nil {
		zap.L().Warn("publish mood event", zap.String("user_id", id), zap.Error(err))
	}
}
