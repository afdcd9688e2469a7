package livesession

import (
	"context"
	"time"

	"mindful_server/internal/dao/gormdb/repository"
	myredis "mindful_server/internal/dao/redis"
	"mindful_server/internal/dto/request"
	"mindful_server/internal/infrastructure/mq"
	"mindful_server/internal/model"
	"mindful_server/pkg/constants"
	"mindful_server/pkg/errorx"

	"go.uber.org/zap"
)

var (
	errInvalidHostID        = errorx.New(errorx.CodeInvalidParam, "Invalid host ID format")
	errInvalidParticipantID = errorx.New(errorx.CodeInvalidParam, "Invalid participant user ID format")
	errHostNotFound         = errorx.New(errorx.CodeNotFound, "User not found")
	errParticipantNotFound  = errorx.New(errorx.CodeNotFound, "Participant user not found")
	errRoomTaken            = errorx.New(errorx.CodeDuplicate, "Live session with this roomId already exists")
)

type liveSessionService struct {
	repos     *repository.Repositories
	cache     myredis.AsyncCacheService
	publisher mq.Publisher
}

func NewLiveSessionService(repos *repository.Repositories, cache myredis.AsyncCacheService, publisher mq.Publisher) *liveSessionService {
	return &liveSessionService{repos: repos, cache: cache, publisher: publisher}
}

func fail(op string, err error) error {
	if errorx.IsClientError(err) {
		return err
	}
	zap.L().Error(op, zap.Error(err))
	return errorx.ErrServerBusy
}

func listKey(status string) string {
	if status == "" {
		status = "all"
	}
	return constants.CACHE_LIVE_SESSION_LIST + status
}

func (s *liveSessionService) Create(ctx context.Context, req request.CreateLiveSessionRequest) (*model.LiveSession, error) {
	hostID, ok := model.ParseID(req.Host)
	if !ok {
		return nil, errInvalidHostID
	}
	req.Host = hostID
	session, err := newLiveSession(req)
	if err != nil {
		return nil, err
	}

	if _, err := s.repos.LiveSession.FindByRoomID(ctx, req.RoomID); err == nil {
		return nil, errRoomTaken
	} else if !errorx.IsNotFound(err) {
		return nil, fail("find live session", err)
	}

	err = s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		if _, err := tx.User.FindByID(ctx, req.Host); err != nil {
			if errorx.IsNotFound(err) {
				return errHostNotFound
			}
			return err
		}
		for _, p := range session.Participants {
			if p.UserID == nil {
				continue
			}
			if _, err := tx.User.FindByID(ctx, *p.UserID); err != nil {
				if errorx.IsNotFound(err) {
					return errParticipantNotFound
				}
				return err
			}
		}
		return tx.LiveSession.Create(ctx, session)
	})
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeDuplicate {
			return nil, errRoomTaken
		}
		return nil, fail("create live session", err)
	}

	if err := s.cache.DeleteByPattern(ctx, constants.CACHE_LIVE_SESSION_LIST+"*"); err != nil {
		zap.L().Warn("invalidate live session cache", zap.Error(err))
	}
	if ev, err := mq.NewEvent(mq.EventLiveSessionCreated, session.ID, map[string]string{"roomId": session.RoomID, "hostId": session.HostID}); err == nil {
		if err := s.publisher.Publish(ctx, ev); err != nil {
			zap.L().Warn("publish live session event", zap.String("room_id", session.RoomID), zap.Error(err))
		}
	}

	created, err := s.repos.LiveSession.FindByRoomID(ctx, session.RoomID)
	if err != nil {
		return nil, fail("reload live session", err)
	}
	return created, nil
}

func newLiveSession(req request.CreateLiveSessionRequest) (*model.LiveSession, error) {
	session := &model.LiveSession{
		RoomID:  req.RoomID,
		HostID:  req.Host,
		EndTime: req.EndTime,
		Status:  req.Status,
	}
	if req.StartTime != nil {
		session.StartTime = *req.StartTime
	}
	if req.AIAnalysis != nil {
		session.AIAnalysis = model.AIAnalysis{
			FaceExpression: req.AIAnalysis.FaceExpression,
			EmotionalState: req.AIAnalysis.EmotionalState,
			Posture:        req.AIAnalysis.Posture,
			Breathing:      req.AIAnalysis.Breathing,
			OverallScore:   req.AIAnalysis.OverallScore,
		}
	}
	for _, p := range req.Participants {
		participant := model.LiveParticipant{
			Name:       p.Name,
			CalmScore:  p.CalmScore,
			Expression: p.Expression,
			Status:     p.Status,
		}
		if p.UserID != "" {
			userID, ok := model.ParseID(p.UserID)
			if !ok {
				return nil, errInvalidParticipantID
			}
			participant.UserID = &userID
		}
		session.Participants = append(session.Participants, participant)
	}
	return session, nil
}

// List is read-through cached per status filter.
func (s *liveSessionService) List(ctx context.Context, q request.LiveSessionListQuery) ([]model.LiveSession, error) {
	key := listKey(q.Status)
	gen := s.cache.Generation()
	cached, ok, err := myredis.GetJSON[[]model.LiveSession](ctx, s.cache, key)
	if err != nil {
		zap.L().Warn("read live session cache", zap.Error(err))
	}
	if ok {
		return cached, nil
	}

	sessions, err := s.repos.LiveSession.List(ctx, q.Status)
	if err != nil {
		return nil, fail("list live sessions", err)
	}
	if sessions == nil {
		sessions = []model.LiveSession{}
	}
	myredis.WriteBack(s.cache, key, sessions, time.Duration(constants.REDIS_TIMEOUT)*time.Minute, gen)
	return sessions, nil
}
