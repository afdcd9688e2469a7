package repository

import (
	"context"

	"mindful_server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type liveSessionRepository struct {
	db *gorm.DB
}

func NewLiveSessionRepository(db *gorm.DB) LiveSessionRepository {
	return &liveSessionRepository{db: db}
}

func userSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "mood")
}

// Create inserts the room and then its participants, in one transaction.
func (r *liveSessionRepository) Create(ctx context.Context, session *model.LiveSession) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		participants := session.Participants
		session.Participants = nil
		defer func() { session.Participants = participants }()

		if err := tx.Omit(clause.Associations).Create(session).Error; err != nil {
			return err
		}
		if len(participants) == 0 {
			return nil
		}
		for i := range participants {
			participants[i].LiveSessionID = session.ID
			participants[i].Position = i
		}
		return tx.Omit(clause.Associations).Create(&participants).Error
	})
	if err != nil {
		return wrapDBErrorf(err, "create live session room=%s", session.RoomID)
	}
	return nil
}

func (r *liveSessionRepository) FindByRoomID(ctx context.Context, roomID string) (*model.LiveSession, error) {
	var session model.LiveSession
	if err := r.withMembers(r.db.WithContext(ctx)).First(&session, "room_id = ?", roomID).Error; err != nil {
		return nil, wrapDBErrorf(err, "live session room=%s", roomID)
	}
	return &session, nil
}

func (r *liveSessionRepository) List(ctx context.Context, status string) ([]model.LiveSession, error) {
	query := r.withMembers(r.db.WithContext(ctx))
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var sessions []model.LiveSession
	if err := query.Order("start_time DESC").Find(&sessions).Error; err != nil {
		return nil, wrapDBError(err, "list live sessions")
	}
	return sessions, nil
}

func (r *liveSessionRepository) withMembers(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Host", userSummary).
		Preload("Participants", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Participants.User", userSummary)
}
