package model

import (
	"time"

	"gorm.io/gorm"
)

// Live session lifecycle.
const (
	LiveSessionActive    = "active"
	LiveSessionCompleted = "completed"
	LiveSessionCancelled = "cancelled"
)

// Participant defaults.
const (
	ExpressionNeutral = "neutral"
	ParticipantActive = "active"
)

// AIAnalysis is the aggregate scoring attached to a live session. It is filled
// by an external scorer; the server only stores it.
type AIAnalysis struct {
	FaceExpression string `gorm:"column:face_expression;type:varchar(50)" json:"faceExpression"`
	EmotionalState string `gorm:"column:emotional_state;type:varchar(50)" json:"emotionalState"`
	Posture        string `gorm:"column:posture;type:varchar(50)" json:"posture"`
	Breathing      string `gorm:"column:breathing;type:varchar(50)" json:"breathing"`
	OverallScore   int    `gorm:"column:overall_score;not null;default:0" json:"overallScore" validate:"min=0,max=100"`
}

// LiveSession is a group room record.
type LiveSession struct {
	Base
	RoomID       string            `gorm:"column:room_id;type:varchar(100);uniqueIndex;not null" json:"roomId" validate:"required,max=100"`
	HostID       string            `gorm:"column:host_id;type:char(36);index;not null" json:"-" validate:"required"`
	Host         *User             `gorm:"foreignKey:HostID;constraint:OnDelete:CASCADE" json:"host,omitempty" validate:"-"`
	Participants []LiveParticipant `gorm:"foreignKey:LiveSessionID;constraint:OnDelete:CASCADE" json:"participants" validate:"dive"`
	StartTime    time.Time         `gorm:"column:start_time" json:"startTime"`
	EndTime      *time.Time        `gorm:"column:end_time" json:"endTime,omitempty"`
	AIAnalysis   AIAnalysis        `gorm:"embedded;embeddedPrefix:ai_" json:"aiAnalysis"`
	Status       string            `gorm:"column:status;type:varchar(20);index;not null" json:"status" validate:"oneof=active completed cancelled"`
}

func (LiveSession) TableName() string {
	return "live_sessions"
}

func (s *LiveSession) BeforeSave(tx *gorm.DB) error {
	if s.StartTime.IsZero() {
		s.StartTime = time.Now()
	}
	if s.Status == "" {
		s.Status = LiveSessionActive
	}
	for i := range s.Participants {
		s.Participants[i].applyDefaults(i)
	}
	return Validate(s)
}

// LiveParticipant is one seat in a live session. UserID is empty for guests.
type LiveParticipant struct {
	Base
	LiveSessionID string  `gorm:"column:live_session_id;type:char(36);index:idx_participant_order;not null" json:"-"`
	Position      int     `gorm:"column:position;index:idx_participant_order" json:"-"`
	UserID        *string `gorm:"column:user_id;type:char(36);index" json:"-"`
	User          *User   `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"userId,omitempty" validate:"-"`
	Name          string  `gorm:"column:name;type:varchar(100);not null" json:"name" validate:"required,max=100"`
	CalmScore     int     `gorm:"column:calm_score;not null;default:0" json:"calmScore" validate:"min=0,max=100"`
	Expression    string  `gorm:"column:expression;type:varchar(20);not null" json:"expression" validate:"oneof=happy sad angry neutral surprised fearful"`
	Status        string  `gorm:"column:status;type:varchar(20);not null" json:"status" validate:"oneof=active inactive disconnected"`
}

func (LiveParticipant) TableName() string {
	return "live_participants"
}

func (p *LiveParticipant) applyDefaults(position int) {
	p.Position = position
	if p.Expression == "" {
		p.Expression = ExpressionNeutral
	}
	if p.Status == "" {
		p.Status = ParticipantActive
	}
}

func (p *LiveParticipant) BeforeSave(tx *gorm.DB) error {
	if p.Expression == "" {
		p.Expression = ExpressionNeutral
	}
	if p.Status == "" {
		p.Status = ParticipantActive
	}
	return Validate(p)
}
