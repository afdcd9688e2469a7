package model

import (
	"strings"
	"time"

	"mindful_server/pkg/constants"

	"gorm.io/gorm"
)

// DefaultMood is applied when a user or journal request carries no mood.
const DefaultMood = constants.DEFAULT_MOOD

// User is a member of the community.
type User struct {
	Base
	Name        string      `gorm:"column:name;type:varchar(100);not null" json:"name" validate:"required,max=100"`
	Email       string      `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email,max=255"`
	Mood        string      `gorm:"column:mood;type:varchar(50);index" json:"mood" validate:"max=50"`
	MoodHistory []MoodEntry `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"moodHistory,omitempty" validate:"-"`
}

func (User) TableName() string {
	return "users"
}

// BeforeSave normalizes the record and enforces field constraints.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Mood == "" {
		u.Mood = DefaultMood
	}
	return Validate(u)
}

// MoodEntry is one point of a user's mood history.
type MoodEntry struct {
	Base
	UserID    string    `gorm:"column:user_id;type:char(36);index:idx_mood_user_time;not null" json:"-"`
	Mood      string    `gorm:"column:mood;type:varchar(50);not null" json:"mood" validate:"required,max=50"`
	Timestamp time.Time `gorm:"column:timestamp;index:idx_mood_user_time" json:"timestamp"`
}

func (MoodEntry) TableName() string {
	return "mood_entries"
}

func (m *MoodEntry) BeforeSave(tx *gorm.DB) error {
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}
	return Validate(m)
}
