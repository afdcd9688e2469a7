// Package model defines the persisted entities.
// Every table uses a UUID v4 string primary key assigned on create.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the primary key and timestamps shared by all tables.
type Base struct {
	ID        string    `gorm:"column:id;primaryKey;type:char(36)" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// BeforeCreate assigns an id unless the caller already chose one.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// IsValidID reports whether s is a well-formed record id.
func IsValidID(s string) bool {
	_, ok := ParseID(s)
	return ok
}

// ParseID returns s in the lowercase hyphenated form ids are stored in.
// uuid.Parse also takes uppercase, braced and urn forms, and those would
// miss the stored row.
func ParseID(s string) (string, bool) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}
	return u.String(), true
}
