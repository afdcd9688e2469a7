package model

import (
	"strings"

	"gorm.io/gorm"
)

// Post is an entry in the community feed.
type Post struct {
	Base
	UserID     string `gorm:"column:user_id;type:char(36);index;not null" json:"-" validate:"required"`
	User       *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty" validate:"-"`
	Mood       string `gorm:"column:mood;type:varchar(50);index" json:"mood" validate:"max=50"`
	Content    string `gorm:"column:content;type:text;not null" json:"content" validate:"required"`
	Likes      int    `gorm:"column:likes;not null;default:0" json:"likes"`
	Replies    int    `gorm:"column:replies;not null;default:0" json:"replies" validate:"min=0"`
	Supportive bool   `gorm:"column:supportive;index;not null;default:false" json:"supportive"`
}

func (Post) TableName() string {
	return "posts"
}

func (p *Post) BeforeSave(tx *gorm.DB) error {
	p.Content = strings.TrimSpace(p.Content)
	return Validate(p)
}
