// Package respond holds response bodies that are not plain models.
package respond

import (
	"mindful_server/internal/model"
	"mindful_server/pkg/util/pagination"
)

// Page describes one page of a list result.
type Page struct {
	Count       int   `json:"count"`
	Total       int64 `json:"total"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
}

// PageResult is a list result with its page metadata.
type PageResult[T any] struct {
	Page
	Data []T `json:"data"`
}

// UserDetail is a user with the ids of their bookings.
type UserDetail struct {
	model.User
	Sessions []string `json:"sessions"`
}

// MoodHistory is the body of GET /api/users/:id/mood-history.
type MoodHistory struct {
	UserID      string            `json:"userId"`
	CurrentMood string            `json:"currentMood"`
	History     []model.MoodEntry `json:"history"`
}

// JournalReply is the body of the journal endpoint. Error is set only on
// failure, in which case Reply holds the fallback text.
type JournalReply struct {
	Error string `json:"error,omitempty"`
	Reply string `json:"reply,omitempty"`
}

// NewPage builds page metadata for count rows out of total.
func NewPage(p pagination.Page, count int, total int64) Page {
	return Page{
		Count:       count,
		Total:       total,
		CurrentPage: p.Page,
		TotalPages:  p.TotalPages(total),
	}
}
