// Package session keeps per-chat browsing state in memory.
// Sessions live for the lifetime of the process; restarts reset every user to the category keyboard.
package session

import (
	"time"

	"github.com/Conte777/MovieFlow/internal/domain/catalog/entities"
)

// Session is the browsing position of one chat
type Session struct {
	Category     entities.Category
	Page         int
	LastActionAt time.Time
}

// HasCategory reports whether a category is selected
func (s Session) HasCategory() bool {
	return s.Category != ""
}

// SearchContext is the last keyword search of one chat
type SearchContext struct {
	Query string
	Page  int
}
