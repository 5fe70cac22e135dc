// Package deps contains interface definitions for the movie browsing domain dependencies
package deps

import (
	"github.com/Conte777/MovieFlow/internal/domain/catalog/entities"
	"github.com/Conte777/MovieFlow/internal/domain/session"
)

// SessionStore keeps per-chat browsing state
type SessionStore interface {
	// Get returns the session without creating one
	Get(key int64) (session.Session, bool)

	// SetCategory overwrites the session with {category, 1}
	SetCategory(key int64, category entities.Category)

	// AdvancePage increments the page and returns it
	AdvancePage(key int64) int

	// Reset sets the session to {none, 1}
	Reset(key int64)

	// BeginSearch marks the chat as waiting for a query
	BeginSearch(key int64)

	// AwaitingQuery reports whether the next text is a query
	AwaitingQuery(key int64) bool

	// SetSearch stores the search context
	SetSearch(key int64, query string, page int)

	// Search returns the stored search context
	Search(key int64) (session.SearchContext, bool)

	// ClearSearch drops the search context
	ClearSearch(key int64)

	// Remember caches presented items
	Remember(key int64, items ...entities.Movie)

	// Lookup returns a presented item
	Lookup(key int64, movieID int64) (entities.Movie, bool)
}

// RateGate throttles show-more requests per user
type RateGate interface {
	Allow(identity int64) bool
}
