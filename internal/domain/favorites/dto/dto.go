// Package dto contains data transfer objects for the favorites domain
package dto

// AddOutcome is the result of an add-to-favorites attempt
type AddOutcome string

const (
	AddOutcomeAdded         AddOutcome = "added"
	AddOutcomeAlreadyExists AddOutcome = "already_exists"
	AddOutcomeLimitReached  AddOutcome = "limit_reached"
	AddOutcomeFailed        AddOutcome = "failed"
)

// FavoriteItem is a catalog item the user wants to save
type FavoriteItem struct {
	MovieID   int64  `json:"movieId" validate:"gt=0"`
	Title     string `json:"title" validate:"required,max=512"`
	Overview  string `json:"overview"`
	PosterURL string `json:"posterUrl" validate:"omitempty,url"`
}

// FavoriteAction is the change kind carried by FavoriteChangedEvent
type FavoriteAction string

const (
	FavoriteActionAdded   FavoriteAction = "added"
	FavoriteActionRemoved FavoriteAction = "removed"
)

// FavoriteChangedEvent represents a Kafka event for a favorites change
type FavoriteChangedEvent struct {
	UserID     int64          `json:"user_id"`
	MovieID    int64          `json:"movie_id"`
	MovieTitle string         `json:"movie_title,omitempty"`
	Action     FavoriteAction `json:"action"`
	OccurredAt string         `json:"occurred_at"`
}
