// Package deps contains interface definitions for the notification domain dependencies
package deps

import (
	"context"

	"github.com/Conte777/MovieFlow/internal/domain/catalog/entities"
)

// ReleaseSource returns the newest catalog releases
type ReleaseSource interface {
	QueryNewReleases(ctx context.Context, page int) (*entities.ResultPage, error)
}

// RecipientRepository loads notification recipients
type RecipientRepository interface {
	// ListRecipients returns telegram ids of users with notifications enabled
	ListRecipients(ctx context.Context) ([]int64, error)
}

// MessageSender delivers a broadcast message to one chat.
// This interface is used to break the cyclic dependency between UseCase and the Telegram handlers
type MessageSender interface {
	SendHTML(ctx context.Context, chatID int64, text string) error
}
