// Package dto contains data transfer objects for the movie browsing domain
package dto

import (
	"github.com/Conte777/MovieFlow/internal/domain/catalog/entities"
)

// Source tells where a batch came from
type Source string

const (
	SourceCategory Source = "category"
	SourceSearch   Source = "search"
)

// PresentationBatch is a batch of items to show to the user
type PresentationBatch struct {
	Items    []entities.Movie  `json:"items"`
	HasMore  bool              `json:"hasMore"`
	Source   Source            `json:"source"`
	Category entities.Category `json:"category,omitempty"`
	Query    string            `json:"query,omitempty"`
	Page     int               `json:"page"`
}
