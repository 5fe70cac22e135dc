package tmdb

import (
	"strings"

	"github.com/Conte777/MovieFlow/internal/domain/catalog/entities"
)

const untitled = "Без названия"

type movieDTO struct {
	ID          int64   `json:"id"`
	Title       *string `json:"title"`
	Overview    *string `json:"overview"`
	ReleaseDate *string `json:"release_date"`
	PosterPath  *string `json:"poster_path"`
}

type pageDTO struct {
	Page         int        `json:"page"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
	Results      []movieDTO `json:"results"`
}

type statusDTO struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// toEntity applies the catalog defaults: missing title becomes a placeholder,
// missing overview and poster become empty strings, release year is the date prefix.
func (m movieDTO) toEntity(imageBaseURL string) entities.Movie {
	title := strings.TrimSpace(deref(m.Title))
	if title == "" {
		title = untitled
	}

	date := deref(m.ReleaseDate)
	year := ""
	if len(date) >= 4 {
		year = date[:4]
	}

	poster := ""
	if path := deref(m.PosterPath); path != "" {
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		poster = imageBaseURL + path
	}

	return entities.Movie{
		ID:          m.ID,
		Title:       title,
		ReleaseYear: year,
		ReleaseDate: date,
		Overview:    deref(m.Overview),
		PosterURL:   poster,
	}
}

func (p pageDTO) toEntity(imageBaseURL string) *entities.ResultPage {
	items := make([]entities.Movie, 0, len(p.Results))
	for _, m := range p.Results {
		if m.ID <= 0 {
			continue
		}
		items = append(items, m.toEntity(imageBaseURL))
	}

	return &entities.ResultPage{
		Page:       p.Page,
		TotalPages: p.TotalPages,
		Items:      items,
	}
}
