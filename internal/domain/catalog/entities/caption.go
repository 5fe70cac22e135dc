package entities

import (
	"fmt"
	"html"
	"unicode/utf8"
)

// OverviewLimit is the number of overview characters shown in captions
const OverviewLimit = 300

const unknownRelease = "неизвестно"

// Caption renders the HTML preview caption of the movie
func (m Movie) Caption() string {
	return caption(m.Title, m.ReleaseYear, m.Overview)
}

// Announcement renders the HTML block used in new-release broadcasts
func (m Movie) Announcement() string {
	return caption(m.Title, m.ReleaseDate, m.Overview)
}

func caption(title, release, overview string) string {
	if release == "" {
		release = unknownRelease
	}
	return fmt.Sprintf("<b>%s</b> (%s)\n%s...",
		html.EscapeString(title),
		html.EscapeString(release),
		html.EscapeString(truncateRunes(overview, OverviewLimit)),
	)
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}

const noOverview = "Описание отсутствует."

// SavedCaption renders the caption of a saved favorite, which carries no release
func (m Movie) SavedCaption() string {
	overview := m.Overview
	if overview == "" {
		overview = noOverview
	}
	short := truncateRunes(overview, OverviewLimit)
	if short != overview {
		short += "..."
	}
	return fmt.Sprintf("<b>%s</b>\n\n%s", html.EscapeString(m.Title), html.EscapeString(short))
}
