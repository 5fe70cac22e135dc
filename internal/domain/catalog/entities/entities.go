// Package entities contains catalog domain entities
package entities

// Movie is a catalog item decoded once at the catalog client boundary.
// Optional fields are empty strings when the catalog omits them.
type Movie struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ReleaseYear string `json:"releaseYear"`
	ReleaseDate string `json:"releaseDate"`
	Overview    string `json:"overview"`
	PosterURL   string `json:"posterUrl"`
}

// HasPoster reports whether the movie has a poster reference
func (m Movie) HasPoster() bool {
	return m.PosterURL != ""
}

// ResultPage is one page of catalog results
type ResultPage struct {
	Page       int     `json:"page"`
	TotalPages int     `json:"totalPages"`
	Items      []Movie `json:"items"`
}

// Empty reports whether the page carries no items
func (p *ResultPage) Empty() bool {
	return p == nil || len(p.Items) == 0
}

// Take returns at most n items of the page
func (p *ResultPage) Take(n int) []Movie {
	if p == nil {
		return nil
	}
	if len(p.Items) <= n {
		return p.Items
	}
	return p.Items[:n]
}
