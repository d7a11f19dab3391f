package steamgrid

import "go.trai.ch/shelf/internal/core/domain"

// GridsResponse is the envelope returned by the grids endpoint.
type GridsResponse struct {
	Success bool     `json:"success"`
	Data    []Grid   `json:"data"`
	Errors  []string `json:"errors,omitempty"`
}

// Grid is a single grid image as returned by the service.
// Only the fields used for selection are decoded.
type Grid struct {
	ID     int     `json:"id"`
	Score  float64 `json:"score"`
	Style  string  `json:"style"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	URL    string  `json:"url"`
	Thumb  string  `json:"thumb,omitempty"`
	Mime   string  `json:"mime,omitempty"`
	NSFW   bool    `json:"nsfw,omitempty"`
}

// Candidate converts g to a domain candidate.
func (g Grid) Candidate() domain.GridCandidate {
	return domain.GridCandidate{
		ID:     itoa(g.ID),
		Style:  domain.GridStyle(g.Style),
		Width:  g.Width,
		Height: g.Height,
		URL:    g.URL,
		Score:  g.Score,
	}
}
