package domain

import "time"

// SymLinkResult is the outcome of one symlink registration call
type SymLinkResult struct {
	LinkName   string        `json:"link_name"`
	LinkPath   string        `json:"link_path"`
	URL        string        `json:"url"`
	StatusCode int           `json:"status_code"`
	Duration   time.Duration `json:"duration"`
}

// Accepted reports whether the server answered with a 2xx or 3xx status.
// Registration never fails on status alone; this only drives display.
func (r SymLinkResult) Accepted() bool {
	return r.StatusCode >= 200 && r.StatusCode < 400
}

// SymLinkReport is the result of a registration run
type SymLinkReport struct {
	Port      int             `json:"port"`
	Results   []SymLinkResult `json:"results"`
	Timestamp string          `json:"timestamp"`
}
