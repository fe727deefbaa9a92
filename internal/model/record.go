package model

import "time"

// Release describes one published version of a project from any source.
type Release struct {
	Name    string    `json:"name"`
	Version string    `json:"version"`
	Date    time.Time `json:"date"`
	URL     string    `json:"url,omitempty"`
}

// When returns the release date; records are ordered by it.
func (r Release) When() time.Time { return r.Date }

// Post describes one syndicated blog entry.
type Post struct {
	Type  string    `json:"type"` // feed category label, e.g. blog, art, food
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
	URL   string    `json:"url,omitempty"`
}

func (p Post) When() time.Time { return p.Date }
