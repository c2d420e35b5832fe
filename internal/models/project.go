// Package models defines the core data types shared by storage, API, and client.
package models

import (
	"time"
)

// Project represents a song or piece being learned, with its metadata and
// practice history.
//
// Tags holds the serialized JSON-array text exactly as stored in the
// database; use EncodeTags/DecodeTags to convert. Optional numeric and
// boolean fields are pointers so that "absent" survives the round trip as
// JSON null.
type Project struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Artist       string    `json:"artist"`
	ChordsURL    string    `json:"chordsUrl"`
	RecordingURL string    `json:"recordingUrl"`
	Tags         string    `json:"tags"`
	Notes        string    `json:"notes"`
	Capo         *int      `json:"capo"`
	Memorized    *bool     `json:"memorized"`
	Transpose    *int      `json:"transpose"`
	CreatedAt    time.Time `json:"createdAt"`
	LastUpdated  time.Time `json:"lastUpdated"`
}

// NewProject creates a Project with initialized timestamps and empty tags.
func NewProject(title, artist string) *Project {
	now := time.Now().UTC()
	return &Project{
		Title:       title,
		Artist:      artist,
		Tags:        emptyTags,
		CreatedAt:   now,
		LastUpdated: now,
	}
}

// ProjectUpdate describes a partial edit to a project. Nil fields are left
// unchanged by Merge.
type ProjectUpdate struct {
	Title        *string
	Artist       *string
	ChordsURL    *string
	RecordingURL *string
	Tags         *string
	Notes        *string
	Capo         *int
	Memorized    *bool
	Transpose    *int
}

// Merge applies the provided fields of u to the project and refreshes
// LastUpdated. Fields that are nil in u keep their prior value.
func (p *Project) Merge(u ProjectUpdate) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Artist != nil {
		p.Artist = *u.Artist
	}
	if u.ChordsURL != nil {
		p.ChordsURL = *u.ChordsURL
	}
	if u.RecordingURL != nil {
		p.RecordingURL = *u.RecordingURL
	}
	if u.Tags != nil {
		p.Tags = *u.Tags
	}
	if u.Notes != nil {
		p.Notes = *u.Notes
	}
	if u.Capo != nil {
		p.Capo = u.Capo
	}
	if u.Memorized != nil {
		p.Memorized = u.Memorized
	}
	if u.Transpose != nil {
		p.Transpose = u.Transpose
	}
	p.LastUpdated = time.Now().UTC()
}

// Touch refreshes LastUpdated, used when a practice session is attached.
func (p *Project) Touch() {
	p.LastUpdated = time.Now().UTC()
}
