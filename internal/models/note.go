// Package models defines the domain types for Ansuz.
package models

import "time"

// Values of the "type" front-matter field the assistant reads and writes.
const (
	TypeFleeting       = "fleeting"
	TypePermanent      = "permanent"
	TypeOutline        = "outline"
	TypeWritingProject = "writing-project"
)

// NoteMetadata is a lightweight representation returned by list operations.
type NoteMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteRef identifies a vault note in workflow results.
type NoteRef struct {
	Path  string `json:"path"`
	Title string `json:"title"`
}

// ConnectionSuggestion is a proposed link from the active note to Target.
type ConnectionSuggestion struct {
	Target      string  `json:"target"`
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

// TopicSuggestion is a writing topic mined from the permanent notes. The
// field names double as the wire contract for the generated JSON.
type TopicSuggestion struct {
	Topic     string `json:"topic"`
	NoteCount int    `json:"noteCount"`
	Readiness string `json:"readiness"`
	Angle     string `json:"angle"`
}

// PromoteResult reports the outcome of promoting a fleeting note.
type PromoteResult struct {
	SourcePath    string   `json:"sourcePath"`
	PermanentPath string   `json:"permanentPath"`
	Title         string   `json:"title"`
	Keywords      []string `json:"keywords"`
	Connections   []string `json:"connections"`
}

// ReviewDigest is the daily review summary.
type ReviewDigest struct {
	Revisit  []NoteRef `json:"revisit"`
	Orphans  []NoteRef `json:"orphans"`
	Clusters []string  `json:"clusters"`
}
