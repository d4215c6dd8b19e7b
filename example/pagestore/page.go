package pagestore

import (
	"time"

	"github.com/google/uuid"
)

// Page represents a wiki page with free-form metadata.
type Page struct {
	ID        uuid.UUID
	Title     string
	Content   string
	Metadata  map[string]string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPage creates a page with a fresh identifier and creation timestamps.
func NewPage(title string, content string, metadata map[string]string) Page {
	now := time.Now().UTC()

	return Page{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		Metadata:  metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
