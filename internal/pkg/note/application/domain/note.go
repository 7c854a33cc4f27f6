package note

import (
	"errors"
	"strings"
	"time"
)

// Note is an immutable entry in a thread.
type Note struct {
	ID        string    `db:"id"`
	ThreadID  string    `db:"thread_id"`
	SenderID  string    `db:"sender_id"`
	Body      *string   `db:"body"`
	ImageURL  *string   `db:"image_url"`
	CreatedAt time.Time `db:"created_at"`
}

// NewNote validates and normalizes a note to persist. A note needs either a
// body or an image.
func NewNote(n Note) (*Note, error) {
	if n.ThreadID == "" || n.SenderID == "" {
		return nil, errors.New("note: thread_id and sender_id are required")
	}

	if n.Body != nil {
		trimmed := strings.TrimSpace(*n.Body)
		if trimmed == "" {
			n.Body = nil
		} else {
			n.Body = &trimmed
		}
	}
	if n.Body == nil && n.ImageURL == nil {
		return nil, ErrEmptyNote
	}

	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	return &n, nil
}
