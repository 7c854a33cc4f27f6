package discussion

import (
	"strings"
	"time"
)

// Visibility controls who may read a discussion
// public = anyone; private = author and approved participants only
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Discussion represents a book-club group users can request to join.
// AuthorID is immutable after creation; discussions are never updated or
// deleted through this service.
type Discussion struct {
	ID              string     `db:"id"`
	Title           string     `db:"title"`
	Content         string     `db:"content"`
	BookTitle       string     `db:"book_title"`
	BookAuthor      string     `db:"book_author"`
	Topics          []string   `db:"topics"`
	Tags            []string   `db:"tags"`
	ImageURLs       []string   `db:"image_urls"`
	Visibility      Visibility `db:"visibility"`
	ScheduledAt     *time.Time `db:"scheduled_at"`
	MaxParticipants *int32     `db:"max_participants"` // nil means unlimited
	AuthorID        string     `db:"author_id"`
	CreatedAt       time.Time  `db:"created_at"`
}

// NewDiscussion validates and normalizes input for a discussion to persist.
func NewDiscussion(d Discussion) (*Discussion, error) {
	d.Title = strings.TrimSpace(d.Title)
	d.Content = strings.TrimSpace(d.Content)
	d.BookTitle = strings.TrimSpace(d.BookTitle)
	d.BookAuthor = strings.TrimSpace(d.BookAuthor)

	if d.AuthorID == "" {
		return nil, ErrAuthorRequired
	}
	if d.Title == "" || d.Content == "" || d.BookTitle == "" {
		return nil, ErrMissingFields
	}
	if d.MaxParticipants != nil && *d.MaxParticipants < 1 {
		return nil, ErrInvalidCapacity
	}

	switch d.Visibility {
	case VisibilityPublic, VisibilityPrivate:
	case "":
		d.Visibility = VisibilityPublic
	default:
		return nil, ErrInvalidVisibility
	}

	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}

	return &d, nil
}

// Viewable tells whether viewerID may read this discussion.
// Private discussions are visible to the author and approved participants.
func (d *Discussion) Viewable(viewerID string, viewerStatus ParticipationStatus) bool {
	if d.Visibility != VisibilityPrivate {
		return true
	}
	if viewerID == d.AuthorID {
		return true
	}
	return viewerStatus == StatusApproved
}
