package repository

import (
	"context"

	note "pairingbook/internal/pkg/note/application/domain"
)

// NoteRepository defines persistence operations for the note domain.
// Lookup methods return (nil, nil) when no row matches.
type NoteRepository interface {
	// GetOrCreateThread returns the existing thread for the pair in t, or
	// persists and returns a new one. The store enforces uniqueness on the
	// normalized pair, so concurrent opens converge on one thread.
	GetOrCreateThread(ctx context.Context, t note.Thread) (*note.Thread, error)
	GetThread(ctx context.Context, id string) (*note.Thread, error)
	ListThreadsByUser(ctx context.Context, userID string) ([]note.Thread, error)

	SaveNote(ctx context.Context, n note.Note) (string, error)
	ListNotesByThread(ctx context.Context, threadID string, limit, offset int) ([]note.Note, error)
}
