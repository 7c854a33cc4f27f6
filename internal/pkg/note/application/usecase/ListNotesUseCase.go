package usecase

import (
	"context"
	"fmt"

	note "pairingbook/internal/pkg/note/application/domain"
	repository "pairingbook/internal/pkg/note/persistence/repository/port"
)

// ListNotesInput carries parameters to fetch notes of a thread.
type ListNotesInput struct {
	ThreadID string
	UserID   string
	Limit    int
	Offset   int
}

// ListNotesUseCase fetches notes for a thread the user belongs to.
type ListNotesUseCase struct {
	Repo repository.NoteRepository
}

func NewListNotesUseCase(repo repository.NoteRepository) *ListNotesUseCase {
	return &ListNotesUseCase{Repo: repo}
}

func (uc *ListNotesUseCase) Execute(ctx context.Context, in ListNotesInput) ([]note.Note, error) {
	if in.ThreadID == "" || in.UserID == "" {
		return nil, fmt.Errorf("thread_id and user_id are required")
	}

	t, err := uc.Repo.GetThread(ctx, in.ThreadID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if t == nil {
		return nil, note.ErrThreadNotFound
	}
	if !t.Member(in.UserID) {
		return nil, note.ErrNotMember
	}

	notes, err := uc.Repo.ListNotesByThread(ctx, in.ThreadID, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return notes, nil
}
