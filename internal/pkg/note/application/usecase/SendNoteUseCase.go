package usecase

import (
	"context"
	"fmt"

	note "pairingbook/internal/pkg/note/application/domain"
	repository "pairingbook/internal/pkg/note/persistence/repository/port"
)

// SendNoteInput carries the data needed to send a note into a thread.
type SendNoteInput struct {
	ThreadID string
	SenderID string
	Body     *string
	ImageURL *string
}

// SendNoteResult is the persisted note plus the user it should be pushed to.
type SendNoteResult struct {
	Note        note.Note
	RecipientID string
}

// SendNoteUseCase validates membership and persists a note.
// Hexagonal: depends on repository port, returns domain entity
type SendNoteUseCase struct {
	Repo repository.NoteRepository
}

func NewSendNoteUseCase(repo repository.NoteRepository) *SendNoteUseCase {
	return &SendNoteUseCase{Repo: repo}
}

func (uc *SendNoteUseCase) Execute(ctx context.Context, in SendNoteInput) (*SendNoteResult, error) {
	if in.ThreadID == "" || in.SenderID == "" {
		return nil, fmt.Errorf("thread_id and sender_id are required")
	}

	t, err := uc.Repo.GetThread(ctx, in.ThreadID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if t == nil {
		return nil, note.ErrThreadNotFound
	}
	if !t.Member(in.SenderID) {
		return nil, note.ErrNotMember
	}

	n, err := note.NewNote(note.Note{
		ThreadID: in.ThreadID,
		SenderID: in.SenderID,
		Body:     in.Body,
		ImageURL: in.ImageURL,
	})
	if err != nil {
		return nil, err
	}

	// Persist letting DB generate the ID
	id, err := uc.Repo.SaveNote(ctx, *n)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	n.ID = id

	return &SendNoteResult{Note: *n, RecipientID: t.OtherMember(in.SenderID)}, nil
}
