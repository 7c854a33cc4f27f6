package usecase

import (
	"context"
	"fmt"

	note "pairingbook/internal/pkg/note/application/domain"
	repository "pairingbook/internal/pkg/note/persistence/repository/port"
)

// OpenThreadInput identifies the two users of a direct-message thread.
type OpenThreadInput struct {
	UserID      string
	OtherUserID string
}

// OpenThreadUseCase returns the existing thread between two users, creating
// it when none exists yet.
type OpenThreadUseCase struct {
	Repo repository.NoteRepository
}

func NewOpenThreadUseCase(repo repository.NoteRepository) *OpenThreadUseCase {
	return &OpenThreadUseCase{Repo: repo}
}

func (uc *OpenThreadUseCase) Execute(ctx context.Context, in OpenThreadInput) (*note.Thread, error) {
	t, err := note.NewThread(in.UserID, in.OtherUserID)
	if err != nil {
		return nil, err
	}

	out, err := uc.Repo.GetOrCreateThread(ctx, *t)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return out, nil
}
