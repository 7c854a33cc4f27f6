package usecase

import (
	"context"
	"fmt"

	note "pairingbook/internal/pkg/note/application/domain"
	repository "pairingbook/internal/pkg/note/persistence/repository/port"
)

// ListThreadsInput wraps the user whose threads to fetch.
type ListThreadsInput struct {
	UserID string
}

// ListThreadsUseCase returns all note threads the user belongs to.
type ListThreadsUseCase struct {
	Repo repository.NoteRepository
}

func NewListThreadsUseCase(repo repository.NoteRepository) *ListThreadsUseCase {
	return &ListThreadsUseCase{Repo: repo}
}

func (uc *ListThreadsUseCase) Execute(ctx context.Context, in ListThreadsInput) ([]note.Thread, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	threads, err := uc.Repo.ListThreadsByUser(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return threads, nil
}
