package usecase

import (
	"context"
	"fmt"
	"time"

	discussion "pairingbook/internal/pkg/discussion/application/domain"
	repository "pairingbook/internal/pkg/discussion/persistence/repository/port"
)

// CreateDiscussionInput carries the fields to open a new book discussion.
// AuthorID comes from the resolved identity, never from the request body.
type CreateDiscussionInput struct {
	AuthorID        string
	Title           string
	Content         string
	BookTitle       string
	BookAuthor      string
	Topics          []string
	Tags            []string
	ImageURLs       []string
	Visibility      discussion.Visibility
	ScheduledAt     *time.Time
	MaxParticipants *int32
}

// CreateDiscussionUseCase persists a new discussion for its author.
// Hexagonal: depends on repository port only
type CreateDiscussionUseCase struct {
	Repo repository.DiscussionRepository
}

func NewCreateDiscussionUseCase(repo repository.DiscussionRepository) *CreateDiscussionUseCase {
	return &CreateDiscussionUseCase{Repo: repo}
}

func (uc *CreateDiscussionUseCase) Execute(ctx context.Context, in CreateDiscussionInput) (*discussion.Discussion, error) {
	d, err := discussion.NewDiscussion(discussion.Discussion{
		Title:           in.Title,
		Content:         in.Content,
		BookTitle:       in.BookTitle,
		BookAuthor:      in.BookAuthor,
		Topics:          in.Topics,
		Tags:            in.Tags,
		ImageURLs:       in.ImageURLs,
		Visibility:      in.Visibility,
		ScheduledAt:     in.ScheduledAt,
		MaxParticipants: in.MaxParticipants,
		AuthorID:        in.AuthorID,
	})
	if err != nil {
		return nil, err
	}

	id, err := uc.Repo.CreateDiscussion(ctx, *d)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	d.ID = id
	return d, nil
}
