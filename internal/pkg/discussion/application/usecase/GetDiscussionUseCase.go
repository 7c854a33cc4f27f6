package usecase

import (
	"context"
	"fmt"

	discussion "pairingbook/internal/pkg/discussion/application/domain"
	repository "pairingbook/internal/pkg/discussion/persistence/repository/port"
)

// GetDiscussionInput identifies the discussion and the viewer.
type GetDiscussionInput struct {
	DiscussionID string
	ViewerID     string
}

// GetDiscussionUseCase fetches one discussion, enforcing private visibility.
type GetDiscussionUseCase struct {
	Repo repository.DiscussionRepository
}

func NewGetDiscussionUseCase(repo repository.DiscussionRepository) *GetDiscussionUseCase {
	return &GetDiscussionUseCase{Repo: repo}
}

func (uc *GetDiscussionUseCase) Execute(ctx context.Context, in GetDiscussionInput) (*discussion.Discussion, error) {
	if in.DiscussionID == "" {
		return nil, fmt.Errorf("discussion_id is required")
	}

	d, err := uc.Repo.GetDiscussion(ctx, in.DiscussionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if d == nil {
		return nil, discussion.ErrNotFound
	}

	if d.Visibility == discussion.VisibilityPrivate && in.ViewerID != d.AuthorID {
		record, err := uc.Repo.GetParticipantByUserAndDiscussion(ctx, d.ID, in.ViewerID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		var status discussion.ParticipationStatus
		if record != nil {
			status = record.Status
		}
		if !d.Viewable(in.ViewerID, status) {
			return nil, discussion.ErrNotViewable
		}
	}

	return d, nil
}
