package usecase

import (
	"context"
	"fmt"

	discussion "pairingbook/internal/pkg/discussion/application/domain"
	repository "pairingbook/internal/pkg/discussion/persistence/repository/port"
)

// GetParticipationStatusInput identifies the discussion and the requester.
type GetParticipationStatusInput struct {
	DiscussionID string
	RequesterID  string
}

// ParticipationStatusView is the read model for the status endpoint: the
// requester's own record (nil when absent) and the current approved count.
type ParticipationStatusView struct {
	Participant   *discussion.Participant
	ApprovedCount int64
}

// GetParticipationStatusUseCase is a read-only view over one user's standing
// in a discussion. The approved count is served from the cache when warm.
type GetParticipationStatusUseCase struct {
	Repo  repository.DiscussionRepository
	Cache CountCache
}

func NewGetParticipationStatusUseCase(repo repository.DiscussionRepository, cache CountCache) *GetParticipationStatusUseCase {
	return &GetParticipationStatusUseCase{Repo: repo, Cache: cache}
}

func (uc *GetParticipationStatusUseCase) Execute(ctx context.Context, in GetParticipationStatusInput) (*ParticipationStatusView, error) {
	if in.DiscussionID == "" || in.RequesterID == "" {
		return nil, fmt.Errorf("discussion_id and requester_id are required")
	}

	d, err := uc.Repo.GetDiscussion(ctx, in.DiscussionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if d == nil {
		return nil, discussion.ErrNotFound
	}

	record, err := uc.Repo.GetParticipantByUserAndDiscussion(ctx, d.ID, in.RequesterID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	approved, ok := uc.Cache.Get(ctx, d.ID)
	if !ok {
		approved, err = uc.Repo.CountApprovedParticipants(ctx, d.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		uc.Cache.Put(ctx, d.ID, approved)
	}

	return &ParticipationStatusView{Participant: record, ApprovedCount: approved}, nil
}
