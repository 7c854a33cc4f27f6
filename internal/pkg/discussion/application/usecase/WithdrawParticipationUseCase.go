package usecase

import (
	"context"
	"fmt"

	discussion "pairingbook/internal/pkg/discussion/application/domain"
	repository "pairingbook/internal/pkg/discussion/persistence/repository/port"
)

// WithdrawParticipationInput identifies the discussion the requester leaves.
type WithdrawParticipationInput struct {
	DiscussionID string
	RequesterID  string
}

// WithdrawParticipationUseCase deletes an approved participation record when
// its owner voluntarily leaves. The author can never withdraw from their own
// discussion, and pending/rejected records cannot be withdrawn.
type WithdrawParticipationUseCase struct {
	Repo  repository.DiscussionRepository
	Cache CountCache
}

func NewWithdrawParticipationUseCase(repo repository.DiscussionRepository, cache CountCache) *WithdrawParticipationUseCase {
	return &WithdrawParticipationUseCase{Repo: repo, Cache: cache}
}

func (uc *WithdrawParticipationUseCase) Execute(ctx context.Context, in WithdrawParticipationInput) error {
	if in.DiscussionID == "" || in.RequesterID == "" {
		return fmt.Errorf("discussion_id and requester_id are required")
	}

	d, err := uc.Repo.GetDiscussion(ctx, in.DiscussionID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if d == nil {
		return discussion.ErrNotFound
	}

	record, err := uc.Repo.GetParticipantByUserAndDiscussion(ctx, d.ID, in.RequesterID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	agg := discussion.Participation{Discussion: *d}
	if err := agg.CanWithdraw(in.RequesterID, record); err != nil {
		return err
	}

	if err := uc.Repo.DeleteParticipant(ctx, record.ID); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	uc.Cache.Invalidate(ctx, d.ID)
	return nil
}
