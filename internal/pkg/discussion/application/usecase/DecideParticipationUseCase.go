package usecase

import (
	"context"
	"fmt"

	discussion "pairingbook/internal/pkg/discussion/application/domain"
	repository "pairingbook/internal/pkg/discussion/persistence/repository/port"
)

// DecideParticipationInput carries the author's verdict on a join request.
type DecideParticipationInput struct {
	ParticipantID string
	DeciderID     string
	Decision      discussion.Decision
}

// DecideParticipationResult returns the updated record plus discussion
// fields the presentation layer needs to notify the requester.
type DecideParticipationResult struct {
	Participant     discussion.Participant
	DiscussionTitle string
}

// DecideParticipationUseCase applies an approve/reject verdict to a
// participation record. Only the discussion's author may decide.
type DecideParticipationUseCase struct {
	Repo  repository.DiscussionRepository
	Cache CountCache
}

func NewDecideParticipationUseCase(repo repository.DiscussionRepository, cache CountCache) *DecideParticipationUseCase {
	return &DecideParticipationUseCase{Repo: repo, Cache: cache}
}

func (uc *DecideParticipationUseCase) Execute(ctx context.Context, in DecideParticipationInput) (*DecideParticipationResult, error) {
	if in.ParticipantID == "" || in.DeciderID == "" {
		return nil, fmt.Errorf("participant_id and decider_id are required")
	}

	p, err := uc.Repo.GetParticipant(ctx, in.ParticipantID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if p == nil {
		return nil, discussion.ErrParticipantNotFound
	}

	d, err := uc.Repo.GetDiscussion(ctx, p.DiscussionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if d == nil {
		return nil, discussion.ErrNotFound
	}

	approved, err := uc.Repo.CountApprovedParticipants(ctx, d.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if p.Status == discussion.StatusApproved {
		// The record under decision is already in the count; re-approving it
		// must not trip the capacity gate.
		approved--
	}

	agg := discussion.Participation{Discussion: *d, ApprovedCount: approved}
	status, err := agg.Decide(in.DeciderID, in.Decision)
	if err != nil {
		return nil, err
	}

	if err := uc.Repo.UpdateParticipantStatus(ctx, p.ID, status); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	p.Status = status

	uc.Cache.Invalidate(ctx, d.ID)

	return &DecideParticipationResult{Participant: *p, DiscussionTitle: d.Title}, nil
}
