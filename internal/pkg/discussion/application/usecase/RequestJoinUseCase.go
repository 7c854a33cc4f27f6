package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	discussion "pairingbook/internal/pkg/discussion/application/domain"
	repository "pairingbook/internal/pkg/discussion/persistence/repository/port"
)

// AlreadyRequestedError reports a duplicate join attempt and carries the
// status of the record that already exists so callers can render it.
type AlreadyRequestedError struct {
	Status discussion.ParticipationStatus
}

func (e *AlreadyRequestedError) Error() string {
	return fmt.Sprintf("participation already requested (status %s)", e.Status)
}

func (e *AlreadyRequestedError) Unwrap() error { return discussion.ErrAlreadyRequested }

// RequestJoinInput identifies the discussion and the requesting user.
type RequestJoinInput struct {
	DiscussionID string
	RequesterID  string
}

// RequestJoinResult carries the created record plus the discussion fields the
// presentation layer needs to notify the author.
type RequestJoinResult struct {
	Participant     discussion.Participant
	DiscussionTitle string
	AuthorID        string
}

// RequestJoinUseCase creates a participation record for a user who wants to
// join a discussion. The author joins directly as approved; everyone else
// starts pending, subject to the declared capacity.
type RequestJoinUseCase struct {
	Repo  repository.DiscussionRepository
	Cache CountCache
}

func NewRequestJoinUseCase(repo repository.DiscussionRepository, cache CountCache) *RequestJoinUseCase {
	return &RequestJoinUseCase{Repo: repo, Cache: cache}
}

func (uc *RequestJoinUseCase) Execute(ctx context.Context, in RequestJoinInput) (*RequestJoinResult, error) {
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

	// Pre-check for an existing record so the common duplicate case returns
	// the current status. The store's unique constraint still closes the
	// race this check leaves open.
	existing, err := uc.Repo.GetParticipantByUserAndDiscussion(ctx, d.ID, in.RequesterID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if existing != nil {
		return nil, &AlreadyRequestedError{Status: existing.Status}
	}

	approved, err := uc.Repo.CountApprovedParticipants(ctx, d.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	agg := discussion.Participation{Discussion: *d, ApprovedCount: approved}
	status, err := agg.JoinStatus(in.RequesterID)
	if err != nil {
		return nil, err
	}

	p := discussion.Participant{
		DiscussionID: d.ID,
		UserID:       in.RequesterID,
		Status:       status,
		CreatedAt:    time.Now().UTC(),
	}
	id, err := uc.Repo.CreateParticipant(ctx, p)
	if errors.Is(err, repository.ErrDuplicateParticipant) {
		// Lost the race against a concurrent join; report the record that won.
		winner, gerr := uc.Repo.GetParticipantByUserAndDiscussion(ctx, d.ID, in.RequesterID)
		if gerr == nil && winner != nil {
			return nil, &AlreadyRequestedError{Status: winner.Status}
		}
		return nil, &AlreadyRequestedError{Status: discussion.StatusPending}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	p.ID = id

	if status == discussion.StatusApproved {
		uc.Cache.Invalidate(ctx, d.ID)
	}

	return &RequestJoinResult{
		Participant:     p,
		DiscussionTitle: d.Title,
		AuthorID:        d.AuthorID,
	}, nil
}
