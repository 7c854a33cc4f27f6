package repository

import (
	"context"
	"errors"

	discussion "pairingbook/internal/pkg/discussion/application/domain"
)

// ErrDuplicateParticipant signals that the store's uniqueness constraint on
// (discussion_id, user_id) rejected a create. Adapters must translate their
// backend's constraint-violation error into this value so the application
// layer can report a conflict instead of a server error.
var ErrDuplicateParticipant = errors.New("repository: participation record already exists")

// DiscussionRepository defines persistence operations for the discussion
// domain. Lookup methods return (nil, nil) when no row matches; the caller
// decides whether absence is an error.
type DiscussionRepository interface {
	CreateDiscussion(ctx context.Context, d discussion.Discussion) (string, error)
	GetDiscussion(ctx context.Context, id string) (*discussion.Discussion, error)
	ListDiscussionsByAuthor(ctx context.Context, authorID string) ([]discussion.Discussion, error)

	// CreateParticipant must be backed by a uniqueness constraint on the
	// (discussion_id, user_id) pair and return ErrDuplicateParticipant on
	// violation; an application-level existence check alone cannot close the
	// race between concurrent join requests.
	CreateParticipant(ctx context.Context, p discussion.Participant) (string, error)
	GetParticipant(ctx context.Context, id string) (*discussion.Participant, error)
	GetParticipantByUserAndDiscussion(ctx context.Context, discussionID, userID string) (*discussion.Participant, error)
	UpdateParticipantStatus(ctx context.Context, id string, status discussion.ParticipationStatus) error
	DeleteParticipant(ctx context.Context, id string) error

	CountApprovedParticipants(ctx context.Context, discussionID string) (int64, error)
	ListParticipantsByDiscussion(ctx context.Context, discussionID string, status discussion.ParticipationStatus) ([]discussion.Participant, error)

	// ListMembershipsByUser returns every discussion in which the user holds
	// a participation record, paired with that record.
	ListMembershipsByUser(ctx context.Context, userID string) ([]discussion.Membership, error)
}
