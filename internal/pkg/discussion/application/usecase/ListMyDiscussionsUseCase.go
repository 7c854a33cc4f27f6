package usecase

import (
	"context"
	"fmt"

	discussion "pairingbook/internal/pkg/discussion/application/domain"
	repository "pairingbook/internal/pkg/discussion/persistence/repository/port"
	userrepo "pairingbook/internal/repository/port"
)

// ListMyDiscussionsInput identifies the viewer.
type ListMyDiscussionsInput struct {
	UserID string
}

// RosterMember is an approved participant with display data attached.
type RosterMember struct {
	ParticipantID string
	UserID        string
	Name          string
	AvatarURL     *string
}

// AuthoredDiscussion is a discussion the viewer owns, with its approved
// roster attached.
type AuthoredDiscussion struct {
	Discussion   discussion.Discussion
	ViewerStatus discussion.ParticipationStatus
	Roster       []RosterMember
}

// MembershipView is a discussion someone else owns in which the viewer holds
// a participation record.
type MembershipView struct {
	Discussion    discussion.Discussion
	ParticipantID string
	Status        discussion.ParticipationStatus
}

// MyDiscussionsView aggregates the three disjoint views of the my-page:
// authored, joined elsewhere, and still-pending requests.
type MyDiscussionsView struct {
	Authored []AuthoredDiscussion
	Joined   []MembershipView
	Pending  []MembershipView
}

// ListMyDiscussionsUseCase composes the my-discussions feed. Read-side only;
// it performs no state transitions.
type ListMyDiscussionsUseCase struct {
	Repo  repository.DiscussionRepository
	Users userrepo.UserRepository
}

func NewListMyDiscussionsUseCase(repo repository.DiscussionRepository, users userrepo.UserRepository) *ListMyDiscussionsUseCase {
	return &ListMyDiscussionsUseCase{Repo: repo, Users: users}
}

func (uc *ListMyDiscussionsUseCase) Execute(ctx context.Context, in ListMyDiscussionsInput) (*MyDiscussionsView, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	authored, err := uc.Repo.ListDiscussionsByAuthor(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	memberships, err := uc.Repo.ListMembershipsByUser(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	ownStatus := make(map[string]discussion.ParticipationStatus, len(memberships))
	for _, m := range memberships {
		ownStatus[m.Discussion.ID] = m.Participant.Status
	}

	view := &MyDiscussionsView{}

	for _, d := range authored {
		status, ok := ownStatus[d.ID]
		if !ok {
			// The author rarely has their own record; treat the missing one
			// as approved rather than an error.
			status = discussion.StatusApproved
		}
		roster, err := uc.approvedRoster(ctx, d.ID)
		if err != nil {
			return nil, err
		}
		view.Authored = append(view.Authored, AuthoredDiscussion{
			Discussion:   d,
			ViewerStatus: status,
			Roster:       roster,
		})
	}

	for _, m := range memberships {
		if m.Discussion.AuthorID == in.UserID {
			continue
		}
		mv := MembershipView{
			Discussion:    m.Discussion,
			ParticipantID: m.Participant.ID,
			Status:        m.Participant.Status,
		}
		view.Joined = append(view.Joined, mv)
		if m.Participant.Status == discussion.StatusPending {
			view.Pending = append(view.Pending, mv)
		}
	}

	return view, nil
}

func (uc *ListMyDiscussionsUseCase) approvedRoster(ctx context.Context, discussionID string) ([]RosterMember, error) {
	participants, err := uc.Repo.ListParticipantsByDiscussion(ctx, discussionID, discussion.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if len(participants) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(participants))
	for _, p := range participants {
		ids = append(ids, p.UserID)
	}
	users, err := uc.Users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	byID := make(map[string]userrepo.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	roster := make([]RosterMember, 0, len(participants))
	for _, p := range participants {
		member := RosterMember{ParticipantID: p.ID, UserID: p.UserID}
		if u, ok := byID[p.UserID]; ok {
			member.Name = u.Name
			member.AvatarURL = u.AvatarURL
		}
		roster = append(roster, member)
	}
	return roster, nil
}
