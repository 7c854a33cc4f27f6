package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	discussion "pairingbook/internal/pkg/discussion/application/domain"
	userrepo "pairingbook/internal/repository/port"
)

type fakeUserRepo struct {
	users map[string]userrepo.User
}

var _ userrepo.UserRepository = (*fakeUserRepo)(nil)

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*userrepo.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeUserRepo) GetByIDs(_ context.Context, ids []string) ([]userrepo.User, error) {
	var out []userrepo.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func TestListMyDiscussions(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	users := &fakeUserRepo{users: map[string]userrepo.User{
		"user-2": {ID: "user-2", Name: "Jamie"},
	}}

	// Viewer authors one discussion with an approved member.
	authoredID := seedDiscussion(t, repo, "viewer", nil)
	_, err := repo.CreateParticipant(ctx, discussion.Participant{
		DiscussionID: authoredID, UserID: "user-2", Status: discussion.StatusApproved,
	})
	require.NoError(t, err)

	// Viewer is approved in someone else's discussion and pending in a third.
	joinedID := seedDiscussion(t, repo, "author-x", nil)
	_, err = repo.CreateParticipant(ctx, discussion.Participant{
		DiscussionID: joinedID, UserID: "viewer", Status: discussion.StatusApproved,
	})
	require.NoError(t, err)

	pendingID := seedDiscussion(t, repo, "author-y", nil)
	_, err = repo.CreateParticipant(ctx, discussion.Participant{
		DiscussionID: pendingID, UserID: "viewer", Status: discussion.StatusPending,
	})
	require.NoError(t, err)

	uc := NewListMyDiscussionsUseCase(repo, users)
	view, err := uc.Execute(ctx, ListMyDiscussionsInput{UserID: "viewer"})
	require.NoError(t, err)

	require.Len(t, view.Authored, 1)
	authored := view.Authored[0]
	assert.Equal(t, authoredID, authored.Discussion.ID)
	// Authors have no participation row of their own; they read as approved.
	assert.Equal(t, discussion.StatusApproved, authored.ViewerStatus)
	require.Len(t, authored.Roster, 1)
	assert.Equal(t, "user-2", authored.Roster[0].UserID)
	assert.Equal(t, "Jamie", authored.Roster[0].Name)

	require.Len(t, view.Joined, 2)
	byID := map[string]MembershipView{}
	for _, m := range view.Joined {
		byID[m.Discussion.ID] = m
	}
	assert.Equal(t, discussion.StatusApproved, byID[joinedID].Status)
	assert.Equal(t, discussion.StatusPending, byID[pendingID].Status)

	require.Len(t, view.Pending, 1)
	assert.Equal(t, pendingID, view.Pending[0].Discussion.ID)
}
