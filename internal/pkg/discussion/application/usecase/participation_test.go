package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cacheport "pairingbook/internal/infrastructure/cache/port"
	discussion "pairingbook/internal/pkg/discussion/application/domain"
	repository "pairingbook/internal/pkg/discussion/persistence/repository/port"
)

// fakeRepo is an in-memory DiscussionRepository. It enforces the same
// (discussion_id, user_id) uniqueness the Postgres adapter gets from its
// unique index.
type fakeRepo struct {
	discussions  map[string]discussion.Discussion
	participants map[string]discussion.Participant
	seq          int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		discussions:  make(map[string]discussion.Discussion),
		participants: make(map[string]discussion.Participant),
	}
}

var _ repository.DiscussionRepository = (*fakeRepo)(nil)

func (f *fakeRepo) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeRepo) CreateDiscussion(_ context.Context, d discussion.Discussion) (string, error) {
	d.ID = f.nextID("disc")
	f.discussions[d.ID] = d
	return d.ID, nil
}

func (f *fakeRepo) GetDiscussion(_ context.Context, id string) (*discussion.Discussion, error) {
	d, ok := f.discussions[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (f *fakeRepo) ListDiscussionsByAuthor(_ context.Context, authorID string) ([]discussion.Discussion, error) {
	var out []discussion.Discussion
	for _, d := range f.discussions {
		if d.AuthorID == authorID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateParticipant(_ context.Context, p discussion.Participant) (string, error) {
	for _, existing := range f.participants {
		if existing.DiscussionID == p.DiscussionID && existing.UserID == p.UserID {
			return "", repository.ErrDuplicateParticipant
		}
	}
	p.ID = f.nextID("part")
	f.participants[p.ID] = p
	return p.ID, nil
}

func (f *fakeRepo) GetParticipant(_ context.Context, id string) (*discussion.Participant, error) {
	p, ok := f.participants[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeRepo) GetParticipantByUserAndDiscussion(_ context.Context, discussionID, userID string) (*discussion.Participant, error) {
	for _, p := range f.participants {
		if p.DiscussionID == discussionID && p.UserID == userID {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) UpdateParticipantStatus(_ context.Context, id string, status discussion.ParticipationStatus) error {
	p, ok := f.participants[id]
	if !ok {
		return fmt.Errorf("no participant %s", id)
	}
	p.Status = status
	f.participants[id] = p
	return nil
}

func (f *fakeRepo) DeleteParticipant(_ context.Context, id string) error {
	delete(f.participants, id)
	return nil
}

func (f *fakeRepo) CountApprovedParticipants(_ context.Context, discussionID string) (int64, error) {
	var n int64
	for _, p := range f.participants {
		if p.DiscussionID == discussionID && p.Status == discussion.StatusApproved {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) ListParticipantsByDiscussion(_ context.Context, discussionID string, status discussion.ParticipationStatus) ([]discussion.Participant, error) {
	var out []discussion.Participant
	for _, p := range f.participants {
		if p.DiscussionID == discussionID && p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListMembershipsByUser(_ context.Context, userID string) ([]discussion.Membership, error) {
	var out []discussion.Membership
	for _, p := range f.participants {
		if p.UserID != userID {
			continue
		}
		d, ok := f.discussions[p.DiscussionID]
		if !ok {
			continue
		}
		out = append(out, discussion.Membership{Discussion: d, Participant: p})
	}
	return out, nil
}

// fakeCache is a map-backed cacheport.Cache that ignores TTLs.
type fakeCache struct {
	values map[string]string
}

func newFakeCache() *fakeCache { return &fakeCache{values: make(map[string]string)} }

var _ cacheport.Cache = (*fakeCache)(nil)

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	v, ok := f.values[key]
	if !ok {
		return "", cacheport.ErrMiss
	}
	return v, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	f.values[key] = value
	return nil
}

func (f *fakeCache) Del(_ context.Context, keys ...string) (int64, error) {
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			delete(f.values, k)
			n++
		}
	}
	return n, nil
}

func (f *fakeCache) Ping(context.Context) error { return nil }
func (f *fakeCache) Close() error               { return nil }

func seedDiscussion(t *testing.T, repo *fakeRepo, authorID string, capacity *int32) string {
	t.Helper()
	id, err := repo.CreateDiscussion(context.Background(), discussion.Discussion{
		Title:           "Reading circle",
		Content:         "Weekly pace.",
		BookTitle:       "The Left Hand of Darkness",
		AuthorID:        authorID,
		Visibility:      discussion.VisibilityPublic,
		MaxParticipants: capacity,
		CreatedAt:       time.Now().UTC(),
	})
	require.NoError(t, err)
	return id
}

func TestRequestJoin(t *testing.T) {
	ctx := context.Background()

	t.Run("first request goes pending", func(t *testing.T) {
		repo := newFakeRepo()
		id := seedDiscussion(t, repo, "author-1", nil)
		uc := NewRequestJoinUseCase(repo, CountCache{})

		res, err := uc.Execute(ctx, RequestJoinInput{DiscussionID: id, RequesterID: "user-2"})
		require.NoError(t, err)
		assert.Equal(t, discussion.StatusPending, res.Participant.Status)
		assert.Equal(t, "author-1", res.AuthorID)
		assert.NotEmpty(t, res.Participant.ID)
	})

	t.Run("unknown discussion", func(t *testing.T) {
		uc := NewRequestJoinUseCase(newFakeRepo(), CountCache{})
		_, err := uc.Execute(ctx, RequestJoinInput{DiscussionID: "missing", RequesterID: "user-2"})
		assert.ErrorIs(t, err, discussion.ErrNotFound)
	})

	t.Run("duplicate reports existing status", func(t *testing.T) {
		repo := newFakeRepo()
		id := seedDiscussion(t, repo, "author-1", nil)
		uc := NewRequestJoinUseCase(repo, CountCache{})

		_, err := uc.Execute(ctx, RequestJoinInput{DiscussionID: id, RequesterID: "user-2"})
		require.NoError(t, err)

		_, err = uc.Execute(ctx, RequestJoinInput{DiscussionID: id, RequesterID: "user-2"})
		var dup *AlreadyRequestedError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, discussion.StatusPending, dup.Status)
		assert.ErrorIs(t, err, discussion.ErrAlreadyRequested)

		// The original record survives the collision untouched.
		p, err := repo.GetParticipantByUserAndDiscussion(ctx, id, "user-2")
		require.NoError(t, err)
		assert.Equal(t, discussion.StatusPending, p.Status)
	})

	t.Run("rejected user stays rejected", func(t *testing.T) {
		repo := newFakeRepo()
		id := seedDiscussion(t, repo, "author-1", nil)
		pid, err := repo.CreateParticipant(ctx, discussion.Participant{
			DiscussionID: id, UserID: "user-2", Status: discussion.StatusRejected,
		})
		require.NoError(t, err)
		_ = pid

		uc := NewRequestJoinUseCase(repo, CountCache{})
		_, err = uc.Execute(ctx, RequestJoinInput{DiscussionID: id, RequesterID: "user-2"})
		var dup *AlreadyRequestedError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, discussion.StatusRejected, dup.Status)
	})

	t.Run("capacity gate", func(t *testing.T) {
		repo := newFakeRepo()
		id := seedDiscussion(t, repo, "author-1", intPtr(1))
		_, err := repo.CreateParticipant(ctx, discussion.Participant{
			DiscussionID: id, UserID: "user-2", Status: discussion.StatusApproved,
		})
		require.NoError(t, err)

		uc := NewRequestJoinUseCase(repo, CountCache{})
		_, err = uc.Execute(ctx, RequestJoinInput{DiscussionID: id, RequesterID: "user-3"})
		assert.ErrorIs(t, err, discussion.ErrCapacityExceeded)

		// No record was written for the rejected attempt.
		p, err := repo.GetParticipantByUserAndDiscussion(ctx, id, "user-3")
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("author joins approved past capacity and count cache drops", func(t *testing.T) {
		repo := newFakeRepo()
		cache := newFakeCache()
		id := seedDiscussion(t, repo, "author-1", intPtr(1))
		_, err := repo.CreateParticipant(ctx, discussion.Participant{
			DiscussionID: id, UserID: "user-2", Status: discussion.StatusApproved,
		})
		require.NoError(t, err)
		require.NoError(t, cache.Set(ctx, approvedCountKey(id), "1", 0))

		uc := NewRequestJoinUseCase(repo, CountCache{Cache: cache})
		res, err := uc.Execute(ctx, RequestJoinInput{DiscussionID: id, RequesterID: "author-1"})
		require.NoError(t, err)
		assert.Equal(t, discussion.StatusApproved, res.Participant.Status)

		_, err = cache.Get(ctx, approvedCountKey(id))
		assert.ErrorIs(t, err, cacheport.ErrMiss)
	})
}

func TestDecideParticipation(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, capacity *int32) (*fakeRepo, string, string) {
		repo := newFakeRepo()
		id := seedDiscussion(t, repo, "author-1", capacity)
		pid, err := repo.CreateParticipant(ctx, discussion.Participant{
			DiscussionID: id, UserID: "user-2", Status: discussion.StatusPending,
		})
		require.NoError(t, err)
		return repo, id, pid
	}

	t.Run("approve", func(t *testing.T) {
		repo, id, pid := setup(t, nil)
		uc := NewDecideParticipationUseCase(repo, CountCache{})

		res, err := uc.Execute(ctx, DecideParticipationInput{
			ParticipantID: pid, DeciderID: "author-1", Decision: discussion.DecisionApprove,
		})
		require.NoError(t, err)
		assert.Equal(t, discussion.StatusApproved, res.Participant.Status)

		n, err := repo.CountApprovedParticipants(ctx, id)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	})

	t.Run("reject", func(t *testing.T) {
		repo, _, pid := setup(t, nil)
		uc := NewDecideParticipationUseCase(repo, CountCache{})

		res, err := uc.Execute(ctx, DecideParticipationInput{
			ParticipantID: pid, DeciderID: "author-1", Decision: discussion.DecisionReject,
		})
		require.NoError(t, err)
		assert.Equal(t, discussion.StatusRejected, res.Participant.Status)
	})

	t.Run("only the author decides", func(t *testing.T) {
		repo, _, pid := setup(t, nil)
		uc := NewDecideParticipationUseCase(repo, CountCache{})

		_, err := uc.Execute(ctx, DecideParticipationInput{
			ParticipantID: pid, DeciderID: "user-3", Decision: discussion.DecisionApprove,
		})
		assert.ErrorIs(t, err, discussion.ErrNotAuthor)

		p, err := repo.GetParticipant(ctx, pid)
		require.NoError(t, err)
		assert.Equal(t, discussion.StatusPending, p.Status)
	})

	t.Run("unknown participant", func(t *testing.T) {
		uc := NewDecideParticipationUseCase(newFakeRepo(), CountCache{})
		_, err := uc.Execute(ctx, DecideParticipationInput{
			ParticipantID: "missing", DeciderID: "author-1", Decision: discussion.DecisionApprove,
		})
		assert.ErrorIs(t, err, discussion.ErrParticipantNotFound)
	})

	t.Run("approval blocked when full", func(t *testing.T) {
		repo, id, pid := setup(t, intPtr(1))
		_, err := repo.CreateParticipant(ctx, discussion.Participant{
			DiscussionID: id, UserID: "user-3", Status: discussion.StatusApproved,
		})
		require.NoError(t, err)

		uc := NewDecideParticipationUseCase(repo, CountCache{})
		_, err = uc.Execute(ctx, DecideParticipationInput{
			ParticipantID: pid, DeciderID: "author-1", Decision: discussion.DecisionApprove,
		})
		assert.ErrorIs(t, err, discussion.ErrCapacityExceeded)
	})

	t.Run("re-approving at capacity is a no-op, not overflow", func(t *testing.T) {
		repo, _, pid := setup(t, intPtr(1))
		require.NoError(t, repo.UpdateParticipantStatus(ctx, pid, discussion.StatusApproved))

		uc := NewDecideParticipationUseCase(repo, CountCache{})
		res, err := uc.Execute(ctx, DecideParticipationInput{
			ParticipantID: pid, DeciderID: "author-1", Decision: discussion.DecisionApprove,
		})
		require.NoError(t, err)
		assert.Equal(t, discussion.StatusApproved, res.Participant.Status)
	})
}

func TestWithdrawParticipation(t *testing.T) {
	ctx := context.Background()

	t.Run("approved member leaves and the count drops", func(t *testing.T) {
		repo := newFakeRepo()
		id := seedDiscussion(t, repo, "author-1", nil)
		_, err := repo.CreateParticipant(ctx, discussion.Participant{
			DiscussionID: id, UserID: "user-2", Status: discussion.StatusApproved,
		})
		require.NoError(t, err)

		uc := NewWithdrawParticipationUseCase(repo, CountCache{})
		require.NoError(t, uc.Execute(ctx, WithdrawParticipationInput{DiscussionID: id, RequesterID: "user-2"}))

		p, err := repo.GetParticipantByUserAndDiscussion(ctx, id, "user-2")
		require.NoError(t, err)
		assert.Nil(t, p)

		n, err := repo.CountApprovedParticipants(ctx, id)
		require.NoError(t, err)
		assert.EqualValues(t, 0, n)
	})

	t.Run("author cannot leave", func(t *testing.T) {
		repo := newFakeRepo()
		id := seedDiscussion(t, repo, "author-1", nil)
		uc := NewWithdrawParticipationUseCase(repo, CountCache{})

		err := uc.Execute(ctx, WithdrawParticipationInput{DiscussionID: id, RequesterID: "author-1"})
		assert.ErrorIs(t, err, discussion.ErrAuthorWithdraw)
	})

	t.Run("pending record cannot withdraw", func(t *testing.T) {
		repo := newFakeRepo()
		id := seedDiscussion(t, repo, "author-1", nil)
		_, err := repo.CreateParticipant(ctx, discussion.Participant{
			DiscussionID: id, UserID: "user-2", Status: discussion.StatusPending,
		})
		require.NoError(t, err)

		uc := NewWithdrawParticipationUseCase(repo, CountCache{})
		err = uc.Execute(ctx, WithdrawParticipationInput{DiscussionID: id, RequesterID: "user-2"})
		assert.ErrorIs(t, err, discussion.ErrParticipantNotFound)
	})

	t.Run("no record at all", func(t *testing.T) {
		repo := newFakeRepo()
		id := seedDiscussion(t, repo, "author-1", nil)
		uc := NewWithdrawParticipationUseCase(repo, CountCache{})

		err := uc.Execute(ctx, WithdrawParticipationInput{DiscussionID: id, RequesterID: "user-2"})
		assert.ErrorIs(t, err, discussion.ErrParticipantNotFound)
	})
}

// Walks a capacity-1 discussion through its whole lifecycle: request,
// approval, overflow, withdrawal, and the seat reopening.
func TestCapacityOneLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	id := seedDiscussion(t, repo, "author-1", intPtr(1))

	join := NewRequestJoinUseCase(repo, CountCache{})
	decide := NewDecideParticipationUseCase(repo, CountCache{})
	withdraw := NewWithdrawParticipationUseCase(repo, CountCache{})

	// B asks to join; the seat is still open because B is only pending.
	res, err := join.Execute(ctx, RequestJoinInput{DiscussionID: id, RequesterID: "user-b"})
	require.NoError(t, err)
	require.Equal(t, discussion.StatusPending, res.Participant.Status)

	// The author approves B and the discussion fills up.
	_, err = decide.Execute(ctx, DecideParticipationInput{
		ParticipantID: res.Participant.ID, DeciderID: "author-1", Decision: discussion.DecisionApprove,
	})
	require.NoError(t, err)

	// C cannot even request a seat now.
	_, err = join.Execute(ctx, RequestJoinInput{DiscussionID: id, RequesterID: "user-c"})
	require.ErrorIs(t, err, discussion.ErrCapacityExceeded)

	// B leaves; the seat reopens and C's request goes through.
	require.NoError(t, withdraw.Execute(ctx, WithdrawParticipationInput{DiscussionID: id, RequesterID: "user-b"}))

	res, err = join.Execute(ctx, RequestJoinInput{DiscussionID: id, RequesterID: "user-c"})
	require.NoError(t, err)
	assert.Equal(t, discussion.StatusPending, res.Participant.Status)
}

func TestGetParticipationStatus(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	cache := newFakeCache()
	id := seedDiscussion(t, repo, "author-1", nil)
	_, err := repo.CreateParticipant(ctx, discussion.Participant{
		DiscussionID: id, UserID: "user-2", Status: discussion.StatusApproved,
	})
	require.NoError(t, err)

	uc := NewGetParticipationStatusUseCase(repo, CountCache{Cache: cache})

	view, err := uc.Execute(ctx, GetParticipationStatusInput{DiscussionID: id, RequesterID: "user-2"})
	require.NoError(t, err)
	require.NotNil(t, view.Participant)
	assert.Equal(t, discussion.StatusApproved, view.Participant.Status)
	assert.EqualValues(t, 1, view.ApprovedCount)

	// The miss warmed the cache.
	cached, err := cache.Get(ctx, approvedCountKey(id))
	require.NoError(t, err)
	assert.Equal(t, "1", cached)

	// Until invalidated, the count is served from the cache.
	_, err = repo.CreateParticipant(ctx, discussion.Participant{
		DiscussionID: id, UserID: "user-3", Status: discussion.StatusApproved,
	})
	require.NoError(t, err)

	view, err = uc.Execute(ctx, GetParticipationStatusInput{DiscussionID: id, RequesterID: "user-2"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, view.ApprovedCount)

	// A non-participant sees no record but still gets the count.
	view, err = uc.Execute(ctx, GetParticipationStatusInput{DiscussionID: id, RequesterID: "stranger"})
	require.NoError(t, err)
	assert.Nil(t, view.Participant)
}

func TestGetDiscussionVisibility(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	id, err := repo.CreateDiscussion(ctx, discussion.Discussion{
		Title: "Closed circle", Content: "x", BookTitle: "y",
		AuthorID: "author-1", Visibility: discussion.VisibilityPrivate,
	})
	require.NoError(t, err)

	uc := NewGetDiscussionUseCase(repo)

	_, err = uc.Execute(ctx, GetDiscussionInput{DiscussionID: id, ViewerID: "author-1"})
	assert.NoError(t, err)

	_, err = uc.Execute(ctx, GetDiscussionInput{DiscussionID: id, ViewerID: "stranger"})
	assert.ErrorIs(t, err, discussion.ErrNotViewable)

	_, err = repo.CreateParticipant(ctx, discussion.Participant{
		DiscussionID: id, UserID: "user-2", Status: discussion.StatusApproved,
	})
	require.NoError(t, err)
	_, err = uc.Execute(ctx, GetDiscussionInput{DiscussionID: id, ViewerID: "user-2"})
	assert.NoError(t, err)
}

func intPtr(n int32) *int32 { return &n }
