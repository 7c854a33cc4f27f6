package note

import (
	"errors"
	"time"
)

// Domain-level errors for note behaviors
var (
	ErrThreadNotFound = errors.New("note: thread not found")
	ErrSelfThread     = errors.New("note: cannot open a thread with yourself")
	ErrNotMember      = errors.New("note: sender is not a member of the thread")
	ErrEmptyNote      = errors.New("note: empty note (no body or image)")
)

// Thread is a 1:1 direct-message channel between two users. The member pair
// is stored in lexicographic order and is unique per pair, enforced by the
// store.
type Thread struct {
	ID        string    `db:"id"`
	UserAID   string    `db:"user_a_id"`
	UserBID   string    `db:"user_b_id"`
	CreatedAt time.Time `db:"created_at"`
}

// NewThread validates and normalizes the member pair for a thread to persist.
func NewThread(userID, otherUserID string) (*Thread, error) {
	if userID == "" || otherUserID == "" {
		return nil, errors.New("note: both user ids are required")
	}
	if userID == otherUserID {
		return nil, ErrSelfThread
	}
	t := Thread{UserAID: userID, UserBID: otherUserID, CreatedAt: time.Now().UTC()}
	if t.UserBID < t.UserAID {
		t.UserAID, t.UserBID = t.UserBID, t.UserAID
	}
	return &t, nil
}

// Member tells whether userID belongs to this thread.
func (t *Thread) Member(userID string) bool {
	return userID != "" && (userID == t.UserAID || userID == t.UserBID)
}

// OtherMember returns the counterpart of userID, or "" when userID is not a
// member.
func (t *Thread) OtherMember(userID string) string {
	switch userID {
	case t.UserAID:
		return t.UserBID
	case t.UserBID:
		return t.UserAID
	}
	return ""
}
