package discussion

import "time"

// ParticipationStatus is the canonical membership state.
// The values are lowercase everywhere: storage, API payloads, and logs.
type ParticipationStatus string

const (
	StatusPending  ParticipationStatus = "pending"
	StatusApproved ParticipationStatus = "approved"
	StatusRejected ParticipationStatus = "rejected"
)

// Valid reports whether s is one of the three known states.
func (s ParticipationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Participant captures one user's membership record in one discussion.
// The pair (DiscussionID, UserID) is unique, enforced by the store.
type Participant struct {
	ID           string              `db:"id"`
	DiscussionID string              `db:"discussion_id"`
	UserID       string              `db:"user_id"`
	Status       ParticipationStatus `db:"status"`
	CreatedAt    time.Time           `db:"created_at"`
}

// Membership is a read model pairing a discussion with the viewer's own
// participation record, used by the my-discussions aggregation.
type Membership struct {
	Discussion  Discussion
	Participant Participant
}

// Decision is the author's verdict on a pending join request.
// Exactly two actionable variants exist at the operation boundary.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// ParseDecision converts the wire value into a Decision.
func ParseDecision(s string) (Decision, error) {
	switch Decision(s) {
	case DecisionApprove, DecisionReject:
		return Decision(s), nil
	}
	return "", ErrInvalidDecision
}

// Status returns the participation status a decision resolves to.
func (d Decision) Status() ParticipationStatus {
	if d == DecisionApprove {
		return StatusApproved
	}
	return StatusRejected
}
