package discussion

import "errors"

// Domain-level errors for discussion and participation behaviors
var (
	ErrMissingFields     = errors.New("discussion: title, content and book title are required")
	ErrAuthorRequired    = errors.New("discussion: author id is required")
	ErrInvalidCapacity   = errors.New("discussion: max participants must be at least 1")
	ErrInvalidVisibility = errors.New("discussion: unknown visibility")
	ErrInvalidDecision   = errors.New("discussion: decision must be approve or reject")

	ErrNotFound            = errors.New("discussion: discussion not found")
	ErrParticipantNotFound = errors.New("discussion: participation record not found")
	ErrNotAuthor           = errors.New("discussion: only the author may decide join requests")
	ErrAuthorWithdraw      = errors.New("discussion: the author cannot withdraw from their own discussion")
	ErrAlreadyRequested    = errors.New("discussion: a participation record already exists for this user")
	ErrCapacityExceeded    = errors.New("discussion: discussion is full")
	ErrNotViewable         = errors.New("discussion: discussion is private")
)

// Participation is the aggregate enforcing membership invariants for one
// discussion. The application layer hydrates it with the discussion and the
// current approved-participant count before invoking its behaviors; the
// aggregate itself never touches persistence.
//
// State machine per (user, discussion) pair:
//
//	[no record] --request--> [pending] --approve--> [approved] --withdraw--> [no record]
//	                              `-----reject----> [rejected]
//
// approved<->rejected are not reachable transitions; a rejected request
// stays rejected until the record is removed out of band.
type Participation struct {
	Discussion    Discussion
	ApprovedCount int64
}

// JoinStatus resolves the status a new join request receives.
// The author joins directly as approved and is exempt from the capacity
// gate; everyone else starts pending, subject to capacity.
func (p *Participation) JoinStatus(userID string) (ParticipationStatus, error) {
	if userID == p.Discussion.AuthorID {
		return StatusApproved, nil
	}
	if p.atCapacity() {
		return "", ErrCapacityExceeded
	}
	return StatusPending, nil
}

// Decide validates an author verdict over an existing record and returns the
// resulting status. Approval re-checks capacity to narrow the window where
// concurrent approvals overshoot the declared maximum.
func (p *Participation) Decide(deciderID string, d Decision) (ParticipationStatus, error) {
	if deciderID != p.Discussion.AuthorID {
		return "", ErrNotAuthor
	}
	if d == DecisionApprove && p.atCapacity() {
		return "", ErrCapacityExceeded
	}
	return d.Status(), nil
}

// CanWithdraw validates a voluntary exit. Only an approved non-author record
// may be withdrawn; withdrawal deletes the record entirely.
func (p *Participation) CanWithdraw(userID string, record *Participant) error {
	if userID == p.Discussion.AuthorID {
		return ErrAuthorWithdraw
	}
	if record == nil || record.Status != StatusApproved {
		return ErrParticipantNotFound
	}
	return nil
}

func (p *Participation) atCapacity() bool {
	max := p.Discussion.MaxParticipants
	return max != nil && p.ApprovedCount >= int64(*max)
}
