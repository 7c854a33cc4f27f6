package task

import (
	"context"
	"encoding/json"

	qport "pairingbook/internal/infrastructure/queue/port"
	"pairingbook/internal/infrastructure/realtime"

	"github.com/rs/zerolog/log"
)

// ParticipationEventTaskType is the queue task name for participation
// workflow notifications.
const ParticipationEventTaskType = "discussion:participation_event"

// Participation event kinds carried in the payload.
const (
	EventJoinRequested = "join_requested"
	EventApproved      = "approved"
	EventRejected      = "rejected"
)

// ParticipationEventPayload is the JSON payload transported via the queue.
// Kept decoupled from domain types to avoid tight coupling with JSON tags.
type ParticipationEventPayload struct {
	Event           string `json:"event"`
	DiscussionID    string `json:"discussionId"`
	DiscussionTitle string `json:"discussionTitle"`
	ParticipantID   string `json:"participantId"`
	ActorID         string `json:"actorId"`
	RecipientID     string `json:"recipientId"`
}

// notificationFrame is what the recipient's websocket session receives.
type notificationFrame struct {
	Type            string `json:"type"`
	Event           string `json:"event"`
	DiscussionID    string `json:"discussion_id"`
	DiscussionTitle string `json:"discussion_title"`
	ParticipantID   string `json:"participant_id"`
}

// RegisterParticipationEventTask binds the notification handler to the queue
// server. Delivery is best effort: an offline recipient is not an error, so
// the task never retries on missed delivery.
func RegisterParticipationEventTask(srv qport.Server, router *realtime.Router) {
	srv.Register(ParticipationEventTaskType, func(ctx context.Context, t qport.Task) error {
		var p ParticipationEventPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: retrying cannot help
			log.Warn().Err(err).Str("task", t.Type).Msg("dropping malformed participation event")
			return nil
		}
		if p.RecipientID == "" {
			return nil
		}

		frame, err := json.Marshal(notificationFrame{
			Type:            "participation",
			Event:           p.Event,
			DiscussionID:    p.DiscussionID,
			DiscussionTitle: p.DiscussionTitle,
			ParticipantID:   p.ParticipantID,
		})
		if err != nil {
			return err
		}

		if !router.NotifyUser(p.RecipientID, frame) {
			log.Debug().
				Str("recipient", p.RecipientID).
				Str("event", p.Event).
				Msg("participation event recipient offline")
		}
		return nil
	})
}

// EnqueueParticipationEvent marshals and enqueues one event, best effort.
// Callers treat enqueue failure as non-fatal: the workflow state change has
// already committed.
func EnqueueParticipationEvent(ctx context.Context, client qport.Client, p ParticipationEventPayload) {
	b, err := json.Marshal(p)
	if err != nil {
		return
	}
	opts := qport.EnqueueOption{Queue: "discussion", MaxRetry: 3}
	if _, err := client.Enqueue(ctx, qport.Task{Type: ParticipationEventTaskType, Payload: b}, opts); err != nil {
		log.Warn().Err(err).Str("event", p.Event).Msg("failed to enqueue participation event")
	}
}
