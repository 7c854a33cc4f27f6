package controller

import (
	"context"
	"net/http"
	"time"

	"pairingbook/internal/infrastructure/auth"
	cacheport "pairingbook/internal/infrastructure/cache/port"
	qport "pairingbook/internal/infrastructure/queue/port"
	discussion "pairingbook/internal/pkg/discussion/application/domain"
	"pairingbook/internal/pkg/discussion/application/task"
	"pairingbook/internal/pkg/discussion/application/usecase"
	"pairingbook/internal/pkg/discussion/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DecideParticipationController handles the author's approve/reject verdict
// on a join request (one controller per endpoint)
type DecideParticipationController struct {
	UC *usecase.DecideParticipationUseCase
	Q  qport.Client
}

func NewDecideParticipationController(pool *pgxpool.Pool, cache cacheport.Cache, client qport.Client) *DecideParticipationController {
	repo := adapter.NewPgDiscussionRepository(pool)
	uc := usecase.NewDecideParticipationUseCase(repo, usecase.CountCache{Cache: cache})
	return &DecideParticipationController{UC: uc, Q: client}
}

// decideRequest is the DTO for the HTTP request body. The action field is the
// single canonical representation of the verdict; there is no parallel
// status-valued entry point.
type decideRequest struct {
	Action string `json:"action" binding:"required"`
}

func (h *DecideParticipationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		participantID := c.Param("participantId")
		if participantID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "participantId is required"})
			return
		}
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		var req decideRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		decision, err := discussion.ParseDecision(req.Action)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		res, err := h.UC.Execute(ctx, usecase.DecideParticipationInput{
			ParticipantID: participantID,
			DeciderID:     userID,
			Decision:      decision,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		if h.Q != nil {
			event := task.EventApproved
			if res.Participant.Status == discussion.StatusRejected {
				event = task.EventRejected
			}
			task.EnqueueParticipationEvent(ctx, h.Q, task.ParticipationEventPayload{
				Event:           event,
				DiscussionID:    res.Participant.DiscussionID,
				DiscussionTitle: res.DiscussionTitle,
				ParticipantID:   res.Participant.ID,
				ActorID:         userID,
				RecipientID:     res.Participant.UserID,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"participant_id": res.Participant.ID,
			"discussion_id":  res.Participant.DiscussionID,
			"user_id":        res.Participant.UserID,
			"status":         res.Participant.Status,
		})
	}
}
