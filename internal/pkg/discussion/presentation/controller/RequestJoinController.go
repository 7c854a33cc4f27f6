package controller

import (
	"context"
	"net/http"
	"time"

	"pairingbook/internal/infrastructure/auth"
	cacheport "pairingbook/internal/infrastructure/cache/port"
	qport "pairingbook/internal/infrastructure/queue/port"
	"pairingbook/internal/pkg/discussion/application/task"
	"pairingbook/internal/pkg/discussion/application/usecase"
	"pairingbook/internal/pkg/discussion/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RequestJoinController handles join requests to a discussion (one controller per endpoint)
type RequestJoinController struct {
	UC *usecase.RequestJoinUseCase
	Q  qport.Client
}

func NewRequestJoinController(pool *pgxpool.Pool, cache cacheport.Cache, client qport.Client) *RequestJoinController {
	repo := adapter.NewPgDiscussionRepository(pool)
	uc := usecase.NewRequestJoinUseCase(repo, usecase.CountCache{Cache: cache})
	return &RequestJoinController{UC: uc, Q: client}
}

func (h *RequestJoinController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		discussionID := c.Param("discussionId")
		if discussionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "discussionId is required"})
			return
		}
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		res, err := h.UC.Execute(ctx, usecase.RequestJoinInput{DiscussionID: discussionID, RequesterID: userID})
		if err != nil {
			respondError(c, err)
			return
		}

		// Tell the author someone wants in; no event when the author joins
		// their own discussion.
		if h.Q != nil && res.AuthorID != userID {
			task.EnqueueParticipationEvent(ctx, h.Q, task.ParticipationEventPayload{
				Event:           task.EventJoinRequested,
				DiscussionID:    res.Participant.DiscussionID,
				DiscussionTitle: res.DiscussionTitle,
				ParticipantID:   res.Participant.ID,
				ActorID:         userID,
				RecipientID:     res.AuthorID,
			})
		}

		c.JSON(http.StatusCreated, gin.H{
			"participant_id": res.Participant.ID,
			"discussion_id":  res.Participant.DiscussionID,
			"status":         res.Participant.Status,
			"created_at":     res.Participant.CreatedAt,
		})
	}
}
