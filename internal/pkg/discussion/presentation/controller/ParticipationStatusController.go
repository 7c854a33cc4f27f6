package controller

import (
	"context"
	"net/http"
	"time"

	"pairingbook/internal/infrastructure/auth"
	cacheport "pairingbook/internal/infrastructure/cache/port"
	"pairingbook/internal/pkg/discussion/application/usecase"
	"pairingbook/internal/pkg/discussion/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ParticipationStatusController reports the caller's standing in a
// discussion plus the approved headcount (one controller per endpoint)
type ParticipationStatusController struct {
	UC *usecase.GetParticipationStatusUseCase
}

func NewParticipationStatusController(pool *pgxpool.Pool, cache cacheport.Cache) *ParticipationStatusController {
	repo := adapter.NewPgDiscussionRepository(pool)
	uc := usecase.NewGetParticipationStatusUseCase(repo, usecase.CountCache{Cache: cache})
	return &ParticipationStatusController{UC: uc}
}

func (h *ParticipationStatusController) Handle() gin.HandlerFunc {
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
		view, err := h.UC.Execute(ctx, usecase.GetParticipationStatusInput{DiscussionID: discussionID, RequesterID: userID})
		if err != nil {
			respondError(c, err)
			return
		}

		out := gin.H{
			"discussion_id":  discussionID,
			"approved_count": view.ApprovedCount,
			"participant":    nil,
		}
		if view.Participant != nil {
			out["participant"] = gin.H{
				"id":         view.Participant.ID,
				"status":     view.Participant.Status,
				"created_at": view.Participant.CreatedAt,
			}
		}
		c.JSON(http.StatusOK, out)
	}
}
