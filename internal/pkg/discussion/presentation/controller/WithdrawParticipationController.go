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

// WithdrawParticipationController handles voluntary exits from a discussion
// (one controller per endpoint)
type WithdrawParticipationController struct {
	UC *usecase.WithdrawParticipationUseCase
}

func NewWithdrawParticipationController(pool *pgxpool.Pool, cache cacheport.Cache) *WithdrawParticipationController {
	repo := adapter.NewPgDiscussionRepository(pool)
	uc := usecase.NewWithdrawParticipationUseCase(repo, usecase.CountCache{Cache: cache})
	return &WithdrawParticipationController{UC: uc}
}

func (h *WithdrawParticipationController) Handle() gin.HandlerFunc {
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
		err := h.UC.Execute(ctx, usecase.WithdrawParticipationInput{DiscussionID: discussionID, RequesterID: userID})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "withdrawn", "discussion_id": discussionID})
	}
}
