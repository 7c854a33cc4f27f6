package controller

import (
	"context"
	"net/http"
	"time"

	"pairingbook/internal/infrastructure/auth"
	"pairingbook/internal/pkg/note/application/usecase"
	"pairingbook/internal/pkg/note/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OpenThreadController opens (or finds) the note thread between the caller
// and another user (one controller per endpoint)
type OpenThreadController struct {
	UC *usecase.OpenThreadUseCase
}

func NewOpenThreadController(pool *pgxpool.Pool) *OpenThreadController {
	repo := adapter.NewPgNoteRepository(pool)
	uc := usecase.NewOpenThreadUseCase(repo)
	return &OpenThreadController{UC: uc}
}

type openThreadRequest struct {
	OtherUserID string `json:"other_user_id" binding:"required"`
}

func (h *OpenThreadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		var req openThreadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		t, err := h.UC.Execute(ctx, usecase.OpenThreadInput{UserID: userID, OtherUserID: req.OtherUserID})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":         t.ID,
			"member_ids": []string{t.UserAID, t.UserBID},
			"created_at": t.CreatedAt,
		})
	}
}
