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

// ListThreadsController handles fetching the caller's note threads
// (one controller per endpoint)
type ListThreadsController struct {
	UC *usecase.ListThreadsUseCase
}

func NewListThreadsController(pool *pgxpool.Pool) *ListThreadsController {
	repo := adapter.NewPgNoteRepository(pool)
	uc := usecase.NewListThreadsUseCase(repo)
	return &ListThreadsController{UC: uc}
}

func (h *ListThreadsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		threads, err := h.UC.Execute(ctx, usecase.ListThreadsInput{UserID: userID})
		if err != nil {
			respondError(c, err)
			return
		}

		out := make([]gin.H, 0, len(threads))
		for _, t := range threads {
			out = append(out, gin.H{
				"id":         t.ID,
				"member_ids": []string{t.UserAID, t.UserBID},
				"created_at": t.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, gin.H{"threads": out, "count": len(out)})
	}
}
