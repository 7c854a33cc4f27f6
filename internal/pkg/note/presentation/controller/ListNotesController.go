package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"pairingbook/internal/infrastructure/auth"
	"pairingbook/internal/pkg/note/application/usecase"
	"pairingbook/internal/pkg/note/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ListNotesController handles fetching notes by thread ID (one controller per endpoint)
type ListNotesController struct {
	UC *usecase.ListNotesUseCase
}

func NewListNotesController(pool *pgxpool.Pool) *ListNotesController {
	repo := adapter.NewPgNoteRepository(pool)
	uc := usecase.NewListNotesUseCase(repo)
	return &ListNotesController{UC: uc}
}

func (h *ListNotesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		threadID := c.Param("threadId")
		if threadID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "threadId is required"})
			return
		}
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		// Defaults
		limit := 50
		offset := 0
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}
		if v := c.Query("offset"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				offset = n
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		notes, err := h.UC.Execute(ctx, usecase.ListNotesInput{
			ThreadID: threadID,
			UserID:   userID,
			Limit:    limit,
			Offset:   offset,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		out := make([]gin.H, 0, len(notes))
		for i := range notes {
			out = append(out, noteJSON(&notes[i]))
		}
		c.JSON(http.StatusOK, gin.H{
			"notes":  out,
			"limit":  limit,
			"offset": offset,
			"count":  len(out),
		})
	}
}
