package controller

import (
	"context"
	"net/http"
	"time"

	"pairingbook/internal/infrastructure/auth"
	"pairingbook/internal/pkg/discussion/application/usecase"
	"pairingbook/internal/pkg/discussion/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GetDiscussionController handles fetching one discussion (one controller per endpoint)
type GetDiscussionController struct {
	UC *usecase.GetDiscussionUseCase
}

func NewGetDiscussionController(pool *pgxpool.Pool) *GetDiscussionController {
	repo := adapter.NewPgDiscussionRepository(pool)
	uc := usecase.NewGetDiscussionUseCase(repo)
	return &GetDiscussionController{UC: uc}
}

func (h *GetDiscussionController) Handle() gin.HandlerFunc {
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
		d, err := h.UC.Execute(ctx, usecase.GetDiscussionInput{DiscussionID: discussionID, ViewerID: userID})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, discussionJSON(d))
	}
}
