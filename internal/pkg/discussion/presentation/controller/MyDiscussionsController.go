package controller

import (
	"context"
	"net/http"
	"time"

	"pairingbook/internal/infrastructure/auth"
	"pairingbook/internal/pkg/discussion/application/usecase"
	"pairingbook/internal/pkg/discussion/persistence/repository/adapter"
	useradapter "pairingbook/internal/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MyDiscussionsController serves the aggregated my-discussions feed
// (one controller per endpoint)
type MyDiscussionsController struct {
	UC *usecase.ListMyDiscussionsUseCase
}

func NewMyDiscussionsController(pool *pgxpool.Pool) *MyDiscussionsController {
	repo := adapter.NewPgDiscussionRepository(pool)
	users := useradapter.NewPgUserRepository(pool)
	uc := usecase.NewListMyDiscussionsUseCase(repo, users)
	return &MyDiscussionsController{UC: uc}
}

func (h *MyDiscussionsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		view, err := h.UC.Execute(ctx, usecase.ListMyDiscussionsInput{UserID: userID})
		if err != nil {
			respondError(c, err)
			return
		}

		authored := make([]gin.H, 0, len(view.Authored))
		for _, a := range view.Authored {
			roster := make([]gin.H, 0, len(a.Roster))
			for _, m := range a.Roster {
				roster = append(roster, gin.H{
					"participant_id": m.ParticipantID,
					"user_id":        m.UserID,
					"name":           m.Name,
					"avatar_url":     m.AvatarURL,
				})
			}
			item := discussionJSON(&a.Discussion)
			item["my_status"] = a.ViewerStatus
			item["participants"] = roster
			authored = append(authored, item)
		}

		joined := membershipsJSON(view.Joined)
		pending := membershipsJSON(view.Pending)

		c.JSON(http.StatusOK, gin.H{
			"authored": authored,
			"joined":   joined,
			"pending":  pending,
		})
	}
}

func membershipsJSON(items []usecase.MembershipView) []gin.H {
	out := make([]gin.H, 0, len(items))
	for _, m := range items {
		item := discussionJSON(&m.Discussion)
		item["my_status"] = m.Status
		item["participant_id"] = m.ParticipantID
		out = append(out, item)
	}
	return out
}
