package controller

import (
	"context"
	"net/http"
	"time"

	"pairingbook/internal/infrastructure/auth"
	discussion "pairingbook/internal/pkg/discussion/application/domain"
	"pairingbook/internal/pkg/discussion/application/usecase"
	"pairingbook/internal/pkg/discussion/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CreateDiscussionController handles the discussion creation endpoint
// One controller per endpoint

type CreateDiscussionController struct {
	UC *usecase.CreateDiscussionUseCase
}

func NewCreateDiscussionController(pool *pgxpool.Pool) *CreateDiscussionController {
	repo := adapter.NewPgDiscussionRepository(pool)
	uc := usecase.NewCreateDiscussionUseCase(repo)
	return &CreateDiscussionController{UC: uc}
}

type createDiscussionRequest struct {
	Title           string     `json:"title" binding:"required"`
	Content         string     `json:"content" binding:"required"`
	BookTitle       string     `json:"book_title" binding:"required"`
	BookAuthor      string     `json:"book_author"`
	Topics          []string   `json:"topics"`
	Tags            []string   `json:"tags"`
	ImageURLs       []string   `json:"image_urls"`
	Visibility      string     `json:"visibility"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
	MaxParticipants *int32     `json:"max_participants"`
}

func (h *CreateDiscussionController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		var req createDiscussionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		in := usecase.CreateDiscussionInput{
			AuthorID:        userID,
			Title:           req.Title,
			Content:         req.Content,
			BookTitle:       req.BookTitle,
			BookAuthor:      req.BookAuthor,
			Topics:          req.Topics,
			Tags:            req.Tags,
			ImageURLs:       req.ImageURLs,
			Visibility:      discussion.Visibility(req.Visibility),
			ScheduledAt:     req.ScheduledAt,
			MaxParticipants: req.MaxParticipants,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		d, err := h.UC.Execute(ctx, in)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, discussionJSON(d))
	}
}

// discussionJSON serializes a discussion; field names kept explicit for clarity
func discussionJSON(d *discussion.Discussion) gin.H {
	return gin.H{
		"id":               d.ID,
		"title":            d.Title,
		"content":          d.Content,
		"book_title":       d.BookTitle,
		"book_author":      d.BookAuthor,
		"topics":           d.Topics,
		"tags":             d.Tags,
		"image_urls":       d.ImageURLs,
		"visibility":       d.Visibility,
		"scheduled_at":     d.ScheduledAt,
		"max_participants": d.MaxParticipants,
		"author_id":        d.AuthorID,
		"created_at":       d.CreatedAt,
	}
}
