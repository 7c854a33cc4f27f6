package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"pairingbook/internal/infrastructure/auth"
	"pairingbook/internal/infrastructure/realtime"
	note "pairingbook/internal/pkg/note/application/domain"
	"pairingbook/internal/pkg/note/application/usecase"
	"pairingbook/internal/pkg/note/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SendNoteController handles the send-note endpoint (one controller per endpoint)
type SendNoteController struct {
	UC     *usecase.SendNoteUseCase
	Router *realtime.Router
}

func NewSendNoteController(pool *pgxpool.Pool, router *realtime.Router) *SendNoteController {
	repo := adapter.NewPgNoteRepository(pool)
	uc := usecase.NewSendNoteUseCase(repo)
	return &SendNoteController{UC: uc, Router: router}
}

// sendNoteRequest is the DTO for the HTTP request body
type sendNoteRequest struct {
	Body     *string `json:"body"`
	ImageURL *string `json:"image_url"`
}

// noteFrame is the realtime payload pushed to the recipient's session.
type noteFrame struct {
	Type      string    `json:"type"`
	ThreadID  string    `json:"thread_id"`
	NoteID    string    `json:"note_id"`
	SenderID  string    `json:"sender_id"`
	Body      *string   `json:"body,omitempty"`
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *SendNoteController) Handle() gin.HandlerFunc {
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

		var req sendNoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		res, err := h.UC.Execute(ctx, usecase.SendNoteInput{
			ThreadID: threadID,
			SenderID: userID,
			Body:     req.Body,
			ImageURL: req.ImageURL,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		pushNote(h.Router, res)

		c.JSON(http.StatusCreated, noteJSON(&res.Note))
	}
}

// pushNote delivers the persisted note to the counterpart's live session,
// best effort.
func pushNote(router *realtime.Router, res *usecase.SendNoteResult) {
	if router == nil || res.RecipientID == "" {
		return
	}
	payload, err := json.Marshal(noteFrame{
		Type:      "note",
		ThreadID:  res.Note.ThreadID,
		NoteID:    res.Note.ID,
		SenderID:  res.Note.SenderID,
		Body:      res.Note.Body,
		ImageURL:  res.Note.ImageURL,
		CreatedAt: res.Note.CreatedAt,
	})
	if err != nil {
		return
	}
	_ = router.NotifyUser(res.RecipientID, payload)
}

// noteJSON serializes a note; field names kept explicit for clarity
func noteJSON(n *note.Note) gin.H {
	return gin.H{
		"id":         n.ID,
		"thread_id":  n.ThreadID,
		"sender_id":  n.SenderID,
		"body":       n.Body,
		"image_url":  n.ImageURL,
		"created_at": n.CreatedAt,
	}
}
