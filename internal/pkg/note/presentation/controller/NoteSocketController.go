package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pairingbook/internal/infrastructure/auth"
	"pairingbook/internal/infrastructure/realtime"
	note "pairingbook/internal/pkg/note/application/domain"
	"pairingbook/internal/pkg/note/application/usecase"
	repoAdapter "pairingbook/internal/pkg/note/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NoteSocketController handles the websocket endpoint for realtime notes.
// Inbound "note" frames persist through the same use case as the HTTP
// endpoint; the server also pushes note and participation frames to the
// session as they arrive.
type NoteSocketController struct {
	router          *realtime.Router
	sendNoteUC      *usecase.SendNoteUseCase
	inflightTimeout time.Duration
}

func NewNoteSocketController(pool *pgxpool.Pool, router *realtime.Router) *NoteSocketController {
	repo := repoAdapter.NewPgNoteRepository(pool)
	return &NoteSocketController{
		router:          router,
		sendNoteUC:      usecase.NewSendNoteUseCase(repo),
		inflightTimeout: 5 * time.Second,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The session is already authenticated via token; origin checks can
		// be tightened when the web origin is pinned down.
		return true
	},
}

type inboundFrame struct {
	Type     string  `json:"type"`
	ThreadID string  `json:"thread_id,omitempty"`
	Body     *string `json:"body,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
}

type errorFrame struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

type ackFrame struct {
	Type   string `json:"type"`
	NoteID string `json:"note_id,omitempty"`
}

const defaultReadTimeout = 60 * time.Second

// Handle upgrades HTTP connections to websocket and processes frames until
// the client disconnects.
func (ctl *NoteSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; nothing more to do.
			return
		}

		conn := realtime.NewConnection(userID, ws)
		ctl.router.Attach(conn)
		defer func() {
			ctl.router.Detach(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(1 << 20) // 1MB payload cap
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		if payload, err := json.Marshal(ackFrame{Type: "connected"}); err == nil {
			_ = conn.Send(payload)
		}

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
					errors.Is(err, websocket.ErrCloseSent) {
					return
				}
				ctl.replyError(conn, "read_error", err.Error())
				return
			}

			var frame inboundFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				ctl.replyError(conn, "bad_request", "invalid payload")
				continue
			}

			switch frame.Type {
			case "note":
				ctl.handleNote(c, conn, userID, frame)
			default:
				ctl.replyError(conn, "unsupported_type", "unknown frame type")
			}
		}
	}
}

func (ctl *NoteSocketController) handleNote(c *gin.Context, conn *realtime.Connection, userID string, frame inboundFrame) {
	if frame.ThreadID == "" {
		ctl.replyError(conn, "bad_request", "thread_id is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	res, err := ctl.sendNoteUC.Execute(ctx, usecase.SendNoteInput{
		ThreadID: frame.ThreadID,
		SenderID: userID,
		Body:     frame.Body,
		ImageURL: frame.ImageURL,
	})
	if err != nil {
		ctl.handleUseCaseError(conn, err)
		return
	}

	pushNote(ctl.router, res)

	if payload, err := json.Marshal(ackFrame{Type: "sent", NoteID: res.Note.ID}); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *NoteSocketController) handleUseCaseError(conn *realtime.Connection, err error) {
	switch {
	case errors.Is(err, note.ErrThreadNotFound):
		ctl.replyError(conn, "not_found", err.Error())
	case errors.Is(err, note.ErrNotMember):
		ctl.replyError(conn, "forbidden", err.Error())
	case errors.Is(err, usecase.ErrPersistence):
		ctl.replyError(conn, "internal", "internal error")
	default:
		ctl.replyError(conn, "bad_request", err.Error())
	}
}

func (ctl *NoteSocketController) replyError(conn *realtime.Connection, code, msg string) {
	if payload, err := json.Marshal(errorFrame{Type: "error", Code: code, Error: msg}); err == nil {
		_ = conn.Send(payload)
	}
}
