package http

import (
	"pairingbook/internal/infrastructure/auth"
	"pairingbook/internal/infrastructure/realtime"
	"pairingbook/internal/pkg/note/presentation/controller"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes registers note-related HTTP endpoints under the given
// router group. It constructs per-endpoint controllers and binds them
// directly to routes.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, rt *realtime.Router, authMW *auth.Middleware) {
	openCtl := controller.NewOpenThreadController(pool)
	sendCtl := controller.NewSendNoteController(pool, rt)
	listNotesCtl := controller.NewListNotesController(pool)
	listThreadsCtl := controller.NewListThreadsController(pool)
	socketCtl := controller.NewNoteSocketController(pool, rt)

	authed := g.Group("", authMW.Handle())

	// POST /api/v1/note/thread -> open (or find) a thread with another user
	authed.POST("/note/thread", openCtl.Handle())

	// POST /api/v1/note/thread/:threadId -> send a note into a thread
	authed.POST("/note/thread/:threadId", sendCtl.Handle())

	// GET /api/v1/note/thread/:threadId/notes -> fetch notes by thread id
	authed.GET("/note/thread/:threadId/notes", listNotesCtl.Handle())

	// GET /api/v1/note/threads -> list the caller's threads
	authed.GET("/note/threads", listThreadsCtl.Handle())

	// GET /api/v1/note/ws -> websocket endpoint for realtime notes
	// (token query auth; browsers cannot set headers on upgrade requests)
	g.GET("/note/ws", authMW.HandleQueryToken(), socketCtl.Handle())
}
