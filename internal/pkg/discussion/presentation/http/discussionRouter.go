package http

import (
	"pairingbook/internal/infrastructure/auth"
	cacheport "pairingbook/internal/infrastructure/cache/port"
	qport "pairingbook/internal/infrastructure/queue/port"
	"pairingbook/internal/pkg/discussion/presentation/controller"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes registers discussion-related HTTP endpoints under the given
// router group. It constructs per-endpoint controllers and binds them
// directly to routes; every route requires a resolved identity.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, cache cacheport.Cache, client qport.Client, authMW *auth.Middleware) {
	createCtl := controller.NewCreateDiscussionController(pool)
	getCtl := controller.NewGetDiscussionController(pool)
	joinCtl := controller.NewRequestJoinController(pool, cache, client)
	statusCtl := controller.NewParticipationStatusController(pool, cache)
	withdrawCtl := controller.NewWithdrawParticipationController(pool, cache)
	decideCtl := controller.NewDecideParticipationController(pool, cache, client)
	mineCtl := controller.NewMyDiscussionsController(pool)

	authed := g.Group("", authMW.Handle())

	// POST /api/v1/discussion -> create a discussion
	authed.POST("/discussion", createCtl.Handle())

	// GET /api/v1/discussion/:discussionId -> fetch one discussion
	authed.GET("/discussion/:discussionId", getCtl.Handle())

	// POST /api/v1/discussion/:discussionId/participation -> request to join
	authed.POST("/discussion/:discussionId/participation", joinCtl.Handle())

	// GET /api/v1/discussion/:discussionId/participation -> own status + approved count
	authed.GET("/discussion/:discussionId/participation", statusCtl.Handle())

	// DELETE /api/v1/discussion/:discussionId/participation -> withdraw
	authed.DELETE("/discussion/:discussionId/participation", withdrawCtl.Handle())

	// PATCH /api/v1/participant/:participantId -> author approves or rejects
	authed.PATCH("/participant/:participantId", decideCtl.Handle())

	// GET /api/v1/me/discussions -> authored / joined / pending aggregation
	authed.GET("/me/discussions", mineCtl.Handle())
}
