package v1

import (
	"pairingbook/internal/infrastructure/auth"
	cacheport "pairingbook/internal/infrastructure/cache/port"
	qport "pairingbook/internal/infrastructure/queue/port"
	"pairingbook/internal/infrastructure/realtime"
	discussionhttp "pairingbook/internal/pkg/discussion/presentation/http"
	notehttp "pairingbook/internal/pkg/note/presentation/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1
func RegisterRoutes(r *gin.Engine, pool *pgxpool.Pool, cache cacheport.Cache, client qport.Client, rt *realtime.Router, authMW *auth.Middleware) {
	v1 := r.Group("/api/v1")
	// Pass the shared infrastructure down to each domain's HTTP layer
	discussionhttp.RegisterRoutes(v1, pool, cache, client, authMW)
	notehttp.RegisterRoutes(v1, pool, rt, authMW)
}
