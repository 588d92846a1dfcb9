package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/claimsight/case-dashboard-service/internal/handlers"
	"github.com/claimsight/case-dashboard-service/internal/realtime"
)

// Store is what the router needs from the storage layer: the handler
// queries plus a connectivity check for readiness.
type Store interface {
	handlers.CaseStore
	Ping(ctx context.Context) error
}

// NewRouter wires the health checks, bot ingest, dashboard reads and the
// websocket endpoint. CORS is unrestricted because the dashboard may be
// hosted anywhere.
func NewRouter(st Store, hub *realtime.Hub) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	// Liveness: confirms the process is running, independent of DB state.
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// Readiness: confirms the DB dependency is reachable.
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		if err := st.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	// Realtime channel for connected dashboards.
	r.GET("/ws", func(c *gin.Context) {
		realtime.ServeWS(hub, c.Writer, c.Request)
	})

	handlers.RegisterBotRoutes(r, st, hub)
	handlers.RegisterDashboardRoutes(r, st)

	return r
}
