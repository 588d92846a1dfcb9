package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/claimsight/case-dashboard-service/internal/models"
)

// CaseStore is the slice of the storage layer the handlers depend on.
type CaseStore interface {
	InsertCase(ctx context.Context, row models.CaseInsert) error
	StatusCounts(ctx context.Context) (models.StatusCounts, error)
	ListCases(ctx context.Context) ([]models.CaseRecord, error)
	SavedByHospital(ctx context.Context) ([]models.HospitalCount, error)
	SavedByTPA(ctx context.Context) ([]models.TPACount, error)
}

// Notifier signals connected dashboards that case data changed.
type Notifier interface {
	BroadcastCaseUpdate()
}

// RegisterBotRoutes registers the ingestion-path endpoint.
//
// POST /api/bot/event
//   - Payloads missing status or tpa (or that fail to decode) are
//     acknowledged with 200 and dropped: a rejection status would only make
//     the bot retry the same broken event forever.
//   - An accepted event inserts exactly one row and broadcasts one change
//     signal. No response body either way.
func RegisterBotRoutes(r gin.IRoutes, st CaseStore, nt Notifier) {
	r.POST("/api/bot/event", func(c *gin.Context) {
		var ev models.BotEvent
		if err := c.ShouldBindJSON(&ev); err != nil {
			log.Warn().Err(err).Msg("bot event: undecodable payload, dropping")
			c.Status(http.StatusOK)
			return
		}

		if ev.Status == "" || ev.TPA == "" {
			log.Warn().
				Str("status", ev.Status).
				Str("tpa", ev.TPA).
				Msg("bot event: missing required fields, dropping")
			c.Status(http.StatusOK)
			return
		}

		row := models.NewCaseInsert(ev, time.Now().UTC())
		if err := st.InsertCase(c.Request.Context(), row); err != nil {
			log.Error().Err(err).Str("status", ev.Status).Msg("bot event: insert failed")
			c.Status(http.StatusInternalServerError)
			return
		}

		nt.BroadcastCaseUpdate()
		c.Status(http.StatusOK)
	})
}
