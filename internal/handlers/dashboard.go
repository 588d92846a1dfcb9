package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RegisterDashboardRoutes registers the serving-path endpoints. Each one
// runs a single query and returns the full result: the dashboard re-fetches
// complete snapshots on every change signal, so there is no pagination,
// filtering or caching.
func RegisterDashboardRoutes(r gin.IRoutes, st CaseStore) {
	// GET /api/dashboard/counts → {"parsed": n, "saved": n}
	r.GET("/api/dashboard/counts", func(c *gin.Context) {
		counts, err := st.StatusCounts(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Msg("dashboard: counts query failed")
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, counts)
	})

	// GET /api/dashboard/cases → all rows, most recently updated first.
	r.GET("/api/dashboard/cases", func(c *gin.Context) {
		cases, err := st.ListCases(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Msg("dashboard: cases query failed")
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, cases)
	})

	// GET /api/dashboard/by-hospital → SAVED rows grouped by hospital group.
	r.GET("/api/dashboard/by-hospital", func(c *gin.Context) {
		groups, err := st.SavedByHospital(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Msg("dashboard: hospital stats query failed")
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, groups)
	})

	// GET /api/dashboard/by-tpa → SAVED rows grouped by TPA.
	r.GET("/api/dashboard/by-tpa", func(c *gin.Context) {
		groups, err := st.SavedByTPA(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Msg("dashboard: tpa stats query failed")
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, groups)
	})
}
