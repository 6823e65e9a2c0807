package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"evalgo.org/hostreg/internal/storage"
)

// getStatistics handles GET /api/v1/stats
// @Summary Host counts
// @Tags Statistics
// @Produce json
// @Success 200 {object} StatsResponse
// @Router /stats [get]
func (s *Server) getStatistics(c echo.Context) error {
	ctx := c.Request().Context()

	total, err := s.store.CountHosts(ctx, nil)
	if err != nil {
		return InternalError("failed to count hosts", err.Error())
	}
	adhoc, err := s.store.CountHosts(ctx, storage.Filter{"lsid": storage.Filter{"$exists": false}})
	if err != nil {
		return InternalError("failed to count hosts", err.Error())
	}

	stats := StatsResponse{
		TotalHosts:       total,
		AdhocHosts:       adhoc,
		DiscoveredHosts:  total - adhoc,
		WebSocketClients: s.wsHub.ClientCount(),
	}
	if s.profiles != nil {
		stats.ProfilesCached = s.profiles.Len()
	}

	return c.JSON(http.StatusOK, stats)
}
