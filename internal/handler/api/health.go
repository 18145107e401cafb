package api

import (
	"net/http"
	"time"

	resdto "property-revenue-sync/internal/handler/dto/response"
	"property-revenue-sync/internal/pkg/clock"
	"property-revenue-sync/internal/usecase/aggregation"
	"property-revenue-sync/internal/usecase/reconcile"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	revenueUseCase aggregation.RevenueUseCase
	syncUseCase    reconcile.SyncUseCase
	clock          clock.Clock
	startedAt      time.Time
}

func NewHealthHandler(revenueUseCase aggregation.RevenueUseCase, syncUseCase reconcile.SyncUseCase, clk clock.Clock) *HealthHandler {
	return &HealthHandler{
		revenueUseCase: revenueUseCase,
		syncUseCase:    syncUseCase,
		clock:          clk,
		startedAt:      clk.Now(),
	}
}

// @Summary Health check
// @Description Process uptime and the freshness of each cached aggregate. Informational only.
// @Tags health
// @Produce json
// @Success 200 {object} resdto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.HealthResponse{
		Success:        true,
		Status:         "ok",
		StartedAt:      h.startedAt,
		UptimeSeconds:  h.clock.Now().Sub(h.startedAt).Seconds(),
		Caches:         resdto.FromCacheStatuses(h.revenueUseCase.CacheStatus()),
		SyncInProgress: h.syncUseCase.InProgress(),
		LastSync:       resdto.FromLastRun(h.syncUseCase.LastRun()),
	})
}
