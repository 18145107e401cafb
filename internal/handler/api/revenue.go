package api

import (
	"net/http"
	"time"

	reqdto "property-revenue-sync/internal/handler/dto/request"
	resdto "property-revenue-sync/internal/handler/dto/response"
	"property-revenue-sync/internal/handler/httperr"
	"property-revenue-sync/internal/pkg/config"
	"property-revenue-sync/internal/pkg/sanitize"
	"property-revenue-sync/internal/usecase/aggregation"

	"github.com/gin-gonic/gin"
)

type RevenueHandler struct {
	revenueUseCase aggregation.RevenueUseCase
	location       *time.Location
}

func NewRevenueHandler(revenueUseCase aggregation.RevenueUseCase, cfg config.RevenueConfig) *RevenueHandler {
	return &RevenueHandler{
		revenueUseCase: revenueUseCase,
		location:       cfg.Location(),
	}
}

// @Summary Get revenue summary
// @Description Cached headline revenue. A failed refresh serves the previous value tagged with cache.error.
// @Tags revenue
// @Produce json
// @Success 200 {object} resdto.RevenueResponse
// @Failure 503 {object} resdto.RevenueResponse
// @Router /api/revenue [get]
func (h *RevenueHandler) GetRevenue(c *gin.Context) {
	res := h.revenueUseCase.GetRevenue(c.Request.Context())
	if !res.Success {
		recordError(c, res.Err)
		c.JSON(http.StatusServiceUnavailable, resdto.FromRevenueResult(res))
		return
	}
	c.JSON(http.StatusOK, resdto.FromRevenueResult(res))
}

// @Summary Get revenue by listing category
// @Description Cached per-category breakdown; every category is always present.
// @Tags revenue
// @Produce json
// @Success 200 {object} resdto.CategoryListResponse
// @Failure 503 {object} resdto.CategoryListResponse
// @Router /api/revenue/listings [get]
func (h *RevenueHandler) GetCategoryRevenue(c *gin.Context) {
	res := h.revenueUseCase.GetCategoryRevenue(c.Request.Context())
	if !res.Success {
		recordError(c, res.Err)
		c.JSON(http.StatusServiceUnavailable, resdto.FromCategoryResult(res))
		return
	}
	c.JSON(http.StatusOK, resdto.FromCategoryResult(res))
}

// @Summary Get revenue for a date range
// @Description Aggregates synced reservations arriving between startDate and endDate inclusive.
// @Tags revenue
// @Produce json
// @Param startDate query string true "Start date (YYYY-MM-DD)"
// @Param endDate query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} resdto.DateRangeResponse
// @Failure 400 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/revenue/date-range [get]
func (h *RevenueHandler) GetDateRange(c *gin.Context) {
	var q reqdto.DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err,
			"startDate and endDate are required as YYYY-MM-DD", nil)
		return
	}

	start, end, err := q.ToRange(h.location)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date range", sanitize.Error(err))
		return
	}

	summary, err := h.revenueUseCase.GetDateRange(c.Request.Context(), start, end)
	if err != nil {
		httperr.AbortWithError(c, statusFor(err), err, "Failed to aggregate revenue for date range", sanitize.Error(err))
		return
	}

	c.JSON(http.StatusOK, resdto.FromRangeSummary(summary))
}

// @Summary Run the revenue cycle now
// @Description Recomputes revenue, upserts today's snapshot and the category rows, then refreshes the caches.
// @Tags revenue
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CycleResponse
// @Failure 401 {object} httperr.Response
// @Failure 502 {object} resdto.CycleResponse
// @Router /api/revenue/update-revenue [post]
func (h *RevenueHandler) UpdateRevenue(c *gin.Context) {
	res, err := h.revenueUseCase.UpdateRevenue(c.Request.Context())
	h.respondCycle(c, res, err)
}

// @Summary Seed category rows and run the revenue cycle
// @Description Creates any missing category rows with zero figures, then runs the revenue cycle.
// @Tags revenue
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CycleResponse
// @Failure 401 {object} httperr.Response
// @Failure 502 {object} resdto.CycleResponse
// @Router /api/revenue/populate-initial [post]
func (h *RevenueHandler) PopulateInitial(c *gin.Context) {
	res, err := h.revenueUseCase.PopulateInitial(c.Request.Context())
	h.respondCycle(c, res, err)
}

func (h *RevenueHandler) respondCycle(c *gin.Context, res *aggregation.CycleResult, err error) {
	if err != nil {
		recordError(c, err)
		c.JSON(statusFor(err), resdto.FromCycleResult(res, err))
		return
	}
	c.JSON(http.StatusOK, resdto.FromCycleResult(res, nil))
}
