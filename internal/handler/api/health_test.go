//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"property-revenue-sync/internal/handler/api"
	resdto "property-revenue-sync/internal/handler/dto/response"
	"property-revenue-sync/internal/pkg/clock"
	"property-revenue-sync/internal/pkg/ttlcache"
	"property-revenue-sync/internal/usecase/reconcile"
	"property-revenue-sync/tests/common/httptest"
	aggregationmock "property-revenue-sync/tests/mock/aggregation"
	reconcilemock "property-revenue-sync/tests/mock/reconcile"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	mockRevenue := aggregationmock.NewMockRevenueUseCase(ctrl)
	mockSync := reconcilemock.NewMockSyncUseCase(ctrl)

	start := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(start)
	h := api.NewHealthHandler(mockRevenue, mockSync, clk)

	router := gin.New()
	router.GET("/health", h.Health)

	clk.Add(90 * time.Second)
	fetched := start.Add(30 * time.Second)
	runID := uuid.New()

	mockRevenue.EXPECT().CacheStatus().Return([]ttlcache.Status{
		{Key: "revenue:summary", State: ttlcache.StateFresh, TTL: 5 * time.Minute, FetchedAt: &fetched, AgeSecs: 60},
		{Key: "revenue:categories", State: ttlcache.StateEmpty, TTL: 5 * time.Minute},
	})
	mockSync.EXPECT().InProgress().Return(false)
	mockSync.EXPECT().LastRun().Return(&reconcile.RunResult{RunID: runID, FinishedAt: start, Summary: reconcile.Summary{Errors: 2}})

	rec := httptest.PerformRequest(t, router, http.MethodGet, "/health", nil, "")

	var body resdto.HealthResponse
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 90.0, body.UptimeSeconds)
	require.Len(t, body.Caches, 2)
	assert.Equal(t, "fresh", body.Caches[0].State)
	assert.Equal(t, 300.0, body.Caches[0].TTLSeconds)
	assert.Nil(t, body.Caches[1].FetchedAt)
	require.NotNil(t, body.LastSync)
	assert.Equal(t, runID.String(), body.LastSync.RunID)
	assert.Equal(t, 2, body.LastSync.Errors)
}

func TestHealth_NoRunYet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	mockRevenue := aggregationmock.NewMockRevenueUseCase(ctrl)
	mockSync := reconcilemock.NewMockSyncUseCase(ctrl)
	h := api.NewHealthHandler(mockRevenue, mockSync, clock.NewMockClock(time.Now()))

	router := gin.New()
	router.GET("/health", h.Health)

	mockRevenue.EXPECT().CacheStatus().Return(nil)
	mockSync.EXPECT().InProgress().Return(true)
	mockSync.EXPECT().LastRun().Return(nil)

	rec := httptest.PerformRequest(t, router, http.MethodGet, "/health", nil, "")

	var body resdto.HealthResponse
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
	assert.True(t, body.SyncInProgress)
	assert.Nil(t, body.LastSync)
	assert.Empty(t, body.Caches)
}
