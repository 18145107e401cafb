//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"property-revenue-sync/internal/handler/api"
	resdto "property-revenue-sync/internal/handler/dto/response"
	"property-revenue-sync/internal/handler/middleware"
	"property-revenue-sync/internal/infra"
	"property-revenue-sync/internal/pkg/errs"
	"property-revenue-sync/internal/pkg/jwt"
	"property-revenue-sync/internal/usecase/reconcile"
	"property-revenue-sync/tests/common/httptest"
	reconcilemock "property-revenue-sync/tests/mock/reconcile"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SyncHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	mockSync *reconcilemock.MockSyncUseCase
	token    string
}

func (s *SyncHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockSync = reconcilemock.NewMockSyncUseCase(s.mockCtrl)

	jwtService := jwt.NewService("test-secret", time.Hour)
	token, err := jwtService.GenerateToken("ops@example.com", "operator")
	s.Require().NoError(err)
	s.token = token

	h := api.NewSyncHandler(s.mockSync)
	s.router.POST("/api/reservations/sync", middleware.NewAuthMiddleware(jwtService).RequireAuth(), h.Sync)
}

func (s *SyncHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSyncHandlerSuite(t *testing.T) {
	suite.Run(t, new(SyncHandlerTestSuite))
}

func (s *SyncHandlerTestSuite) TestSync() {
	url := "/api/reservations/sync"
	started := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)

	s.Run("success: returns counts and failed keys", func() {
		runID := uuid.New()
		s.mockSync.EXPECT().Run(gomock.Any()).Return(&reconcile.RunResult{
			RunID:      runID,
			StartedAt:  started,
			FinishedAt: started.Add(1500 * time.Millisecond),
			Fetched:    12,
			Summary: reconcile.Summary{
				Created: 1, Updated: 2, Deleted: 3, Unchanged: 6, Errors: 1,
				Failed: []reconcile.FailedItem{{Op: reconcile.OpUpdate, Key: "R-7", RecordID: "rec0007", Error: "HTTP_FAILURE: 500"}},
			},
		}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, s.token)

		var body resdto.SyncResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(runID.String(), body.Data.RunID)
		s.Equal(int64(1500), body.Data.DurationMS)
		s.Equal(12, body.Data.Fetched)
		s.Equal(1, body.Data.Created)
		s.Equal(2, body.Data.Updated)
		s.Equal(3, body.Data.Deleted)
		s.Equal(6, body.Data.Unchanged)
		s.Equal([]string{"R-7"}, body.Data.FailedKeys)
		s.Require().Len(body.Data.Failed, 1)
		s.Equal("update", body.Data.Failed[0].Op)
	})

	s.Run("error: 409 while another run is in progress", func() {
		s.mockSync.EXPECT().Run(gomock.Any()).Return(nil, errs.ErrSyncInProgress).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, s.token)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already running")
	})

	s.Run("error: 502 when the provider fetch aborts", func() {
		cause := errs.Mark(errs.Wrap(infra.NewHTTPError(http.StatusBadGateway, "GET /reservations", "upstream"), "reservations page 2"), errs.ErrFetchAborted)
		s.mockSync.EXPECT().Run(gomock.Any()).Return(nil, errs.Wrap(cause, "fetch authoritative reservations")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, s.token)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "Reservation sync failed")
	})

	s.Run("error: 503 when the provider token is missing", func() {
		s.mockSync.EXPECT().Run(gomock.Any()).
			Return(nil, infra.NewConfigurationError("booking provider token not configured", errs.ErrMissingToken)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, s.token)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "")
	})

	s.Run("error: 401 without a token never runs a sync", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})
}
