package api

import (
	"net/http"

	"property-revenue-sync/internal/infra"
	"property-revenue-sync/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// statusFor maps a use case failure to the status the caller sees. Upstream failures are the
// provider's or the store's fault, not ours, so they surface as 502.
func statusFor(err error) int {
	switch {
	case errs.Is(err, errs.ErrSyncInProgress):
		return http.StatusConflict
	case errs.Is(err, errs.ErrInvalidDateRange):
		return http.StatusBadRequest
	case infra.IsKind(err, infra.KindConfiguration):
		return http.StatusServiceUnavailable
	case infra.IsKind(err, infra.KindTimeout):
		return http.StatusGatewayTimeout
	case errs.Is(err, errs.ErrFetchAborted),
		infra.IsKind(err, infra.KindHTTPFailure),
		infra.IsKind(err, infra.KindUnauthorized),
		infra.IsKind(err, infra.KindDecodeFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// recordError attaches err for the request log without writing a response.
func recordError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err)
	}
}
