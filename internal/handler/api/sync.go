package api

import (
	"net/http"

	resdto "property-revenue-sync/internal/handler/dto/response"
	"property-revenue-sync/internal/handler/httperr"
	"property-revenue-sync/internal/pkg/errs"
	"property-revenue-sync/internal/pkg/sanitize"
	"property-revenue-sync/internal/usecase/reconcile"

	"github.com/gin-gonic/gin"
)

type SyncHandler struct {
	syncUseCase reconcile.SyncUseCase
}

func NewSyncHandler(syncUseCase reconcile.SyncUseCase) *SyncHandler {
	return &SyncHandler{
		syncUseCase: syncUseCase,
	}
}

// @Summary Reconcile reservations now
// @Description Fetches the provider's in-scope reservations and makes the store table match them.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SyncResponse
// @Failure 401 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/reservations/sync [post]
func (h *SyncHandler) Sync(c *gin.Context) {
	result, err := h.syncUseCase.Run(c.Request.Context())
	if err != nil {
		if errs.Is(err, errs.ErrSyncInProgress) {
			httperr.AbortWithError(c, http.StatusConflict, err, "A reservation sync is already running", nil)
			return
		}
		httperr.AbortWithError(c, statusFor(err), err, "Reservation sync failed", sanitize.Error(err))
		return
	}

	c.JSON(http.StatusOK, resdto.FromRunResult(result))
}
