package httperr

import (
	"property-revenue-sync/internal/pkg/sanitize"

	"github.com/gin-gonic/gin"
)

// Response is the failure body of every endpoint. Message is safe to show to a client.
type Response struct {
	Status  int    `json:"-"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	Detail  any    `json:"detail,omitempty"`
}

func NewResponse(status int, msg string, detail any) Response {
	return Response{
		Status:  status,
		Success: false,
		Message: sanitize.String(msg),
		Detail:  detail,
	}
}

// preserves original error for the request log
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := NewResponse(status, msg, detail)

	_ = c.Error(&gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
