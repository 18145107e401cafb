package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"property-revenue-sync/internal/handler/httperr"
	"property-revenue-sync/internal/pkg/errs"
	"property-revenue-sync/internal/pkg/sanitize"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		// latest public error wins
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]

			if err.IsType(gin.ErrorTypePublic) {
				if resp, ok := err.Meta.(httperr.Response); ok {
					c.JSON(resp.Status, resp)
					return
				}
			}
		}
		if len(c.Errors) == 0 {
			if status := c.Writer.Status(); status != http.StatusOK {
				c.Status(status)
				c.Writer.WriteHeaderNow()
			}
			return
		}
		c.JSON(http.StatusInternalServerError, httperr.NewResponse(http.StatusInternalServerError, "Internal server error", nil))
	}
}

const panicStackLines = 20

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				err := errs.Newf("panic: %s", sanitize.String(fmt.Sprint(rec)))
				slog.Error("recovered from panic",
					"error", err.Error(),
					"stack", errs.ExtractStackLines(err, panicStackLines),
					"path", c.Request.URL.Path,
					"request_id", GetRequestID(c),
				)

				resp := httperr.NewResponse(http.StatusInternalServerError, "Internal server error", nil)
				c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
			}
		}()
		c.Next()
	}
}
