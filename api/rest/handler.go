package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HandlerFunc is an API operation with a typed request and response.
type HandlerFunc[Req, Resp any] func(ctx context.Context, req *Req) (*Resp, error)

// RegisterFunc registers fn on the router. Path parameters are bound through `uri` tags and, for requests carrying a
// body, the JSON body is decoded into the request as well. Errors of type *Err are returned to the caller with their
// status code, every other error becomes a 500.
func RegisterFunc[Req, Resp any](logger *logrus.Logger, r gin.IRoutes, method, path string, fn HandlerFunc[Req, Resp]) {
	r.Handle(method, path, func(c *gin.Context) {
		ctx := c.Request.Context()
		logger := logger.WithContext(ctx).WithFields(logrus.Fields{
			"method":     method,
			"path":       path,
			"request_id": RequestID(c),
		})

		req := new(Req)
		if len(c.Params) > 0 {
			err := c.ShouldBindUri(req)
			if err != nil {
				logger.WithError(err).Warn("Failed to bind path parameters")
				writeErr(c, NewErrf(http.StatusBadRequest, "Invalid path parameters: %v", err))
				return
			}
		}
		if hasBody(method) {
			err := c.ShouldBindJSON(req)
			if err != nil {
				logger.WithError(err).Warn("Failed to decode request body")
				writeErr(c, NewErrf(http.StatusBadRequest, "Invalid request body: %v", err))
				return
			}
		}

		resp, err := fn(ctx, req)
		if err != nil {
			apiErr := &Err{}
			if !errors.As(err, &apiErr) {
				logger.WithError(err).Error("Handler failed with an unexpected error")
				apiErr = NewErrf(http.StatusInternalServerError, "Internal server error")
			}
			writeErr(c, apiErr)
			return
		}

		c.JSON(http.StatusOK, resp)
	})
}

func writeErr(c *gin.Context, err *Err) {
	c.AbortWithStatusJSON(err.StatusCode, err)
}

func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}
