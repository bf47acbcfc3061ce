package gateway

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskboard/platform/internal/errors"
)

// errorResponse is the envelope every failure leaves the gateway in.
type errorResponse struct {
	StatusCode int                 `json:"statusCode"`
	Message    string              `json:"message"`
	Timestamp  time.Time           `json:"timestamp"`
	Path       string              `json:"path"`
	Errors     []errors.FieldError `json:"errors,omitempty"`
}

// fail ends the request with the uniform error envelope. Internal causes
// are logged here and never serialized.
func (g *Gateway) fail(c *gin.Context, err error) {
	se := errors.Ensure(err)
	if se.HTTPStatus >= 500 {
		g.log.WithContext(c.Request.Context()).WithError(err).
			WithField("path", c.Request.URL.Path).Error("request failed")
	}
	c.AbortWithStatusJSON(se.HTTPStatus, errorResponse{
		StatusCode: se.HTTPStatus,
		Message:    se.Message,
		Timestamp:  time.Now().UTC(),
		Path:       c.Request.URL.Path,
		Errors:     se.Fields,
	})
}

// failValidation is fail for malformed request bodies.
func (g *Gateway) failValidation(c *gin.Context, message string) {
	g.fail(c, errors.Validation(message, nil))
}
