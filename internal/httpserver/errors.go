package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/danrawss/techtrove/internal/domain"
	checkoutsvc "github.com/danrawss/techtrove/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error string `json:"error"`
	Step  string `json:"step,omitempty"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled):
		return 499
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps service errors to a status and the shared error payload.
// Storage details are logged but not echoed to the client.
func (h *handlers) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	var resp errorResponse
	var stepErr *checkoutsvc.StepError
	if errors.As(err, &stepErr) {
		resp.Step = string(stepErr.Step)
		resp.Error = publicMessage(status, stepErr.Err)
	} else {
		resp.Error = publicMessage(status, err)
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			"path", c.FullPath(),
			"request_id", c.GetString(requestIDHeader),
			"error", err,
		)
	}
	c.JSON(status, resp)
}

func publicMessage(status int, err error) string {
	switch status {
	case http.StatusUnauthorized:
		return "authentication required"
	case http.StatusInternalServerError:
		return "internal error"
	case 499:
		return "request cancelled"
	default:
		return err.Error()
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}
