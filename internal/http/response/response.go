package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velmora/brandpulse-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// RespondServiceError maps the error taxonomy onto HTTP statuses:
// missing configuration is the operator's problem (503), upstream
// failures are the provider's (502), everything else is a 500.
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case apierr.IsConfiguration(err):
		RespondError(c, http.StatusServiceUnavailable, "not_configured", err)
	case apierr.IsUpstream(err):
		RespondError(c, http.StatusBadGateway, "upstream_failed", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}
