package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/answerhub/forum-api/internal/api/metrics"
	"github.com/answerhub/forum-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Code is
// the stable wire-level code clients key on (e.g. "ATHR-001", "QUES-001").
type errorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain error kinds to deterministic HTTP status codes.
//   - Preserves the stable error code and exact message on the wire.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, resp := resolveError(err, log, c)
		_ = c.JSON(status, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Message: fmt.Sprintf("%v", he.Message)}
	}

	var de *domain.Error
	if errors.As(err, &de) {
		return statusFor(de, c), errorResponse{Code: de.Code, Message: de.Message}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Message: "internal server error"}
}

func statusFor(de *domain.Error, c echo.Context) int {
	switch de.Kind {
	case domain.KindUnauthenticated, domain.KindSignedOut, domain.KindBadCredential:
		metrics.AuthFailuresTotal.WithLabelValues(de.Code).Inc()
		return http.StatusUnauthorized
	case domain.KindForbidden:
		metrics.AuthzDenialsTotal.WithLabelValues(c.Path()).Inc()
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindNotSignedIn:
		metrics.AuthFailuresTotal.WithLabelValues(de.Code).Inc()
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
