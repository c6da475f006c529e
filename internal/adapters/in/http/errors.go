package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"backoffice/internal/generated/servers"
	"backoffice/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// KindConfirmationRequired is reported when a destructive request arrives unconfirmed.
const KindConfirmationRequired = "ConfirmationRequired"

// StatusFor maps an error family onto the HTTP status returned to clients.
func StatusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindInvalidAmount, errs.KindInvalidParameter, errs.KindInvalidValue:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindInvalidTransition, errs.KindConflict:
		return http.StatusConflict
	case errs.KindTransientFailure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	kind := errs.KindOf(err)
	code := StatusFor(kind)

	message := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			slog.String("path", ctx.Path()), slog.Any("error", err))
		message = http.StatusText(code)
	}

	return ctx.JSON(code, servers.Error{Code: code, Kind: string(kind), Message: message})
}

// NewErrorHandler renders errors that escape the API handlers, such as routing and binding
// failures, in the same shape as domain errors.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := http.StatusText(code)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		} else {
			logger.Error("unhandled error", slog.String("path", c.Path()), slog.Any("error", err))
		}

		body := servers.Error{Code: code, Kind: kindForStatus(code), Message: message}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, body)
		}
		if writeErr != nil {
			logger.Error("failed to write error response", slog.Any("error", writeErr))
		}
	}
}

func kindForStatus(code int) string {
	switch code {
	case http.StatusBadRequest:
		return string(errs.KindInvalidValue)
	case http.StatusNotFound:
		return string(errs.KindNotFound)
	case http.StatusPreconditionRequired:
		return KindConfirmationRequired
	case http.StatusServiceUnavailable:
		return string(errs.KindTransientFailure)
	}
	if code >= http.StatusInternalServerError {
		return string(errs.KindInternal)
	}
	return strings.ReplaceAll(http.StatusText(code), " ", "")
}
