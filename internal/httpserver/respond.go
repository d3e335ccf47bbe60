package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ndthang/minimart/internal/logging"
	"github.com/ndthang/minimart/internal/service"
)

// ErrorBody is the single error envelope every failure route returns.
type ErrorBody struct {
	Error string `json:"error"`
}

// EventPublisher is the slice of the Kafka producer the handlers need.
// Tests plug a recording stub in here and run without a broker.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event map[string]any) error
}

func errorJSON(c echo.Context, code int, msg string) error {
	return c.JSON(code, ErrorBody{Error: msg})
}

// messageOf strips the sentinel prefix so clients see the human part only.
func messageOf(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{
		service.ErrValidation, service.ErrNotFound, service.ErrConflict,
		service.ErrUnauthorized, service.ErrForbidden,
	} {
		prefix := sentinel.Error() + ": "
		if strings.HasPrefix(msg, prefix) {
			return strings.TrimPrefix(msg, prefix)
		}
	}
	return msg
}

// serviceError maps domain errors onto HTTP statuses. Conflicts map to 400
// here; registration is the one route that answers 409 and handles it itself.
// Anything unrecognized is logged and hidden behind an opaque 500.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return errorJSON(c, http.StatusBadRequest, messageOf(err))
	case errors.Is(err, service.ErrConflict):
		return errorJSON(c, http.StatusBadRequest, messageOf(err))
	case errors.Is(err, service.ErrNotFound):
		return errorJSON(c, http.StatusNotFound, messageOf(err))
	case errors.Is(err, service.ErrUnauthorized):
		return errorJSON(c, http.StatusUnauthorized, messageOf(err))
	case errors.Is(err, service.ErrForbidden):
		return errorJSON(c, http.StatusForbidden, messageOf(err))
	}
	logging.FromContext(c.Request().Context()).Error("unhandled error",
		"path", c.Path(), "error", err)
	return errorJSON(c, http.StatusInternalServerError, "internal server error")
}

// errorHandler keeps the error envelope uniform for failures raised outside
// the handlers, echo.HTTPError from the auth middleware included.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := "internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		} else {
			msg = http.StatusText(code)
		}
	} else {
		logging.FromContext(c.Request().Context()).Error("unhandled error",
			"path", c.Path(), "error", err)
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = errorJSON(c, code, msg)
}

// publish fires a domain event without ever failing the request.
func publish(c echo.Context, events EventPublisher, topic, key string, event map[string]any) {
	if events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := events.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("event publish failed",
			"topic", topic, "error", fmt.Sprint(err))
	}
}
