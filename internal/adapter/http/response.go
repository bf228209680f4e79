package http

import (
	"errors"
	"net/http"

	"loan-origination/internal/domain/apperr"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Envelope wraps every response body.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

const (
	codeInvalidBody      = "INVALID_BODY"
	codeValidationFailed = "VALIDATION_FAILED"
	codeInvalidID        = "INVALID_ID"
)

func ok(c echo.Context, status int, data any) error {
	return c.JSON(status, Envelope{Success: true, Data: data})
}

func fail(c echo.Context, status int, code, msg string, details []FieldError) error {
	return c.JSON(status, Envelope{Error: &ErrorBody{Code: code, Message: msg, Details: details}})
}

func invalidBody(c echo.Context) error {
	return fail(c, http.StatusBadRequest, codeInvalidBody, "invalid body", nil)
}

func validationFailed(c echo.Context, err error) error {
	return fail(c, http.StatusUnprocessableEntity, codeValidationFailed, "validation failed", ToFieldErrors(err))
}

// StatusFor maps an error kind to an HTTP status.
func StatusFor(k apperr.Kind) int {
	switch k {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindBusinessRule, apperr.KindInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a failure envelope. System errors never leak
// their cause to the client.
func respondError(c echo.Context, err error) error {
	e := apperr.As(err)
	return fail(c, StatusFor(e.Kind), e.Code, e.Message, nil)
}

// NewHTTPErrorHandler renders errors that escape handlers (unknown routes,
// method mismatch, body limit, recovered panics) in the envelope.
func NewHTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := http.StatusText(he.Code)
			if s, ok := he.Message.(string); ok && s != "" {
				msg = s
			}
			if he.Code >= http.StatusInternalServerError {
				log.Error("http error", zap.Int("status", he.Code), zap.Error(err))
			}
			_ = fail(c, he.Code, codeForStatus(he.Code), msg, nil)
			return
		}

		if apperr.KindOf(err) == apperr.KindSystem {
			log.Error("unhandled error", zap.String("uri", c.Request().RequestURI), zap.Error(err))
		}
		_ = respondError(c, err)
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusNotFound:
		return "ROUTE_NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case http.StatusUnsupportedMediaType:
		return "UNSUPPORTED_MEDIA_TYPE"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	}
	if status >= http.StatusInternalServerError {
		return "SYSTEM_ERROR"
	}
	return "HTTP_ERROR"
}
