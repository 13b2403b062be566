package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/flight-booking/internal/service"
)

// ErrorResponse is the body of every non-validation error.  RequestID
// is only set for internal errors so that support can find the log line.
type ErrorResponse struct {
	Status    int       `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"requestId,omitempty"`
}

// HTTPErrorHandler maps errors returned by handlers to responses.
// Service error kinds map to 404, 400, 409, 500 and 504; validation
// failures are answered with a {field: message} object.
func HTTPErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, body := errorResponse(err, c, log)
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.WithError(err).Warn("write error response failed")
		}
	}
}

func errorResponse(err error, c echo.Context, log logrus.FieldLogger) (int, any) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, newErrorResponse(he.Code, fmt.Sprint(he.Message))
	}

	var se *service.Error
	if !errors.As(err, &se) {
		se = service.Internal("handler", err)
	}
	switch se.Kind {
	case service.KindValidation:
		return http.StatusBadRequest, se.Fields
	case service.KindNotFound:
		return http.StatusNotFound, newErrorResponse(http.StatusNotFound, se.Message)
	case service.KindConflict:
		return http.StatusConflict, newErrorResponse(http.StatusConflict, se.Message)
	case service.KindTimeout:
		requestLog(c, log).WithError(se).Warn("request timed out")
		return http.StatusGatewayTimeout, newErrorResponse(http.StatusGatewayTimeout, se.Message)
	}
	requestLog(c, log).WithError(se).Error("internal error")
	resp := newErrorResponse(http.StatusInternalServerError, se.Message)
	resp.RequestID = requestID(c)
	return http.StatusInternalServerError, resp
}

func newErrorResponse(status int, msg string) ErrorResponse {
	return ErrorResponse{Status: status, Message: msg, Timestamp: time.Now().UTC()}
}

// requestID returns the correlation id set by the RequestID middleware.
func requestID(c echo.Context) string {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

func requestLog(c echo.Context, log logrus.FieldLogger) logrus.FieldLogger {
	return log.WithFields(logrus.Fields{
		"request_id": requestID(c),
		"method":     c.Request().Method,
		"path":       c.Path(),
	})
}
