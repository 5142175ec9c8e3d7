package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"smdb/errs"
	"smdb/movie"
	"smdb/pkg/result"
	"smdb/pkg/sentry"

	"github.com/labstack/echo/v4"
)

const (
	successMessage       = "OK"
	internalErrorMessage = "Internal server error"
	defaultErrorCode     = "100500"
)

type APIResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Result  interface{} `json:"result,omitempty"`
	Info    string      `json:"info,omitempty"`
}

func writeSuccess(c echo.Context, status int, result interface{}) error {
	return c.JSON(status, APIResponse{
		Code:    strconv.Itoa(status),
		Message: successMessage,
		Result:  result,
	})
}

func writePagedList(c echo.Context, status int, data interface{}, page, limit, total int) error {
	return writeSuccess(c, status, map[string]interface{}{
		"data":  data,
		"page":  page,
		"limit": limit,
		"total": total,
	})
}

func writeError(c echo.Context, status int, message, info string, err error) error {
	return c.JSON(status, APIResponse{
		Code:    errorCode(err, status),
		Message: message,
		Info:    info,
	})
}

// writeMovie forwards a single-movie Result to the wire.
func (s *Server) writeMovie(c echo.Context, res result.Result[*movie.Movie]) error {
	if !res.IsOK() {
		return s.writeFailure(c, res.Err(), res.StatusCode())
	}
	return writeSuccess(c, res.StatusCode(), res.Payload())
}

// writeFailure logs err and writes its message. Server side failures are
// reported to sentry and their details are not sent to the client.
func (s *Server) writeFailure(c echo.Context, err error, status int) error {
	message := errs.ErrorMessage(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error(err.Error(),
			"request_id", s.requestID(c),
			"status", status,
		)
		sentry.WithContext(c).
			WithTags(map[string]string{"status": strconv.Itoa(status)}).
			WithExtras(map[string]interface{}{
				"method":     c.Request().Method,
				"uri":        c.Request().RequestURI,
				"request_id": s.requestID(c),
			}).
			Error(err)
		message = internalErrorMessage
	}
	return writeError(c, status, message, "", err)
}

func (s *Server) requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

func errorCode(err error, status int) string {
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case errs.EINVALID:
			return "100010"
		case errs.ENOTFOUND:
			return "100404"
		case errs.ECONFLICT:
			return "100409"
		case errs.EUNAUTHORIZED:
			return "100401"
		case errs.ENOTIMPLEMENTED:
			return "100501"
		case errs.EINTERNAL:
			return defaultErrorCode
		}
	}

	if status != 0 {
		return fmt.Sprintf("100%03d", status)
	}
	return defaultErrorCode
}
