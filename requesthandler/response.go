package requesthandler

import (
	"errors"
	"fmt"
	"net/http"

	"bitbucket.org/yellowmessenger/audiolab/contracts"
	"bitbucket.org/yellowmessenger/audiolab/ymlogger"
	"github.com/google/uuid"
	"github.com/labstack/echo"
)

// RequestIDHeader carries the id a client may supply for log correlation
const RequestIDHeader = "X-Request-ID"

func Response(c echo.Context, response contracts.Response, httpCode int) error {
	response.SetHTTPCode(httpCode)
	response.SetHTTPText(httpCode)
	response.SetMethod(c.Request().Method)
	return RawResponse(c, response, httpCode)
}

func RawResponse(c echo.Context, response interface{}, httpCode int) error {
	return c.JSON(httpCode, response)
}

// ErrorResponse writes err in the no-data envelope
func ErrorResponse(c echo.Context, err error, httpCode int) error {
	return Response(c, contracts.NewErrorResponse(err), httpCode)
}

func methodNotAllowed(c echo.Context) error {
	return ErrorResponse(c, errors.New(http.StatusText(http.StatusMethodNotAllowed)), http.StatusMethodNotAllowed)
}

// HTTPErrorHandler writes the errors raised by echo and its middlewares,
// e.g. the body limit or an unknown route, in the no-data envelope.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		err = fmt.Errorf("%v", he.Message)
	}
	if code >= http.StatusInternalServerError {
		ymlogger.LogErrorf(requestID(c), "Request failed. Error: [%v]", err)
	}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = ErrorResponse(c, err, code)
	}
	if err != nil {
		ymlogger.LogErrorf(requestID(c), "Failed to write the error response. Error: [%v]", err)
	}
}

func requestID(c echo.Context) string {
	if id := c.Request().Header.Get(RequestIDHeader); len(id) > 0 {
		return id
	}
	return uuid.New().String()
}
