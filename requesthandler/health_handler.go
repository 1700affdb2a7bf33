package requesthandler

import (
	"context"
	"net/http"

	"bitbucket.org/yellowmessenger/audiolab/core/health"
	"bitbucket.org/yellowmessenger/audiolab/core/process"
	"github.com/labstack/echo"
)

type HealthHandler struct{}

func (handler HealthHandler) Any(c echo.Context) error {
	switch c.Request().Method {
	case http.MethodGet:
		return handler.Get(c)
	}
	return methodNotAllowed(c)
}

func (HealthHandler) Get(c echo.Context) error {
	ctx := context.WithValue(c.Request().Context(), "RequestID", "Health")
	response, err := health.Get(ctx, process.Runner())
	if err != nil {
		return ErrorResponse(c, err, http.StatusInternalServerError)
	}
	return Response(c, response, http.StatusOK)
}
