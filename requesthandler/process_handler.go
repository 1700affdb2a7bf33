package requesthandler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"bitbucket.org/yellowmessenger/audiolab/configmanager"
	"bitbucket.org/yellowmessenger/audiolab/contracts"
	"bitbucket.org/yellowmessenger/audiolab/core/process"
	"bitbucket.org/yellowmessenger/audiolab/utils/effects"
	"github.com/labstack/echo"
	"golang.org/x/time/rate"
)

var processLimiter = rate.NewLimiter(rate.Inf, 1)

// InitProcessLimiter sets the /process request rate from the config
func InitProcessLimiter(conf configmanager.ServerConf) {
	burst := conf.ProcessBurst
	if burst < 1 {
		burst = 1
	}
	limit := rate.Inf
	if conf.ProcessRequestsPerSecond > 0 {
		limit = rate.Limit(conf.ProcessRequestsPerSecond)
	}
	processLimiter = rate.NewLimiter(limit, burst)
}

type ProcessHandler struct{}

func (handler ProcessHandler) Any(c echo.Context) error {
	switch c.Request().Method {
	case http.MethodPost:
		return handler.Create(c)
	}
	return methodNotAllowed(c)
}

func (ProcessHandler) Create(c echo.Context) error {
	reqID := requestID(c)
	ctx := context.WithValue(c.Request().Context(), "RequestID", reqID)
	if processLimiter.Allow() == false {
		return ErrorResponse(c, errors.New("Making more than allowed requests"), http.StatusTooManyRequests)
	}

	pReq := new(contracts.ProcessRequest)
	if err := pReq.ExtractFromHTTP(c); err != nil {
		return ErrorResponse(c, err, http.StatusBadRequest)
	}
	if err := pReq.Validate(); err != nil {
		return ErrorResponse(c, err, http.StatusBadRequest)
	}

	response, err := process.Create(ctx, reqID, *pReq)
	if err == nil {
		return Response(c, response, http.StatusOK)
	}
	var toolErr *effects.ToolError
	switch {
	case errors.Is(err, process.ErrFileNotFound):
		return ErrorResponse(c, err, http.StatusNotFound)
	case errors.Is(err, process.ErrInvalidEffect):
		return ErrorResponse(c, err, http.StatusBadRequest)
	case errors.As(err, &toolErr):
		return ErrorResponse(c, fmt.Errorf("Processing failed: %s", toolErr.Stderr), http.StatusInternalServerError)
	case errors.Is(err, effects.ErrTimeout):
		return ErrorResponse(c, errors.New("Processing timed out"), http.StatusInternalServerError)
	default:
		return ErrorResponse(c, err, http.StatusInternalServerError)
	}
}
