package requesthandler

import (
	"context"
	"net/http"

	"bitbucket.org/yellowmessenger/audiolab/core/upload"
	"bitbucket.org/yellowmessenger/audiolab/ymlogger"
	"github.com/labstack/echo"
)

type UploadHandler struct{}

func (handler UploadHandler) Any(c echo.Context) error {
	switch c.Request().Method {
	case http.MethodPost:
		return handler.Create(c)
	}
	return methodNotAllowed(c)
}

func (UploadHandler) Create(c echo.Context) error {
	reqID := requestID(c)
	ctx := context.WithValue(c.Request().Context(), "RequestID", reqID)

	fh, err := c.FormFile("file")
	if err != nil {
		ymlogger.LogInfof(reqID, "No file in the upload. Error: [%v]", err)
		// a part named file with an empty filename is parsed as a plain value
		if form := c.Request().MultipartForm; form != nil {
			if _, ok := form.Value["file"]; ok {
				return ErrorResponse(c, upload.ErrNoFileSelected, http.StatusBadRequest)
			}
		}
		return ErrorResponse(c, upload.ErrNoFile, http.StatusBadRequest)
	}

	response, err := upload.Create(ctx, reqID, fh)
	switch err {
	case nil:
		return Response(c, response, http.StatusOK)
	case upload.ErrNoFile, upload.ErrNoFileSelected, upload.ErrNotWAV:
		return ErrorResponse(c, err, http.StatusBadRequest)
	default:
		return ErrorResponse(c, err, http.StatusInternalServerError)
	}
}
