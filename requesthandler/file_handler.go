package requesthandler

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"bitbucket.org/yellowmessenger/audiolab/configmanager"
	"bitbucket.org/yellowmessenger/audiolab/utils/helper"
	"bitbucket.org/yellowmessenger/audiolab/ymlogger"
	"github.com/labstack/echo"
)

var errFileNotFound = errors.New("File not found")

// FileHandler serves files of the upload folder. Inline files are played in
// the browser, the rest are sent as attachments.
type FileHandler struct {
	Inline bool
}

func (handler FileHandler) Any(c echo.Context) error {
	switch c.Request().Method {
	case http.MethodGet, http.MethodHead:
		return handler.Get(c)
	}
	return methodNotAllowed(c)
}

func (handler FileHandler) Get(c echo.Context) error {
	name := c.Param("filename")
	if !helper.IsSafeName(name) {
		ymlogger.LogInfof(requestID(c), "Rejected file name [%s]", name)
		return ErrorResponse(c, errFileNotFound, http.StatusNotFound)
	}
	path := filepath.Join(configmanager.ConfStore.Upload.Dir, name)
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return ErrorResponse(c, errFileNotFound, http.StatusNotFound)
	}
	if handler.Inline {
		c.Response().Header().Set(echo.HeaderContentType, "audio/wav")
		return c.Inline(path, name)
	}
	return c.Attachment(path, name)
}

type IndexHandler struct{}

func (IndexHandler) Get(c echo.Context) error {
	index := configmanager.ConfStore.Server.IndexFile
	if len(index) == 0 {
		return ErrorResponse(c, errors.New("No index page configured"), http.StatusNotFound)
	}
	if _, err := os.Stat(index); err != nil {
		ymlogger.LogErrorf(requestID(c), "Index page [%s] unavailable. Error: [%v]", index, err)
		return ErrorResponse(c, errors.New("Index page not found"), http.StatusNotFound)
	}
	return c.File(index)
}
