package main

import (
	"bitbucket.org/yellowmessenger/audiolab/configmanager"
	"bitbucket.org/yellowmessenger/audiolab/newrelic"
	"bitbucket.org/yellowmessenger/audiolab/requesthandler"

	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v3"
	echopprof "github.com/sevenNt/echo-pprof"
)

// AddRoutes defines the routes and the handlers
func AddRoutes(e *echo.Echo) {
	e.GET("/", requesthandler.IndexHandler{}.Get)
	e.Any("/upload", requesthandler.UploadHandler{}.Any)
	e.Any("/process", requesthandler.ProcessHandler{}.Any)
	e.Any("/download/:filename", requesthandler.FileHandler{}.Any)
	e.Any("/play/:filename", requesthandler.FileHandler{Inline: true}.Any)
	e.Any("/health", requesthandler.HealthHandler{}.Any)
}

// NewServer builds the echo instance with the middlewares and the routes
func NewServer(conf configmanager.ServerConf) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = requesthandler.HTTPErrorHandler
	// Register new relic middleware
	e.Use(nrecho.Middleware(newrelic.App))
	e.Use(middleware.Secure())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(conf.BodyLimit))
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.LoggerWithConfig(middleware.DefaultLoggerConfig))
	e.Debug = conf.Debug

	requesthandler.InitProcessLimiter(conf)
	AddRoutes(e)

	if conf.Debug {
		echopprof.Wrap(e)
	}
	return e
}
