package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"backoffice/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	Logger *slog.Logger
	// Registry receives the HTTP metrics and backs /metrics.
	Registry *prometheus.Registry
	// ValidateRequests enables OpenAPI request validation on /api/v1.
	ValidateRequests bool
}

// NewRouter builds the echo instance serving the API, health, metrics and documentation routes.
func NewRouter(server *Server, opts RouterOptions) (*echo.Echo, error) {
	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	registerSwaggerDoc(docJSON)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(opts.Logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(opts.Logger))
	e.Use(Metrics(opts.Registry))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, docJSON)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("")
	api.Use(RequireConfirmation())
	if opts.ValidateRequests {
		doc, err := servers.LoadSwagger()
		if err != nil {
			return nil, err
		}
		validator, err := ValidateRequests(doc)
		if err != nil {
			return nil, err
		}
		api.Use(validator)
	}
	servers.RegisterHandlers(api, server)

	return e, nil
}

type swaggerDoc []byte

func (d swaggerDoc) ReadDoc() string { return string(d) }

var swaggerOnce sync.Once

// swag keeps a process-wide registry that panics on a second registration.
func registerSwaggerDoc(doc []byte) {
	swaggerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc(doc))
	})
}
