// Package web wires the fiber app: middleware, operational endpoints, public and admin routes.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/orkank/AppConfig/internal/config"
	fiberlog "github.com/orkank/AppConfig/internal/logger/adapter/fiber"
	"github.com/orkank/AppConfig/internal/web/handler"
	admincatalog "github.com/orkank/AppConfig/internal/web/handler/admin/catalog"
	"github.com/orkank/AppConfig/internal/web/handler/admin/entry"
	"github.com/orkank/AppConfig/internal/web/handler/admin/group"
	"github.com/orkank/AppConfig/internal/web/handler/admin/settings"
	"github.com/orkank/AppConfig/internal/web/handler/admin/transfer"
	"github.com/orkank/AppConfig/internal/web/handler/public"
	"github.com/orkank/AppConfig/internal/web/middleware/apikey"
)

const (
	// AdminPath prefixes every admin route.
	AdminPath = "/admin"
	// MetricsPath serves prometheus metrics.
	MetricsPath = "/metrics"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for SIGINT or SIGTERM and shuts the http server down gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// CheckAlive answers load balancer health checks, 503 while shutting down.
func (s *Service) CheckAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

// New creates a new web service with the given configuration and handler dependencies.
func New(cfg *config.Config, deps *handler.Deps) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if deps == nil {
		return nil, errors.New("handler dependencies cannot be nil")
	}

	deps.Cfg = cfg

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			ErrorHandler:   errorHandler,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	if cfg.Webserver.CleanPath {
		app.Use(cleanPath)
	}

	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: fiberlog.LocalsRequestID,
	}))

	app.Use(fiberlog.New(fiberlog.Config{
		Config:        cfg.Log,
		CheckAliveURI: cfg.Webserver.CheckAliveURI,
	}))

	service := &Service{
		App:          app,
		cfg:          cfg,
		fastShutDown: cfg.Webserver.FastShutDown,
	}
	service.alive.Store(true)

	app.Get(cfg.Webserver.CheckAliveURI, service.CheckAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	if err := public.Handler.Init(app, deps); err != nil {
		return nil, err
	}

	admin := app.Group(AdminPath, apikey.New(cfg.Admin.APIKeyHash))

	for _, h := range []handler.Service{
		&group.Handler,
		&entry.Handler,
		&transfer.Handler,
		&settings.Handler,
		&admincatalog.Handler,
	} {
		if err := h.Init(admin, deps); err != nil {
			return nil, err
		}
	}

	return service, nil
}

// cleanPath collapses repeated slashes so //appconfig//config routes like /appconfig/config.
func cleanPath(c *fiber.Ctx) error {
	if p := c.Path(); strings.Contains(p, "//") {
		c.Path(path.Clean(p))
	}

	return c.Next()
}

// errorHandler answers unhandled errors as json.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}

	return handler.JSONError(c, code, err.Error())
}
