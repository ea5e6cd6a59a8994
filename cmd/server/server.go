package main

import (
	"net/http"
	"time"

	"github.com/JaimeStill/stock-navigator/internal/config"
	"github.com/JaimeStill/stock-navigator/internal/infrastructure"
	"github.com/JaimeStill/stock-navigator/internal/server"
)

// Server coordinates the lifecycle of all subsystems.
type Server struct {
	infra   *infrastructure.Infrastructure
	modules *Modules
	router  http.Handler
	http    server.System
}

// NewServer creates and initializes the service with all subsystems.
// Route table validation happens here so a bad table stops startup.
func NewServer(cfg *config.Config) (*Server, error) {
	infra := infrastructure.New(cfg)

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	modules.Mount(router)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"base", modules.App.Table().Base(),
		"env", cfg.Env(),
	)

	return &Server{
		infra:   infra,
		modules: modules,
		router:  router,
		http:    server.New(&cfg.Server, cfg.ShutdownTimeoutDuration(), router, infra.ModuleLogger("server")),
	}, nil
}

// Start begins all subsystems and returns once the listener is bound.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

// Shutdown gracefully stops all subsystems within timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
