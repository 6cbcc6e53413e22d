package main

import (
	"net/http"
	"time"

	"github.com/nlowen/catalog/internal/auth"
	"github.com/nlowen/catalog/internal/config"
	"github.com/nlowen/catalog/internal/infrastructure"
)

type Server struct {
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    *httpServer
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra, cfg)
	modules.Mount(router)

	handler, err := buildGate(cfg, infra, router)
	if err != nil {
		return nil, err
	}

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
	)

	return &Server{
		infra:   infra,
		modules: modules,
		http:    newHTTPServer(&cfg.Server, handler, infra.Logger),
	}, nil
}

// buildGate wraps the root router in Basic auth enforcement so the gate
// evaluates request paths before module prefix stripping.
func buildGate(
	cfg *config.Config,
	infra *infrastructure.Infrastructure,
	router http.Handler,
) (http.Handler, error) {
	accounts, err := cfg.Security.SeedAccounts()
	if err != nil {
		return nil, err
	}

	source, err := auth.NewStaticSource(accounts)
	if err != nil {
		return nil, err
	}

	gate := auth.NewGate(
		source,
		auth.DefaultPolicy(cfg.API.BasePath),
		infra.Logger,
	)

	return gate.Middleware(router), nil
}

func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
