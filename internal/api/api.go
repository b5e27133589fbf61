// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/steward-io/steward/internal/config"
	"github.com/steward-io/steward/internal/engine"
	"github.com/steward-io/steward/internal/infrastructure"
	"github.com/steward-io/steward/pkg/middleware"
	"github.com/steward-io/steward/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(
	cfg *config.Config,
	infra *infrastructure.Infrastructure,
	executor engine.StageExecutor,
) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime, executor)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, runtime)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
