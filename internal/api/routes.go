package api

import (
	"net/http"

	"github.com/steward-io/steward/internal/engine"
	"github.com/steward-io/steward/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, runtime *Runtime) {
	routes.Register(
		mux,
		domain.Tenants.Handler().Routes(),
		domain.ProcessTypes.Handler().Routes(),
		domain.Prompts.Handler().Routes(),
		domain.Configurations.Handler().Routes(),
		domain.Processes.Handler().Routes(),
		domain.Audit.Handler().Routes(),
		domain.Notifications.Handler().Routes(),
		domain.Outputs.Handler().Routes(),
		engine.NewHandler(domain.Machine, runtime.Logger).Routes(),
	)
}
