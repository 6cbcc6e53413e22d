package api

import (
	"net/http"

	"github.com/nlowen/catalog/internal/config"
	"github.com/nlowen/catalog/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) {
	routes.Register(
		mux,
		domain.Entities.Handler(cfg.API.MaxBodySizeBytes()).Routes(),
	)
}
