package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/nlowen/catalog/internal/api"
	"github.com/nlowen/catalog/internal/config"
	"github.com/nlowen/catalog/internal/infrastructure"
	"github.com/nlowen/catalog/pkg/middleware"
	"github.com/nlowen/catalog/pkg/module"
	"github.com/nlowen/catalog/pkg/openapi"
	"github.com/nlowen/catalog/web/scalar"
)

type Modules struct {
	API  *module.Module
	Docs *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	docsModule := scalar.NewModule("/docs", "/openapi.json", cfg.API.Docs.Title)
	docsModule.Use(middleware.Logger(infra.Logger))

	return &Modules{
		API:  apiModule,
		Docs: docsModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Docs)
}

func buildRouter(infra *infrastructure.Infrastructure, cfg *config.Config) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	spec, err := openapi.MarshalJSON(api.NewSpec(cfg))
	if err != nil {
		log.Fatal("openapi spec generation failed:", err)
	}
	router.HandleNative("GET /openapi.json", openapi.ServeSpec(spec))

	return router
}
