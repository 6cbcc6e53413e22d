package config

import (
	"fmt"
	"os"

	"github.com/nlowen/catalog/pkg/formatting"
	"github.com/nlowen/catalog/pkg/middleware"
	"github.com/nlowen/catalog/pkg/openapi"
	"github.com/nlowen/catalog/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "CATALOG_CORS_ENABLED",
	Origins:          "CATALOG_CORS_ORIGINS",
	AllowedMethods:   "CATALOG_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "CATALOG_CORS_ALLOWED_HEADERS",
	AllowCredentials: "CATALOG_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "CATALOG_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "CATALOG_PAGINATION_DEFAULT_PAGE_SIZE",
}

var docsEnv = &openapi.ConfigEnv{
	Title:       "CATALOG_DOCS_TITLE",
	Description: "CATALOG_DOCS_DESCRIPTION",
}

// APIConfig holds API routing, CORS, pagination, and docs settings.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize string                `toml:"max_body_size"`
	CORS        middleware.CORSConfig `toml:"cors"`
	Pagination  pagination.Config     `toml:"pagination"`
	Docs        openapi.Config        `toml:"docs"`
}

func (c *APIConfig) MaxBodySizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxBodySize)
	if err != nil {
		return 64 * 1024 // 64KB fallback
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS, pagination, and docs configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.Docs.Finalize(docsEnv); err != nil {
		return fmt.Errorf("docs: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.Docs.Merge(&overlay.Docs)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/entities"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "64KB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("CATALOG_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("CATALOG_API_MAX_BODY_SIZE"); v != "" {
		c.MaxBodySize = v
	}
}
