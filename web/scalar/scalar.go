package scalar

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/nlowen/catalog/pkg/module"
)

//go:embed index.html
var staticFS embed.FS

// NewModule creates a module that serves the Scalar API reference UI at
// basePath, rendering documentation for the spec published at specURL.
func NewModule(basePath, specURL, title string) *module.Module {
	router := buildRouter(specURL, title)
	return module.New(basePath, router)
}

func buildRouter(specURL, title string) http.Handler {
	mux := http.NewServeMux()

	tmpl := template.Must(template.ParseFS(staticFS, "index.html"))
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		tmpl.Execute(w, map[string]string{
			"SpecURL": specURL,
			"Title":   title,
		})
	})

	return mux
}
