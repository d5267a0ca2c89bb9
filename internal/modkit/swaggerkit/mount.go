// Package swaggerkit mounts the Swagger UI and the JSON spec
package swaggerkit

import (
	"net/http"

	"slopmeter/internal/modkit/httpkit"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Mount the Swagger UI and JSON spec under /swagger if enabled
func Mount(r httpkit.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusFound)
	})
	r.Get("/swagger/doc.json", serveDocJSON(docReader))
	r.Handle("/swagger/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL("/swagger/doc.json"),
	))
}
