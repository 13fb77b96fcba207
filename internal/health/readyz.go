package health

import (
	"encoding/json"
	"net/http"

	"github.com/searchforge/render_telemetry/registry"
)

// Readyz reports the compiled-in backend and how many metrics exist.
// An active backend with no metrics is not ready.
func Readyz(reg *registry.Registry, backend string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := reg.Len()
		ok := backend != "active" || n > 0

		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}

		payload := map[string]any{
			"backend": backend,
			"metrics": n,
			"ready":   ok,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(payload)
	}
}
