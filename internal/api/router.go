package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"golang.org/x/text/unicode/norm"

	"github.com/searchforge/render_telemetry/internal/health"
	"github.com/searchforge/render_telemetry/registry"
)

const (
	traceHeader = "X-Trace-Id"
	tracerName  = "github.com/searchforge/render_telemetry/internal/api"
)

// Router wires the HTTP endpoints for the telemetry exporter.
type Router struct {
	registry *registry.Registry
	backend  string
}

// NewRouter constructs the HTTP router. metrics, when non-nil, is mounted at /metrics.
func NewRouter(reg *registry.Registry, backend string, metrics http.Handler) (*chi.Mux, error) {
	if reg == nil {
		return nil, fmt.Errorf("registry is required")
	}
	r := &Router{
		registry: reg,
		backend:  backend,
	}

	mux := chi.NewRouter()
	mux.Use(r.traceID)
	mux.Get("/healthz", r.handleHealthz)
	mux.Get("/readyz", health.Readyz(reg, backend))
	mux.Get("/v1/timings", r.handleTimings)
	mux.Get("/v1/timings/{metric}", r.handleTiming)
	if metrics != nil {
		mux.Handle("/metrics", metrics)
	}

	return mux, nil
}

func (r *Router) traceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx, span := otel.Tracer(tracerName).Start(req.Context(), req.Method+" "+req.URL.Path)
		defer span.End()

		traceID := req.Header.Get(traceHeader)
		if sc := span.SpanContext(); traceID == "" && sc.IsSampled() {
			traceID = sc.TraceID().String()
		}
		if traceID == "" {
			traceID = uuid.NewString()
		}
		w.Header().Set(traceHeader, traceID)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

func (r *Router) handleHealthz(w http.ResponseWriter, req *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (r *Router) handleTimings(w http.ResponseWriter, req *http.Request) {
	snaps := r.registry.Snapshot()
	resp := TimingsResponseV1{
		Backend: r.backend,
		Timings: make([]TimingV1, 0, len(snaps)),
	}
	for _, s := range snaps {
		resp.Timings = append(resp.Timings, toTimingV1(s))
	}
	writeJSON(w, resp)
}

func (r *Router) handleTiming(w http.ResponseWriter, req *http.Request) {
	name := normalizeMetricName(chi.URLParam(req, "metric"))
	td, ok := r.registry.Lookup(name)
	if !ok {
		http.Error(w, fmt.Sprintf("unknown metric %q", name), http.StatusNotFound)
		return
	}
	writeJSON(w, toTimingV1(td.Snapshot()))
}

func normalizeMetricName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return name
	}
	return strings.ToLower(norm.NFKC.String(name))
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
