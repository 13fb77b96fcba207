package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/searchforge/render_telemetry/internal/api"
	"github.com/searchforge/render_telemetry/internal/config"
	"github.com/searchforge/render_telemetry/obs"
	"github.com/searchforge/render_telemetry/registry"
	"github.com/searchforge/render_telemetry/telemetry"
)

func main() {
	envFile := flag.String("env-file", ".env", "optional dotenv file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	shutdown, err := obs.InitTracer(cfg.ServiceName, cfg.TraceSampleRatio)
	if err != nil {
		log.Printf("obs: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			log.Printf("tracer shutdown error: %v", err)
		}
	}()

	// Example composition root: nothing here calls the facade. Phase timings
	// only move when a pipeline embedding the telemetry package runs in this
	// same binary, since the exported registry is process-local.
	backend := telemetry.BackendName()

	router, err := api.NewRouter(registry.Default(), backend, obs.Handler(prometheus.DefaultGatherer, cfg.OpenMetrics))
	if err != nil {
		log.Fatalf("router: %v", err)
	}

	root := chi.NewRouter()
	root.Mount("/", router)

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("render telemetry (%s backend) listening on :%d", backend, cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
