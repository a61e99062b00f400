// Package server exposes grid reference conversion over HTTP.
package server

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pspoerri/photogridref/internal/locate"
	"github.com/pspoerri/photogridref/internal/metrics"
)

// Options configures the router.
type Options struct {
	Logger        *slog.Logger
	Metrics       *metrics.Metrics
	Gatherer      prometheus.Gatherer // serves /metrics when set
	Locate        locate.Options
	MaxImageBytes int64
	DefaultFormat string // report format when the request names none; "json" if empty
}

// NewRouter wires the HTTP handlers and returns an http.Handler.
func NewRouter(opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewMetrics(prometheus.NewRegistry())
	}
	if opts.DefaultFormat == "" {
		opts.DefaultFormat = "json"
	}

	h := &GridRefHandler{
		Log:           opts.Logger,
		Metrics:       opts.Metrics,
		Locate:        opts.Locate,
		MaxImageBytes: opts.MaxImageBytes,
		DefaultFormat: opts.DefaultFormat,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", Health)
	mux.HandleFunc("POST /v1/gridref", h.FromImage)
	mux.HandleFunc("GET /v1/gridref", h.FromPosition)
	if opts.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	return requestMiddleware(opts.Logger, opts.Metrics, mux)
}
