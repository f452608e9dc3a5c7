package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/randytsao24/navnet/internal/api/handlers"
	"github.com/randytsao24/navnet/internal/config"
	"github.com/randytsao24/navnet/internal/netfile"
)

const defaultTimeout = 15 * time.Second

// NewRouter creates and configures the HTTP router with all routes and
// middleware. A nil logger means slog.Default().
func NewRouter(
	cfg *config.Config,
	network handlers.NetworkProvider,
	placement netfile.Placement,
	logger *slog.Logger,
) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(network)
	rootHandler := handlers.NewRootHandler()
	networkHandler := handlers.NewNetworkHandler(network, placement.Stations, placement.Stops)
	routeHandler := handlers.NewRouteHandler(network)

	// Core routes
	mux.HandleFunc("GET /{$}", rootHandler.Index)
	mux.HandleFunc("GET /api", rootHandler.Index)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("/", rootHandler.NotFound)

	// Network lookups
	mux.HandleFunc("GET /network", networkHandler.GetInfo)
	mux.HandleFunc("GET /network/stations", networkHandler.GetStations)
	mux.HandleFunc("GET /network/stops", networkHandler.GetStops)

	// Route finding
	mux.HandleFunc("GET /routes/preferred", routeHandler.GetPreferredRoute)
	mux.HandleFunc("GET /routes/available", routeHandler.GetAvailableRoutes)
	mux.HandleFunc("GET /routes/{station}/{stop}", routeHandler.GetRoute)

	timeout := defaultTimeout
	if cfg != nil && cfg.HTTPTimeout > 0 {
		timeout = cfg.HTTPTimeout
	}

	// Apply middleware stack
	handler := Chain(mux,
		Recovery(logger),
		Logging(logger),
		CORS,
		Timeout(timeout),
	)

	return handler
}
