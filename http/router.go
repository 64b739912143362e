package http

import "net/http"

// RouterConfig holds the collaborators the routes are built from. Metrics
// and UI are optional.
type RouterConfig struct {
	Handler     *PolygonHandler
	RateLimiter *RateLimiter
	Metrics     *Metrics
	UI          http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	api := func(route string, h http.HandlerFunc) {
		var handler http.Handler = h
		if cfg.RateLimiter != nil {
			handler = RateLimitMiddleware(cfg.RateLimiter, handler)
		}
		mux.Handle(route, cfg.Metrics.Instrument(route, handler))
	}

	api("/api/calculate", cfg.Handler.Calculate)
	api("/api/calculations", cfg.Handler.Recent)

	mux.HandleFunc("/healthz", Health)
	if cfg.Metrics != nil {
		mux.Handle("/metrics", cfg.Metrics.Handler())
	}
	if cfg.UI != nil {
		mux.Handle("/", cfg.UI)
	}

	return LoggingMiddleware(mux)
}
