package httpapi

import (
	"net/http"

	"github.com/riskibarqy/stadium-matchmap/internal/platform/logging"
)

type RouterConfig struct {
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	InternalToken      string

	// Metrics and MetricsHandler are optional.
	Metrics        HTTPMetrics
	MetricsHandler http.Handler
}

func NewRouter(handler *Handler, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	routes := routeRegistrar{mux: mux, metrics: cfg.Metrics}
	registerSystemRoutes(routes, handler, cfg.SwaggerEnabled, cfg.MetricsHandler)
	registerPublicRoutes(routes, handler)
	registerInternalRoutes(routes, handler, cfg.InternalToken)

	return RequestTracing(RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(r.Context(), "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(r.Context(), w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
