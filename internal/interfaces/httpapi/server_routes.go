package httpapi

import "net/http"

type routeRegistrar struct {
	mux     *http.ServeMux
	metrics HTTPMetrics
}

func (r routeRegistrar) handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, InstrumentRoute(r.metrics, pattern, handler))
}

func (r routeRegistrar) handleFunc(pattern string, handler http.HandlerFunc) {
	r.handle(pattern, handler)
}

func registerSystemRoutes(routes routeRegistrar, handler *Handler, swaggerEnabled bool, metricsHandler http.Handler) {
	routes.mux.HandleFunc("GET /healthz", handler.Healthz)
	routes.mux.HandleFunc("GET /readyz", handler.Readyz)
	if metricsHandler != nil {
		routes.mux.Handle("GET /metrics", metricsHandler)
	}
	if !swaggerEnabled {
		return
	}

	routes.mux.HandleFunc("GET /openapi.yaml", serveOpenAPI)
	routes.mux.HandleFunc("GET /docs", serveSwaggerUI)
	routes.mux.HandleFunc("GET /docs/", serveSwaggerUI)
}

func registerPublicRoutes(routes routeRegistrar, handler *Handler) {
	routes.handleFunc("GET /v1/markers", handler.ListMarkers)
	routes.handleFunc("GET /v1/dataset", handler.GetDataset)
}

func registerInternalRoutes(routes routeRegistrar, handler *Handler, internalToken string) {
	routes.handle("POST /v1/internal/reload", RequireInternalToken(internalToken, http.HandlerFunc(handler.ReloadDataset)))
}
