package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"nbp-rate-service/internal/metrics"
	"nbp-rate-service/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestIDFrom returns the request ID stored by the router, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type Router struct {
	handler        *Handler
	log            *logger.Logger
	metrics        *metrics.Metrics
	metricsHandler http.Handler
}

// NewRouter serves /metrics from gatherer, normally prometheus.DefaultGatherer.
func NewRouter(handler *Handler, log *logger.Logger, metrics *metrics.Metrics, gatherer prometheus.Gatherer) *Router {
	return &Router{
		handler:        handler,
		log:            log,
		metrics:        metrics,
		metricsHandler: promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
	}
}

func (r *Router) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := req.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx := context.WithValue(req.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

func (r *Router) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()

		crw := &customResponseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(crw, req)

		// Label by route pattern so that codes and values do not explode cardinality.
		path := req.URL.Path
		if rctx := chi.RouteContext(req.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}

		if path != "/metrics" {
			duration := time.Since(start).Seconds()
			r.metrics.HTTPRequestDuration.WithLabelValues(path, req.Method).Observe(duration)
			r.metrics.HTTPRequestsTotal.WithLabelValues(path, req.Method, fmt.Sprintf("%dxx", crw.statusCode/100)).Inc()
		}

		r.log.Info("HTTP request",
			"method", req.Method,
			"path", req.URL.Path,
			"route", path,
			"status", crw.statusCode,
			"duration", time.Since(start),
			"remote_addr", req.RemoteAddr,
			"user_agent", req.UserAgent(),
			"request_id", RequestIDFrom(req.Context()),
		)
	})
}

type customResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (crw *customResponseWriter) WriteHeader(code int) {
	crw.statusCode = code
	crw.ResponseWriter.WriteHeader(code)
}

func (r *Router) SetupRoutes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(r.requestIDMiddleware)
	mux.Use(r.loggingMiddleware)
	mux.Use(middleware.Recoverer)

	mux.Route("/api/NBPapi", func(api chi.Router) {
		api.Get("/", r.handler.ListCodesHandler)
		api.Get("/{code}", r.handler.GetRateHandler)
		api.Get("/{code}/{value}", r.handler.ConvertHandler)
	})

	// Health check endpoint
	mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.Method(http.MethodGet, "/metrics", r.metricsHandler)

	return mux
}
