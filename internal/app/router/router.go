// Package router assembles the gin engine.
package router

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	analyticshandler "stock_analytics/internal/feature/analytics/transport/handler"
	serieshandler "stock_analytics/internal/feature/series/transport/handler"
	platformhandler "stock_analytics/internal/platform/http/handler"
	jwtmw "stock_analytics/internal/platform/jwt"
)

// Handlers are the HTTP entry points. Symbols may be nil when no database is configured.
type Handlers struct {
	Health    *platformhandler.HealthHandler
	Symbols   *serieshandler.SymbolHandler
	Analytics *analyticshandler.AnalyticsHandler
}

// Options configures cross-cutting middleware.
type Options struct {
	AllowedOrigins []string
	AuthEnabled    bool
	AuthSecret     string
	// Registry receives the HTTP metrics and is exposed on /metrics. Nil uses the
	// default Prometheus registry.
	Registry *prometheus.Registry
}

func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()

	var (
		reg      prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if opts.Registry != nil {
		reg, gatherer = opts.Registry, opts.Registry
	}

	r.Use(gin.Recovery(), requestLogger(), newHTTPMetrics(reg).middleware())
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodOptions},
			AllowHeaders:     []string{"Authorization", "Content-Type"},
			MaxAge:           12 * time.Hour,
			AllowCredentials: false,
		}))
	}

	// public
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	if h.Symbols != nil {
		r.GET("/symbols", h.Symbols.List)
	}

	api := r.Group("/api/stock")
	if opts.AuthEnabled {
		api.Use(jwtmw.AuthRequired(opts.AuthSecret))
	}
	{
		api.GET("/:symbol", h.Analytics.GetOverview)
		api.GET("/:symbol/history", h.Analytics.GetHistory)

		analysis := api.Group("/analysis/:symbol")
		analysis.GET("", h.Analytics.GetMetrics)
		analysis.GET("/basic", h.Analytics.GetBasicMetrics)
		analysis.GET("/price", h.Analytics.GetPriceData)
		analysis.GET("/changes", h.Analytics.GetSuddenChanges)
		analysis.GET("/risk", h.Analytics.GetRiskAnalysis)
	}

	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

type httpMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func newHTTPMetrics(reg prometheus.Registerer) *httpMetrics {
	m := &httpMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stock", Subsystem: "http", Name: "requests_total",
			Help: "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stock", Subsystem: "http", Name: "request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.requests, m.latency)
	return m
}

func (m *httpMetrics) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.latency.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
