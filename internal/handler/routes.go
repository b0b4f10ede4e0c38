package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"onehop-proxy/internal/config"
	"onehop-proxy/internal/metrics"
	"onehop-proxy/internal/middleware"
)

// RegisterRoutes wires all route handlers onto the Echo instance.
// The proxy is mounted at the configured mount path; both the bare mount
// path (empty remainder) and everything below it reach the pipeline.
func RegisterRoutes(e *echo.Echo, cfg *config.Config, m *metrics.Metrics, proxy *ProxyHandler, health *HealthHandler) {
	sec := middleware.SecurityHeaders()

	e.GET("/healthz", health.Healthz, sec)
	e.GET("/status", health.Status, sec)

	if cfg.Metrics.Enabled {
		prefixes := []string{cfg.Server.MountPath, "/healthz", "/status", cfg.Metrics.Path}
		e.Use(middleware.MetricsMiddleware(m, prefixes))
		e.GET(cfg.Metrics.Path, echo.WrapHandler(
			promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}),
		), sec)
	}

	e.Any(cfg.Server.MountPath, proxy.Handle)
	e.Any(cfg.Server.MountPath+"/*", proxy.Handle)
}
