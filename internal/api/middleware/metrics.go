// Package middleware provides Echo middleware for the carfinder API.
package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/donaldgifford/carfinder/internal/metrics"
)

// Metrics records request count and latency labelled by route template.
// Probes set their up/down gauge instead of being counted, and scrapes of
// /metrics are not observed at all.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := c.Path()
			switch route {
			case "":
				route = "unmatched"
			case "/metrics":
				return next(c)
			}

			if g := probeGauge(route); g != nil {
				err := next(c)
				if responseStatus(c, err) < http.StatusMultipleChoices {
					g.Set(1)
				} else {
					g.Set(0)
				}
				return err
			}

			start := time.Now()
			err := next(c)

			labels := prometheus.Labels{
				"method": c.Request().Method,
				"path":   route,
				"status": strconv.Itoa(responseStatus(c, err)),
			}
			metrics.HTTPRequestDuration.With(labels).Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.With(labels).Inc()
			return err
		}
	}
}

func probeGauge(route string) prometheus.Gauge {
	switch route {
	case "/healthz":
		return metrics.HealthzUp
	case "/readyz":
		return metrics.ReadyzUp
	default:
		return nil
	}
}

// responseStatus is the status the client will see. A handler error that
// has not been written yet is rendered later by echo's error handler.
func responseStatus(c echo.Context, err error) int {
	if c.Response().Committed || err == nil {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}
