package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const requestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestID returns the request id RequestLog attached to ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// probeState remembers which probes last succeeded so a healthy probe is
// logged once rather than on every poll.
type probeState struct {
	mu sync.Mutex
	ok map[string]bool
}

// quiet reports whether a probe result should be left out of the log.
func (p *probeState) quiet(path string, status int) bool {
	if path != "/healthz" && path != "/readyz" {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	healthy := status < http.StatusBadRequest
	wasHealthy := p.ok[path]
	p.ok[path] = healthy
	return healthy && wasHealthy
}

// RequestLog logs one line per request. It reuses the caller's X-Request-ID
// or generates one, and exposes it on the response, the echo context and
// the request context.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	probes := &probeState{ok: make(map[string]bool)}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			id := req.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			c.Set("request_id", id)
			c.SetRequest(req.WithContext(context.WithValue(req.Context(), requestIDKey{}, id)))
			c.Response().Header().Set(requestIDHeader, id)

			err := next(c)

			path := req.URL.Path
			status := responseStatus(c, err)
			if probes.quiet(path, status) {
				return err
			}

			level := slog.LevelInfo
			if status >= http.StatusBadRequest {
				level = slog.LevelWarn
			}
			if status >= http.StatusInternalServerError && path != "/healthz" && path != "/readyz" {
				level = slog.LevelError
			}

			attrs := []slog.Attr{
				slog.String("method", req.Method),
				slog.String("path", path),
				slog.Int("status", status),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
				slog.String("request_id", id),
			}
			if route := c.Path(); route != "" && route != path {
				attrs = append(attrs, slog.String("route", route))
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
			}
			log.LogAttrs(c.Request().Context(), level, "request", attrs...)

			return err
		}
	}
}
