package api

import (
	"fmt"
	"log/slog"
	"net/http"
)

// Route paths.
const (
	PathHealth = "/health"
	PathData   = "/api/data"
)

// SetupRoutes registers the standard routes on router.
func SetupRoutes(router *Router, h *Handlers, logger *slog.Logger) error {
	routes := []struct {
		path    string
		method  string
		handler HandlerFunc
	}{
		{PathHealth, http.MethodGet, h.Health},
		{PathData, http.MethodGet, h.Get},
		{PathData, http.MethodPost, h.Post},
	}

	for _, rt := range routes {
		if err := router.Register(rt.path, rt.method, rt.handler); err != nil {
			return fmt.Errorf("registering %s %s: %w", rt.method, rt.path, err)
		}
	}
	if logger != nil {
		logger.Debug("routes set up", "count", len(routes))
	}
	return nil
}
