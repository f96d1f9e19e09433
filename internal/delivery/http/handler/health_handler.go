package handler

import (
	"context"
	"net/http"
	"time"

	"docpool/pkg/response"

	"golang.org/x/sync/errgroup"
)

const healthTimeout = 3 * time.Second

// HealthCheck probes one dependency.
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

type HealthHandler struct {
	checks []HealthCheck
}

func NewHealthHandler(checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

type healthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// Check runs every probe concurrently and waits for all of them.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	results := make([]string, len(h.checks))
	var g errgroup.Group
	for i, check := range h.checks {
		g.Go(func() error {
			if err := check.Ping(ctx); err != nil {
				results[i] = err.Error()
				return err
			}
			results[i] = "ok"
			return nil
		})
	}
	err := g.Wait()

	resp := healthResponse{Status: "ok", Components: make(map[string]string, len(h.checks))}
	for i, check := range h.checks {
		resp.Components[check.Name] = results[i]
	}

	if err != nil {
		resp.Status = "unavailable"
		response.ServiceUnavailable(w, resp)
		return
	}
	response.JSON(w, http.StatusOK, resp)
}
