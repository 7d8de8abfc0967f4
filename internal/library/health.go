package library

import (
	"context"
	"time"

	"github.com/5w1tchy/smart-library-api/internal/models"
)

const healthTimeout = 2 * time.Second

// Health is the /health payload body. It never fails; broken dependencies
// are reported in Services.
type Health struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
	Metrics  map[string]any    `json:"metrics"`
}

func (s *Service) Health(ctx context.Context) Health {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	h := Health{
		Status:   "operational",
		Services: map[string]string{"api": "healthy"},
		Metrics:  map[string]any{},
	}

	if err := s.store.Ping(ctx); err != nil {
		h.Services["database"] = "unhealthy: " + err.Error()
	} else if n, err := s.store.Count(ctx, models.BookFilter{}); err != nil {
		h.Services["database"] = "unhealthy: " + err.Error()
	} else {
		h.Services["database"] = "healthy"
		h.Metrics["total_books"] = n
	}

	switch {
	case s.events == nil:
		h.Services["events"] = "disabled"
	default:
		if err := s.events.Ping(ctx); err != nil {
			h.Services["events"] = "unhealthy: " + err.Error()
		} else {
			h.Services["events"] = "healthy"
		}
	}
	return h
}
