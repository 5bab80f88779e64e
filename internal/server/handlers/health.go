package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"stellaris-server/internal/shared/response"
	"stellaris-server/internal/worker"
)

type HealthResponse struct {
	Status      string       `json:"status"`
	Timestamp   string       `json:"timestamp"`
	Database    string       `json:"database"`
	Workers     worker.Stats `json:"workers"`
	PendingJobs int          `json:"pending_jobs"`
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	pool    *worker.Pool
	pending func() int
}

func NewHealthHandler(db Pinger, pool *worker.Pool, pending func() int) *HealthHandler {
	return &HealthHandler{db: db, pool: pool, pending: pending}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "health")

	status := "healthy"
	dbStatus := "connected"
	if err := h.db.Ping(r.Context()); err != nil {
		logger.Warn("Database ping failed", "error", err)
		status = "degraded"
		dbStatus = "disconnected"
	}

	resp := HealthResponse{
		Status:      status,
		Timestamp:   time.Now().Format(time.RFC3339),
		Database:    dbStatus,
		Workers:     h.pool.Stats(),
		PendingJobs: h.pending(),
	}

	response.Success(w, http.StatusOK, resp)
}
