package server

import (
	"log/slog"
	"net/http"

	"stellaris-server/internal/galaxy"
	galaxyHandlers "stellaris-server/internal/galaxy/handlers"
	"stellaris-server/internal/middleware"
	serverHandlers "stellaris-server/internal/server/handlers"
	"stellaris-server/internal/shared/database"
	"stellaris-server/internal/worker"
)

type Routes struct {
	db            *database.DB
	pool          *worker.Pool
	galaxyService *galaxy.Service
	auth          *middleware.Auth
	logger        *slog.Logger
}

func NewRoutes(db *database.DB, pool *worker.Pool, galaxyService *galaxy.Service, auth *middleware.Auth, logger *slog.Logger) *Routes {
	return &Routes{
		db:            db,
		pool:          pool,
		galaxyService: galaxyService,
		auth:          auth,
		logger:        logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := r.logger.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.db, r.pool, r.galaxyService.Pending)
	galaxyHandler := galaxyHandlers.NewGalaxyHandler(r.galaxyService)

	// Public endpoints
	mux.Handle("GET /api/server/health", healthHandler)
	mux.HandleFunc("GET /api/galaxies", galaxyHandler.GetGalaxies)
	mux.HandleFunc("GET /api/galaxies/{id}", galaxyHandler.GetGalaxy)
	mux.HandleFunc("GET /api/galaxies/{id}/systems", galaxyHandler.GetGalaxySystems)

	// Admin-only endpoints (authenticated + admin role)
	mux.Handle("POST /api/galaxies", r.auth.RequireAdmin(http.HandlerFunc(galaxyHandler.CreateGalaxy)))

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/server/health", "/api/galaxies", "/api/galaxies/{id}", "/api/galaxies/{id}/systems"},
		"admin_endpoints", []string{"POST /api/galaxies"},
	)

	return mux
}
