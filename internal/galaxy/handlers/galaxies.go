package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"stellaris-server/internal/galaxy"
	"stellaris-server/internal/shared/errors"
	"stellaris-server/internal/shared/response"
	"stellaris-server/internal/system"

	"github.com/google/uuid"
)

type GalaxyService interface {
	Defaults() galaxy.CreateRequest
	RequestGeneration(ctx context.Context, req galaxy.CreateRequest) (*galaxy.Galaxy, error)
	List(ctx context.Context) ([]galaxy.Galaxy, error)
	Get(ctx context.Context, id uuid.UUID) (*galaxy.Galaxy, error)
	Systems(ctx context.Context, id uuid.UUID) ([]system.PlanetarySystem, error)
}

type GalaxyHandler struct {
	service GalaxyService
}

func NewGalaxyHandler(service GalaxyService) *GalaxyHandler {
	return &GalaxyHandler{service: service}
}

// CreateGalaxy accepts a generation request. Fields missing from the body
// take their configured defaults.
func (h *GalaxyHandler) CreateGalaxy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "create_galaxy")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	req := h.service.Defaults()

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return
	}

	created, err := h.service.RequestGeneration(ctx, req)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusAccepted, created)
}

func (h *GalaxyHandler) GetGalaxies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_galaxies")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	galaxies, err := h.service.List(ctx)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, galaxies)
}

func (h *GalaxyHandler) GetGalaxy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_galaxy")

	id, err := galaxyID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	g, err := h.service.Get(ctx, id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, g)
}

func (h *GalaxyHandler) GetGalaxySystems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_galaxy_systems")

	id, err := galaxyID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	systems, err := h.service.Systems(ctx, id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, systems)
}

func galaxyID(r *http.Request) (uuid.UUID, error) {
	idStr := r.PathValue("id")
	if idStr == "" {
		return uuid.Nil, errors.Validation("galaxy ID is required")
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, errors.WrapValidation("invalid galaxy ID format", err)
	}
	return id, nil
}
