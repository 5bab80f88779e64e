package galaxy

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strconv"

	"stellaris-server/internal/shared/database"
	"stellaris-server/internal/shared/errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing galaxy repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

const galaxyColumns = `id, name, root_seed, galaxy_index, site_count, density, min_separation, height,
	height_distribution, beta_concentration, mass_transform, mass_scale, radius,
	status, system_count, error, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanGalaxy(row scanner) (*Galaxy, error) {
	var g Galaxy
	err := row.Scan(
		&g.ID,
		&g.Name,
		&g.RootSeed,
		&g.GalaxyIndex,
		&g.SiteCount,
		&g.Density,
		&g.MinSeparation,
		&g.Height,
		&g.HeightDistribution,
		&g.BetaConcentration,
		&g.MassTransform,
		&g.MassScale,
		&g.Radius,
		&g.Status,
		&g.SystemCount,
		&g.Error,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Create inserts g and fills in its database defaults. A second galaxy with
// the same root seed and index is a conflict.
func (r *Repository) Create(ctx context.Context, g *Galaxy) error {
	logger := r.logger.With(
		"component", "galaxy_repository",
		"operation", "create",
		"galaxy_id", g.ID,
		"root_seed", g.RootSeed,
		"galaxy_index", g.GalaxyIndex,
	)
	logger.Debug("Creating galaxy")

	query := `
		INSERT INTO galaxies (id, name, root_seed, galaxy_index, site_count, density, min_separation, height,
			height_distribution, beta_concentration, mass_transform, mass_scale, radius)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING status, system_count, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		g.ID,
		g.Name,
		g.RootSeed,
		strconv.FormatUint(g.GalaxyIndex, 10),
		g.SiteCount,
		g.Density,
		g.MinSeparation,
		g.Height,
		g.HeightDistribution,
		g.BetaConcentration,
		g.MassTransform,
		g.MassScale,
		g.Radius,
	).Scan(&g.Status, &g.SystemCount, &g.CreatedAt, &g.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if stderrors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			logger.Debug("Galaxy already exists")
			return errors.Conflictf("galaxy %d of root seed %s already exists", g.GalaxyIndex, g.RootSeed)
		}
		logger.Error("Failed to create galaxy", "error", err)
		return fmt.Errorf("failed to create galaxy: %w", err)
	}

	logger.Info("Galaxy created")
	return nil
}

func (r *Repository) MarkReady(ctx context.Context, id uuid.UUID, systemCount int) error {
	query := `
		UPDATE galaxies
		SET status = 'ready', system_count = $2, error = '', updated_at = NOW()
		WHERE id = $1
	`
	return r.updateStatus(ctx, "mark_ready", id, query, id, systemCount)
}

func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	query := `
		UPDATE galaxies
		SET status = 'failed', error = $2, updated_at = NOW()
		WHERE id = $1
	`
	return r.updateStatus(ctx, "mark_failed", id, query, id, reason)
}

func (r *Repository) updateStatus(ctx context.Context, operation string, id uuid.UUID, query string, args ...any) error {
	logger := r.logger.With("component", "galaxy_repository", "operation", operation, "galaxy_id", id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.Error("Failed to update galaxy status", "error", err)
		return fmt.Errorf("failed to update galaxy status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return errors.NotFoundf("galaxy %s not found", id)
	}

	logger.Debug("Galaxy status updated")
	return nil
}

// FailInterrupted marks galaxies still generating as failed. Jobs do not
// survive a restart, so such galaxies would never complete.
func (r *Repository) FailInterrupted(ctx context.Context) (int64, error) {
	query := `
		UPDATE galaxies
		SET status = 'failed', error = 'generation interrupted by server restart', updated_at = NOW()
		WHERE status = 'generating'
	`

	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to fail interrupted galaxies: %w", err)
	}
	return result.RowsAffected()
}

// GetByID returns nil when no galaxy has the id.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Galaxy, error) {
	logger := r.logger.With("component", "galaxy_repository", "operation", "get_by_id", "galaxy_id", id)
	logger.Debug("Getting galaxy by ID")

	query := `SELECT ` + galaxyColumns + ` FROM galaxies WHERE id = $1`

	g, err := scanGalaxy(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			logger.Debug("Galaxy not found")
			return nil, nil
		}
		logger.Error("Database error getting galaxy", "error", err)
		return nil, fmt.Errorf("database error: %w", err)
	}

	return g, nil
}

func (r *Repository) List(ctx context.Context) ([]Galaxy, error) {
	logger := r.logger.With("component", "galaxy_repository", "operation", "list")
	logger.Debug("Listing galaxies")

	query := `SELECT ` + galaxyColumns + ` FROM galaxies ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("Failed to query galaxies", "error", err)
		return nil, fmt.Errorf("failed to query galaxies: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var galaxies []Galaxy
	for rows.Next() {
		g, err := scanGalaxy(rows)
		if err != nil {
			logger.Error("Failed to scan galaxy row", "error", err)
			return nil, fmt.Errorf("failed to scan galaxy: %w", err)
		}
		galaxies = append(galaxies, *g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate galaxies: %w", err)
	}

	return galaxies, nil
}
