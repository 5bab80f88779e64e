package system

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"stellaris-server/internal/shared/database"

	"github.com/google/uuid"
)

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing planetary system repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

// batchRow is the JSON shape unpacked by json_array_elements on insert.
type batchRow struct {
	ID          uuid.UUID `json:"id"`
	Index       int       `json:"index"`
	X           float32   `json:"x"`
	Y           float32   `json:"y"`
	Z           float32   `json:"z"`
	Mass        float32   `json:"mass"`
	Scale       float32   `json:"scale"`
	StreamState string    `json:"stream_state"`
}

// ReplaceForGalaxy stores the systems of a galaxy in one transaction,
// replacing any rows left by an earlier attempt.
func (r *Repository) ReplaceForGalaxy(ctx context.Context, galaxyID uuid.UUID, systems []PlanetarySystem) error {
	logger := r.logger.With(
		"component", "system_repository",
		"operation", "replace_for_galaxy",
		"galaxy_id", galaxyID,
		"count", len(systems),
	)
	logger.Debug("Storing planetary systems")

	rows := make([]batchRow, len(systems))
	for i, s := range systems {
		rows[i] = batchRow{
			ID:          s.ID,
			Index:       s.Index,
			X:           s.X,
			Y:           s.Y,
			Z:           s.Z,
			Mass:        s.Mass,
			Scale:       s.Scale,
			StreamState: s.StreamState,
		}
	}

	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to encode systems: %w", err)
	}

	err = r.db.WithTx(ctx, func(tx *database.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM planetary_systems WHERE galaxy_id = $1`, galaxyID); err != nil {
			return fmt.Errorf("failed to clear systems: %w", err)
		}

		query := `
			INSERT INTO planetary_systems (id, galaxy_id, system_index, x, y, z, mass, scale, stream_state)
			SELECT (e->>'id')::uuid, $1, (e->>'index')::int,
				(e->>'x')::real, (e->>'y')::real, (e->>'z')::real,
				(e->>'mass')::real, (e->>'scale')::real, e->>'stream_state'
			FROM json_array_elements($2::json) AS e
		`
		if _, err := tx.ExecContext(ctx, query, galaxyID, string(payload)); err != nil {
			return fmt.Errorf("failed to insert systems: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to store planetary systems", "error", err)
		return err
	}

	logger.Info("Planetary systems stored")
	return nil
}

func (r *Repository) ListByGalaxy(ctx context.Context, galaxyID uuid.UUID) ([]PlanetarySystem, error) {
	logger := r.logger.With("component", "system_repository", "operation", "list_by_galaxy", "galaxy_id", galaxyID)
	logger.Debug("Listing planetary systems")

	query := `
		SELECT id, galaxy_id, system_index, x, y, z, mass, scale, stream_state, planet_count, created_at
		FROM planetary_systems
		WHERE galaxy_id = $1
		ORDER BY system_index
	`

	rows, err := r.db.QueryContext(ctx, query, galaxyID)
	if err != nil {
		logger.Error("Failed to query planetary systems", "error", err)
		return nil, fmt.Errorf("failed to query planetary systems: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var systems []PlanetarySystem
	for rows.Next() {
		var s PlanetarySystem
		err := rows.Scan(
			&s.ID,
			&s.GalaxyID,
			&s.Index,
			&s.X,
			&s.Y,
			&s.Z,
			&s.Mass,
			&s.Scale,
			&s.StreamState,
			&s.PlanetCount,
			&s.CreatedAt,
		)
		if err != nil {
			logger.Error("Failed to scan planetary system row", "error", err)
			return nil, fmt.Errorf("failed to scan planetary system: %w", err)
		}
		systems = append(systems, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate planetary systems: %w", err)
	}

	logger.Debug("Planetary systems listed", "count", len(systems))
	return systems, nil
}
