package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/univ-fsi/surveillance-api/internal/models"
)

const formationColumns = "id, domain, program, level, specialty, sections, groups, semester, module_name, created_at, updated_at"

// FormationRepository manages persistence for formations.
type FormationRepository struct {
	db *sqlx.DB
}

// NewFormationRepository constructs a FormationRepository.
func NewFormationRepository(db *sqlx.DB) *FormationRepository {
	return &FormationRepository{db: db}
}

// ListAll returns every formation; the workload analyzer partitions them by
// semester parity.
func (r *FormationRepository) ListAll(ctx context.Context) ([]models.Formation, error) {
	var formations []models.Formation
	query := fmt.Sprintf("SELECT %s FROM formations ORDER BY id", formationColumns)
	if err := r.db.SelectContext(ctx, &formations, query); err != nil {
		return nil, fmt.Errorf("list formations: %w", err)
	}
	return formations, nil
}

// FindByID fetches one formation.
func (r *FormationRepository) FindByID(ctx context.Context, id string) (*models.Formation, error) {
	query := fmt.Sprintf("SELECT %s FROM formations WHERE id = $1", formationColumns)
	var formation models.Formation
	if err := r.db.GetContext(ctx, &formation, query, id); err != nil {
		return nil, err
	}
	return &formation, nil
}
