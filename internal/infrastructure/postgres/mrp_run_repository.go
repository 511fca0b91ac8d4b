package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

var _ repository.MRPRunRepository = (*MRPRunRepo)(nil)

// MRPRunRepo implementación en PostgreSQL de MRPRunRepository.
type MRPRunRepo struct {
	q Querier
}

// NewMRPRunRepository construye el repositorio.
func NewMRPRunRepository(q Querier) *MRPRunRepo {
	return &MRPRunRepo{q: q}
}

const mrpRunColumns = `id, run_code, organization_id, plant_id, status, run_date, planning_horizon_start,
	planning_horizon_end, materials_processed, materials_skipped, planned_orders_created,
	total_shortage_qty, skipped_materials, error_message, completed_at, created_by`

// Create inserta la corrida en RUNNING.
func (r *MRPRunRepo) Create(ctx context.Context, run *entity.MRPRun) error {
	skipped, err := json.Marshal(nonNilSkipped(run.SkippedMaterials))
	if err != nil {
		return fmt.Errorf("marshal skipped materials: %w", err)
	}
	query := `INSERT INTO mrp_runs (` + mrpRunColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err = r.q.Exec(ctx, query,
		run.ID, run.RunCode, run.OrganizationID, run.PlantID, run.Status, run.RunDate,
		dayParam(run.PlanningHorizonStart), dayParam(run.PlanningHorizonEnd),
		run.MaterialsProcessed, run.MaterialsSkipped, run.PlannedOrdersCreated,
		run.TotalShortageQty, skipped, run.ErrorMessage, run.CompletedAt, run.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: corrida %s ya existe", domain.ErrConflict, run.RunCode)
		}
		return err
	}
	return nil
}

// Finish cierra la corrida. Solo afecta filas en RUNNING.
func (r *MRPRunRepo) Finish(ctx context.Context, run *entity.MRPRun) error {
	skipped, err := json.Marshal(nonNilSkipped(run.SkippedMaterials))
	if err != nil {
		return fmt.Errorf("marshal skipped materials: %w", err)
	}
	query := `UPDATE mrp_runs
		SET status = $2, materials_processed = $3, materials_skipped = $4, planned_orders_created = $5,
			total_shortage_qty = $6, skipped_materials = $7, error_message = $8, completed_at = $9
		WHERE id = $1 AND status = $10`
	tag, err := r.q.Exec(ctx, query,
		run.ID, run.Status, run.MaterialsProcessed, run.MaterialsSkipped, run.PlannedOrdersCreated,
		run.TotalShortageQty, skipped, run.ErrorMessage, run.CompletedAt, entity.MRPRunStatusRunning,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: corrida %s no está en RUNNING", domain.ErrConflict, run.ID)
	}
	return nil
}

// GetByID obtiene una corrida.
func (r *MRPRunRepo) GetByID(ctx context.Context, id string) (*entity.MRPRun, error) {
	query := `SELECT ` + mrpRunColumns + ` FROM mrp_runs WHERE id = $1`
	run, err := scanMRPRun(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return run, nil
}

// ListByPlant corridas de la planta, más recientes primero.
func (r *MRPRunRepo) ListByPlant(ctx context.Context, organizationID, plantID string, limit, offset int) ([]*entity.MRPRun, error) {
	query := `SELECT ` + mrpRunColumns + `
		FROM mrp_runs
		WHERE organization_id = $1 AND plant_id = $2
		ORDER BY run_date DESC, id
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, organizationID, plantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*entity.MRPRun
	for rows.Next() {
		run, err := scanMRPRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan mrp run: %w", err)
		}
		list = append(list, run)
	}
	return list, rows.Err()
}

func scanMRPRun(row pgx.Row) (*entity.MRPRun, error) {
	var run entity.MRPRun
	var skipped []byte
	err := row.Scan(
		&run.ID, &run.RunCode, &run.OrganizationID, &run.PlantID, &run.Status, &run.RunDate,
		&run.PlanningHorizonStart, &run.PlanningHorizonEnd, &run.MaterialsProcessed, &run.MaterialsSkipped,
		&run.PlannedOrdersCreated, &run.TotalShortageQty, &skipped, &run.ErrorMessage, &run.CompletedAt,
		&run.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	run.SkippedMaterials = []entity.SkippedMaterial{}
	if len(skipped) > 0 {
		if err := json.Unmarshal(skipped, &run.SkippedMaterials); err != nil {
			return nil, fmt.Errorf("unmarshal skipped materials: %w", err)
		}
	}
	return &run, nil
}

func nonNilSkipped(s []entity.SkippedMaterial) []entity.SkippedMaterial {
	if s == nil {
		return []entity.SkippedMaterial{}
	}
	return s
}
