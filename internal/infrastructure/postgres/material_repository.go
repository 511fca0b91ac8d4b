package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación en PostgreSQL de MaterialRepository.
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el repositorio.
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const materialColumns = `id, organization_id, plant_id, material_number, description, unit_of_measure,
	procurement_type, mrp_type, lead_time_days, lot_size, safety_stock, reorder_point, standard_cost,
	created_at, updated_at`

// GetByID obtiene un material por id.
func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1`
	m, err := scanMaterial(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return m, nil
}

// ListForMRP materiales MRP de la planta ordenados por número de material.
func (r *MaterialRepo) ListForMRP(ctx context.Context, organizationID, plantID string) ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + `
		FROM materials
		WHERE organization_id = $1 AND plant_id = $2 AND mrp_type = $3
		ORDER BY material_number, id`
	rows, err := r.q.Query(ctx, query, organizationID, plantID, entity.MRPTypeMRP)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	err := row.Scan(
		&m.ID, &m.OrganizationID, &m.PlantID, &m.MaterialNumber, &m.Description, &m.UnitOfMeasure,
		&m.ProcurementType, &m.MRPType, &m.LeadTimeDays, &m.LotSize, &m.SafetyStock, &m.ReorderPoint,
		&m.StandardCost, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
