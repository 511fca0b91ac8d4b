package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo implementación en PostgreSQL de BOMRepository.
type BOMRepo struct {
	q Querier
}

// NewBOMRepository construye el repositorio.
func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

// GetActiveHeader versión vigente en at (valid_to inclusivo). Sin versión vigente devuelve nil, nil.
func (r *BOMRepo) GetActiveHeader(ctx context.Context, materialID string, at time.Time) (*entity.BOMHeader, error) {
	query := `SELECT id, material_id, version, base_quantity, valid_from, valid_to, created_at
		FROM bom_headers
		WHERE material_id = $1 AND valid_from <= $2 AND (valid_to IS NULL OR valid_to >= $2)
		ORDER BY valid_from DESC, version DESC
		LIMIT 1`
	var h entity.BOMHeader
	err := r.q.QueryRow(ctx, query, materialID, dayParam(at)).Scan(
		&h.ID, &h.MaterialID, &h.Version, &h.BaseQuantity, &h.ValidFrom, &h.ValidTo, &h.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &h, nil
}

// ListLines líneas de la versión por posición.
func (r *BOMRepo) ListLines(ctx context.Context, headerID string) ([]*entity.BOMLine, error) {
	query := `SELECT id, bom_header_id, position, component_material_id, quantity, unit_of_measure,
			scrap_factor, is_phantom
		FROM bom_lines
		WHERE bom_header_id = $1
		ORDER BY position`
	rows, err := r.q.Query(ctx, query, headerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*entity.BOMLine
	for rows.Next() {
		var l entity.BOMLine
		if err := rows.Scan(
			&l.ID, &l.BOMHeaderID, &l.Position, &l.ComponentMaterialID, &l.Quantity, &l.UnitOfMeasure,
			&l.ScrapFactor, &l.IsPhantom,
		); err != nil {
			return nil, fmt.Errorf("scan bom line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
