package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

var _ repository.PlannedOrderRepository = (*PlannedOrderRepo)(nil)

// PlannedOrderRepo implementación en PostgreSQL de PlannedOrderRepository.
type PlannedOrderRepo struct {
	q Querier
}

// NewPlannedOrderRepository construye el repositorio.
func NewPlannedOrderRepository(q Querier) *PlannedOrderRepo {
	return &PlannedOrderRepo{q: q}
}

const plannedOrderColumns = `id, COALESCE(mrp_run_id::text, ''), organization_id, plant_id, material_id, order_type,
	planned_quantity, shortage_quantity, need_date, order_date, lot_sizing_policy, status, source,
	converted_to_order_id, created_at, updated_at`

// CreateBatch inserta las órdenes en un solo round-trip (pgx.Batch).
func (r *PlannedOrderRepo) CreateBatch(ctx context.Context, orders []*entity.PlannedOrder) error {
	if len(orders) == 0 {
		return nil
	}
	query := `INSERT INTO planned_orders (id, mrp_run_id, organization_id, plant_id, material_id, order_type,
			planned_quantity, shortage_quantity, need_date, order_date, lot_sizing_policy, status, source,
			converted_to_order_id, created_at, updated_at)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	batch := &pgx.Batch{}
	for _, o := range orders {
		batch.Queue(query,
			o.ID, o.MRPRunID, o.OrganizationID, o.PlantID, o.MaterialID, o.OrderType,
			o.PlannedQuantity, o.ShortageQuantity, dayParam(o.NeedDate), dayParam(o.OrderDate),
			o.LotSizingPolicy, o.Status, o.Source, o.ConvertedToOrderID, o.CreatedAt, o.UpdatedAt,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	for i := range orders {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: orden planificada %s duplicada", domain.ErrConflict, orders[i].ID)
			}
			return fmt.Errorf("insert planned order %s: %w", orders[i].ID, err)
		}
	}
	return br.Close()
}

// GetByID obtiene una orden planificada.
func (r *PlannedOrderRepo) GetByID(ctx context.Context, id string) (*entity.PlannedOrder, error) {
	query := `SELECT ` + plannedOrderColumns + ` FROM planned_orders WHERE id = $1`
	o, err := scanPlannedOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return o, nil
}

// ListByRun órdenes de la corrida por fecha de necesidad.
func (r *PlannedOrderRepo) ListByRun(ctx context.Context, runID string) ([]*entity.PlannedOrder, error) {
	query := `SELECT ` + plannedOrderColumns + `
		FROM planned_orders
		WHERE mrp_run_id = $1
		ORDER BY need_date, material_id, id`
	rows, err := r.q.Query(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*entity.PlannedOrder
	for rows.Next() {
		o, err := scanPlannedOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan planned order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// UpdateStatus persiste estado y referencia de conversión.
func (r *PlannedOrderRepo) UpdateStatus(ctx context.Context, o *entity.PlannedOrder) error {
	query := `UPDATE planned_orders
		SET status = $2, converted_to_order_id = $3, updated_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, o.ID, o.Status, o.ConvertedToOrderID, o.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPlannedOrder(row pgx.Row) (*entity.PlannedOrder, error) {
	var o entity.PlannedOrder
	err := row.Scan(
		&o.ID, &o.MRPRunID, &o.OrganizationID, &o.PlantID, &o.MaterialID, &o.OrderType,
		&o.PlannedQuantity, &o.ShortageQuantity, &o.NeedDate, &o.OrderDate, &o.LotSizingPolicy,
		&o.Status, &o.Source, &o.ConvertedToOrderID, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
