package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

var _ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)

// WorkOrderRepo implementación en PostgreSQL de WorkOrderRepository.
type WorkOrderRepo struct {
	q Querier
}

// NewWorkOrderRepository construye el repositorio.
func NewWorkOrderRepository(q Querier) *WorkOrderRepo {
	return &WorkOrderRepo{q: q}
}

const workOrderColumns = `id, organization_id, plant_id, order_number, material_id, planned_quantity,
	start_date_planned, end_date_planned, status, created_at`

// GetByID obtiene una orden de trabajo.
func (r *WorkOrderRepo) GetByID(ctx context.Context, id string) (*entity.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE id = $1`
	wo, err := scanWorkOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return wo, nil
}

// ListOpen órdenes no cerradas con fin planificado hasta until, incluidas las atrasadas.
func (r *WorkOrderRepo) ListOpen(ctx context.Context, organizationID, plantID string, until time.Time) ([]*entity.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + `
		FROM work_orders
		WHERE organization_id = $1 AND plant_id = $2
		  AND status NOT IN ($3, $4)
		  AND end_date_planned <= $5
		ORDER BY id`
	rows, err := r.q.Query(ctx, query, organizationID, plantID,
		entity.WorkOrderStatusCompleted, entity.WorkOrderStatusCancelled, dayParam(until))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*entity.WorkOrder
	for rows.Next() {
		wo, err := scanWorkOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan work order: %w", err)
		}
		list = append(list, wo)
	}
	return list, rows.Err()
}

// ListMaterials consumos declarados de la orden.
func (r *WorkOrderRepo) ListMaterials(ctx context.Context, workOrderID string) ([]*entity.WorkOrderMaterial, error) {
	query := `SELECT id, work_order_id, material_id, quantity_required, unit_of_measure
		FROM work_order_materials
		WHERE work_order_id = $1
		ORDER BY material_id, id`
	rows, err := r.q.Query(ctx, query, workOrderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*entity.WorkOrderMaterial
	for rows.Next() {
		var m entity.WorkOrderMaterial
		if err := rows.Scan(&m.ID, &m.WorkOrderID, &m.MaterialID, &m.QuantityRequired, &m.UnitOfMeasure); err != nil {
			return nil, fmt.Errorf("scan work order material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func scanWorkOrder(row pgx.Row) (*entity.WorkOrder, error) {
	var wo entity.WorkOrder
	err := row.Scan(
		&wo.ID, &wo.OrganizationID, &wo.PlantID, &wo.OrderNumber, &wo.MaterialID, &wo.PlannedQuantity,
		&wo.StartDatePlanned, &wo.EndDatePlanned, &wo.Status, &wo.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &wo, nil
}
