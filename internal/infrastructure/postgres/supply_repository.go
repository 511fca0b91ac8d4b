package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

var _ repository.SupplyRepository = (*SupplyRepo)(nil)

// SupplyRepo recepciones programadas: órdenes planificadas en firme y líneas de compra abiertas.
type SupplyRepo struct {
	q Querier
}

// NewSupplyRepository construye el repositorio.
func NewSupplyRepository(q Querier) *SupplyRepo {
	return &SupplyRepo{q: q}
}

// ListScheduledReceipts suministro del material con fecha en [from, to], por fecha.
// Las órdenes PLANNED de corridas previas no cuentan como suministro.
func (r *SupplyRepo) ListScheduledReceipts(ctx context.Context, materialID string, from, to time.Time) ([]entity.ScheduledReceipt, error) {
	query := `
		SELECT material_id, planned_quantity, need_date, id::text, $4::text
		FROM planned_orders
		WHERE material_id = $1 AND status = $5 AND need_date BETWEEN $2 AND $3
		UNION ALL
		SELECT material_id, quantity_open, delivery_date, id::text, $6::text
		FROM purchase_order_lines
		WHERE material_id = $1 AND status = 'OPEN' AND quantity_open > 0
		  AND delivery_date BETWEEN $2 AND $3
		ORDER BY 3, 4`
	rows, err := r.q.Query(ctx, query, materialID, dayParam(from), dayParam(to),
		entity.ReceiptKindPlannedOrder, entity.PlannedOrderStatusFirmed, entity.ReceiptKindPurchaseOrder)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []entity.ScheduledReceipt
	for rows.Next() {
		var rc entity.ScheduledReceipt
		if err := rows.Scan(&rc.MaterialID, &rc.Quantity, &rc.ReceiptDate, &rc.SourceID, &rc.Kind); err != nil {
			return nil, fmt.Errorf("scan scheduled receipt: %w", err)
		}
		list = append(list, rc)
	}
	return list, rows.Err()
}
