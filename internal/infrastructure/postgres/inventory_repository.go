package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo lectura agregada de inventory_stock.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el repositorio.
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// GetOnHand suma el stock del material en todas las ubicaciones y lotes. Sin filas devuelve cero.
func (r *InventoryRepo) GetOnHand(ctx context.Context, materialID string) (*entity.StockSnapshot, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM inventory_stock WHERE material_id = $1`
	snap := &entity.StockSnapshot{MaterialID: materialID}
	if err := r.q.QueryRow(ctx, query, materialID).Scan(&snap.Quantity); err != nil {
		return nil, err
	}
	snap.ReadAt = time.Now()
	return snap, nil
}
