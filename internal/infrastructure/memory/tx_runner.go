package memory

import (
	"context"

	"github.com/jhoicas/mrp-api/internal/application/planning"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

var _ planning.TxRunner = (*TxRunner)(nil)

// TxRunner simula la transacción: las órdenes se acumulan y se aplican al store solo si fn
// termina sin error.
type TxRunner struct{ s *Store }

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

func (r *TxRunner) RunPlanning(ctx context.Context, fn func(orders repository.PlannedOrderRepository) error) error {
	tx := &txPlannedOrders{PlannedOrderRepo: r.s.PlannedOrders()}
	if err := fn(tx); err != nil {
		return err
	}
	return r.s.PlannedOrders().CreateBatch(ctx, tx.pending)
}

// txPlannedOrders difiere CreateBatch hasta el commit; el resto lee del store.
type txPlannedOrders struct {
	*PlannedOrderRepo
	pending []*entity.PlannedOrder
}

func (t *txPlannedOrders) CreateBatch(_ context.Context, orders []*entity.PlannedOrder) error {
	t.pending = append(t.pending, orders...)
	return nil
}
