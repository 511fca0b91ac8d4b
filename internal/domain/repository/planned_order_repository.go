package repository

import (
	"context"

	"github.com/jhoicas/mrp-api/internal/domain/entity"
)

// PlannedOrderRepository puerto de escritura de solo inserción para el motor.
// UpdateStatus lo usan únicamente los procesos de firme y conversión.
type PlannedOrderRepository interface {
	CreateBatch(ctx context.Context, orders []*entity.PlannedOrder) error
	GetByID(ctx context.Context, id string) (*entity.PlannedOrder, error)
	ListByRun(ctx context.Context, runID string) ([]*entity.PlannedOrder, error)
	UpdateStatus(ctx context.Context, order *entity.PlannedOrder) error
}
