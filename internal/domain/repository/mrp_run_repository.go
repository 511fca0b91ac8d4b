package repository

import (
	"context"

	"github.com/jhoicas/mrp-api/internal/domain/entity"
)

// MRPRunRepository crea la corrida y la actualiza una sola vez al terminar.
type MRPRunRepository interface {
	Create(ctx context.Context, run *entity.MRPRun) error
	// Finish persiste estado terminal, contadores y lista de omitidos.
	// Devuelve domain.ErrConflict si la corrida ya no está en RUNNING.
	Finish(ctx context.Context, run *entity.MRPRun) error
	GetByID(ctx context.Context, id string) (*entity.MRPRun, error)
	ListByPlant(ctx context.Context, organizationID, plantID string, limit, offset int) ([]*entity.MRPRun, error)
}
