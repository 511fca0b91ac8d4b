package repository

import (
	"context"

	"github.com/jhoicas/mrp-api/internal/domain/entity"
)

// MaterialRepository puerto de solo lectura para maestros de material (DIP).
// El motor MRP nunca escribe materiales.
type MaterialRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	// ListForMRP devuelve los materiales con mrp_type = MRP de la organización y planta,
	// ordenados por material_number.
	ListForMRP(ctx context.Context, organizationID, plantID string) ([]*entity.Material, error)
}
