package repository

import (
	"context"
	"time"

	"github.com/jhoicas/mrp-api/internal/domain/entity"
)

// BOMRepository puerto de solo lectura para listas de materiales.
type BOMRepository interface {
	// GetActiveHeader devuelve la versión vigente en la fecha at, o nil si no existe.
	// Si varias versiones se solapan gana la de ValidFrom más reciente y luego la de mayor Version.
	GetActiveHeader(ctx context.Context, materialID string, at time.Time) (*entity.BOMHeader, error)
	// ListLines devuelve las líneas de la versión ordenadas por Position.
	ListLines(ctx context.Context, headerID string) ([]*entity.BOMLine, error)
}
