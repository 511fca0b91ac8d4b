package repository

import (
	"context"
	"time"

	"github.com/jhoicas/mrp-api/internal/domain/entity"
)

// SupplyRepository puerto de lectura de recepciones programadas (órdenes planificadas
// en firme y líneas de compra abiertas).
type SupplyRepository interface {
	ListScheduledReceipts(ctx context.Context, materialID string, from, to time.Time) ([]entity.ScheduledReceipt, error)
}
