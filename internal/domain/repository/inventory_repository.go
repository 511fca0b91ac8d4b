package repository

import (
	"context"

	"github.com/jhoicas/mrp-api/internal/domain/entity"
)

// InventoryRepository puerto de lectura del stock disponible por material.
type InventoryRepository interface {
	// GetOnHand suma la cantidad disponible del material en todas las ubicaciones y lotes.
	GetOnHand(ctx context.Context, materialID string) (*entity.StockSnapshot, error)
}
