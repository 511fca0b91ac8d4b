package repository

import (
	"context"
	"time"

	"github.com/jhoicas/mrp-api/internal/domain/entity"
)

// WorkOrderRepository puerto de solo lectura para órdenes de trabajo y sus consumos.
type WorkOrderRepository interface {
	GetByID(ctx context.Context, id string) (*entity.WorkOrder, error)
	// ListOpen devuelve las órdenes abiertas de la organización y planta con fecha fin
	// planificada hasta until (incluye las atrasadas), ordenadas por id.
	ListOpen(ctx context.Context, organizationID, plantID string, until time.Time) ([]*entity.WorkOrder, error)
	// ListMaterials devuelve los consumos declarados de la orden ordenados por material_id.
	ListMaterials(ctx context.Context, workOrderID string) ([]*entity.WorkOrderMaterial, error)
}
