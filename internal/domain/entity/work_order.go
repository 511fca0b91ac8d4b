package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de orden de trabajo.
const (
	WorkOrderStatusPlanned    = "PLANNED"
	WorkOrderStatusReleased   = "RELEASED"
	WorkOrderStatusInProgress = "IN_PROGRESS"
	WorkOrderStatusCompleted  = "COMPLETED"
	WorkOrderStatusCancelled  = "CANCELLED"
)

// WorkOrder demanda abierta de un material: PlannedQuantity para EndDatePlanned.
type WorkOrder struct {
	ID               string
	OrganizationID   string
	PlantID          string
	OrderNumber      string
	MaterialID       string
	PlannedQuantity  decimal.Decimal
	StartDatePlanned *time.Time
	EndDatePlanned   time.Time // fecha de necesidad
	Status           string
	CreatedAt        time.Time
}

// IsOpen indica si la orden sigue generando demanda.
func (w *WorkOrder) IsOpen() bool {
	return w.Status != WorkOrderStatusCompleted && w.Status != WorkOrderStatusCancelled
}

// ComponentNeedDate fecha en que se consumen los componentes: inicio planificado o, si no existe, la fecha fin.
func (w *WorkOrder) ComponentNeedDate() time.Time {
	if w.StartDatePlanned != nil {
		return TruncateDay(*w.StartDatePlanned)
	}
	return TruncateDay(w.EndDatePlanned)
}

// WorkOrderMaterial consumo de componente declarado en una orden de trabajo.
type WorkOrderMaterial struct {
	ID               string
	WorkOrderID      string
	MaterialID       string
	QuantityRequired decimal.Decimal
	UnitOfMeasure    string
}
