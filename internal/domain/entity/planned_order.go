package entity

import (
	"time"

	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Tipos de orden planificada.
const (
	PlannedOrderTypePurchase   = "PURCHASE"
	PlannedOrderTypeProduction = "PRODUCTION"
)

// Estados de orden planificada. El motor solo crea PLANNED; FIRMED y CONVERTED
// los aplican los procesos de compras y producción.
const (
	PlannedOrderStatusPlanned   = "PLANNED"
	PlannedOrderStatusFirmed    = "FIRMED"
	PlannedOrderStatusConverted = "CONVERTED"
)

// PlannedOrderSourceMRP origen de las órdenes generadas por el motor.
const PlannedOrderSourceMRP = "MRP"

// PlannedOrder recomendación no comprometida de comprar o producir un material.
type PlannedOrder struct {
	ID                 string
	MRPRunID           string
	OrganizationID     string
	PlantID            string
	MaterialID         string
	OrderType          string
	PlannedQuantity    decimal.Decimal
	ShortageQuantity   decimal.Decimal // déficit cubierto antes de aplicar el lote
	NeedDate           time.Time
	OrderDate          time.Time // NeedDate - LeadTimeDays
	LotSizingPolicy    string
	Status             string
	Source             string
	ConvertedToOrderID *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Firm congela la orden planificada (PLANNED → FIRMED).
func (o *PlannedOrder) Firm(now time.Time) error {
	if o.Status != PlannedOrderStatusPlanned {
		return domain.ErrInvalidTransition
	}
	o.Status = PlannedOrderStatusFirmed
	o.UpdatedAt = now
	return nil
}

// ConvertToWorkOrder registra la orden real (trabajo o compra) creada a partir de la planificada.
func (o *PlannedOrder) ConvertToWorkOrder(orderID string, now time.Time) error {
	if orderID == "" {
		return domain.ErrInvalidInput
	}
	if o.Status != PlannedOrderStatusPlanned && o.Status != PlannedOrderStatusFirmed {
		return domain.ErrInvalidTransition
	}
	o.Status = PlannedOrderStatusConverted
	o.ConvertedToOrderID = &orderID
	o.UpdatedAt = now
	return nil
}
