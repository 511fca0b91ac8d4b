package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BOMHeader es una versión de la lista de materiales de un material padre.
// Las líneas se expresan contra BaseQuantity unidades del padre.
type BOMHeader struct {
	ID           string
	MaterialID   string
	Version      int
	BaseQuantity decimal.Decimal // > 0
	ValidFrom    time.Time
	ValidTo      *time.Time // nil = sin fecha de fin
	CreatedAt    time.Time
}

// IsValidAt indica si la versión está vigente en la fecha at (ValidTo inclusivo).
func (h *BOMHeader) IsValidAt(at time.Time) bool {
	day := TruncateDay(at)
	if TruncateDay(h.ValidFrom).After(day) {
		return false
	}
	if h.ValidTo != nil && TruncateDay(*h.ValidTo).Before(day) {
		return false
	}
	return true
}

// BOMLine componente de una versión de BOM.
type BOMLine struct {
	ID                  string
	BOMHeaderID         string
	Position            int
	ComponentMaterialID string
	Quantity            decimal.Decimal // por BaseQuantity del padre, > 0
	UnitOfMeasure       string
	ScrapFactor         decimal.Decimal // porcentaje 0-100
	IsPhantom           bool            // se aplana en el padre, nunca genera orden propia
}

// ComponentRequirement requerimiento plano de un componente hoja (no fantasma), ya inflado por merma.
type ComponentRequirement struct {
	MaterialID        string
	Quantity          decimal.Decimal
	UnitOfMeasure     string
	ParentWorkOrderID string
}
