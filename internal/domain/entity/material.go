package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de aprovisionamiento del material.
const (
	ProcurementPurchase    = "PURCHASE"
	ProcurementManufacture = "MANUFACTURE"
	ProcurementBoth        = "BOTH"
)

// Tipos de planeación: solo los materiales MRP se netean en el motor.
// REORDER se repone por mínimo/máximo en otro módulo.
const (
	MRPTypeMRP     = "MRP"
	MRPTypeReorder = "REORDER"
)

// Material representa un material planificable de una planta.
// Inmutable durante una corrida MRP; lo modifica solo el módulo de maestros.
type Material struct {
	ID              string
	OrganizationID  string
	PlantID         string
	MaterialNumber  string // único por organización + planta
	Description     string
	UnitOfMeasure   string
	ProcurementType string          // PURCHASE, MANUFACTURE, BOTH
	MRPType         string          // MRP, REORDER
	LeadTimeDays    int             // >= 0, días calendario
	LotSize         decimal.Decimal // múltiplo de lote por defecto (> 0)
	SafetyStock     decimal.Decimal // informativo, no se aplica en el neteo
	ReorderPoint    decimal.Decimal // informativo para materiales REORDER
	StandardCost    decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsManufactured indica si el material puede tener órdenes de producción con BOM propia.
func (m *Material) IsManufactured() bool {
	return m.ProcurementType == ProcurementManufacture || m.ProcurementType == ProcurementBoth
}

// PlannedOrderType deriva el tipo de orden planificada: BOTH se planifica como compra.
func (m *Material) PlannedOrderType() string {
	if m.ProcurementType == ProcurementManufacture {
		return PlannedOrderTypeProduction
	}
	return PlannedOrderTypePurchase
}
