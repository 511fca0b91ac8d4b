package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la corrida MRP. RUNNING es el único estado no terminal.
const (
	MRPRunStatusRunning   = "RUNNING"
	MRPRunStatusCompleted = "COMPLETED"
	MRPRunStatusFailed    = "FAILED"
)

// SkippedMaterial material omitido por un error de datos durante la corrida.
type SkippedMaterial struct {
	MaterialID string `json:"material_id"`
	Reason     string `json:"reason"`
	Message    string `json:"message"`
}

// MRPRun una ejecución del motor para una organización y planta.
// Se crea en RUNNING y se actualiza una sola vez al terminar; luego es inmutable.
type MRPRun struct {
	ID                   string
	RunCode              string
	OrganizationID       string
	PlantID              string
	Status               string
	RunDate              time.Time
	PlanningHorizonStart time.Time
	PlanningHorizonEnd   time.Time
	MaterialsProcessed   int
	MaterialsSkipped     int
	PlannedOrdersCreated int
	TotalShortageQty     decimal.Decimal
	SkippedMaterials     []SkippedMaterial
	ErrorMessage         string
	CompletedAt          *time.Time
	CreatedBy            string
}

// IsTerminal indica si la corrida ya no admite cambios.
func (r *MRPRun) IsTerminal() bool {
	return r.Status == MRPRunStatusCompleted || r.Status == MRPRunStatusFailed
}
