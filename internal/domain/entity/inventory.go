package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de origen de demanda en el libro de demanda.
const (
	DemandKindWorkOrder = "WORK_ORDER" // demanda independiente: la orden de trabajo del propio material
	DemandKindComponent = "COMPONENT"  // demanda dependiente: consumo declarado o explotado
)

// Tipos de recepción programada.
const (
	ReceiptKindPlannedOrder  = "PLANNED_ORDER"
	ReceiptKindPurchaseOrder = "PURCHASE_ORDER"
)

// StockSnapshot cantidad disponible de un material agregada sobre ubicaciones y lotes.
type StockSnapshot struct {
	MaterialID string
	Quantity   decimal.Decimal
	ReadAt     time.Time
}

// DemandLine requerimiento bruto de un material en una fecha.
type DemandLine struct {
	MaterialID        string
	Quantity          decimal.Decimal
	NeedDate          time.Time
	SourceWorkOrderID string
	Kind              string
}

// ScheduledReceipt suministro ya comprometido que llega dentro del horizonte.
type ScheduledReceipt struct {
	MaterialID  string
	Quantity    decimal.Decimal
	ReceiptDate time.Time
	SourceID    string
	Kind        string
}

// TruncateDay normaliza una fecha al inicio del día en UTC (las fechas de necesidad son días calendario).
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
