package planning

import (
	"context"
	"time"

	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con el repositorio de órdenes
// planificadas atado a esa tx. Las órdenes de un material se escriben todas o ninguna.
type TxRunner interface {
	RunPlanning(ctx context.Context, fn func(orders repository.PlannedOrderRepository) error) error
}

// RunMetrics recibe los eventos del orquestador (Prometheus en producción).
type RunMetrics interface {
	ObserveRun(status string, elapsed time.Duration)
	MaterialProcessed()
	MaterialSkipped(reason string)
	PlannedOrdersCreated(n int)
}

// ReportGenerator genera el reporte PDF de una corrida.
type ReportGenerator interface {
	GenerateRunReport(run *entity.MRPRun, orders []*entity.PlannedOrder, materials map[string]*entity.Material) ([]byte, error)
}

type nopMetrics struct{}

func (nopMetrics) ObserveRun(string, time.Duration) {}
func (nopMetrics) MaterialProcessed()               {}
func (nopMetrics) MaterialSkipped(string)           {}
func (nopMetrics) PlannedOrdersCreated(int)         {}
