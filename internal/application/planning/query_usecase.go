package planning

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

// QueryUseCase consultas de corridas y herramientas de diagnóstico (neteo y explosión
// puntuales). Nada de lo que hace aquí escribe en la BD.
type QueryUseCase struct {
	runRepo      repository.MRPRunRepository
	orderRepo    repository.PlannedOrderRepository
	materialRepo repository.MaterialRepository
	woRepo       repository.WorkOrderRepository
	demand       *DemandBuilder
	calculator   *NetRequirementsCalculator
	resolver     *BOMResolver
	reports      ReportGenerator
}

// NewQueryUseCase construye el caso de uso. reports puede ser nil si no se exponen PDF.
func NewQueryUseCase(
	runRepo repository.MRPRunRepository,
	orderRepo repository.PlannedOrderRepository,
	materialRepo repository.MaterialRepository,
	woRepo repository.WorkOrderRepository,
	demand *DemandBuilder,
	calculator *NetRequirementsCalculator,
	resolver *BOMResolver,
	reports ReportGenerator,
) *QueryUseCase {
	return &QueryUseCase{
		runRepo:      runRepo,
		orderRepo:    orderRepo,
		materialRepo: materialRepo,
		woRepo:       woRepo,
		demand:       demand,
		calculator:   calculator,
		resolver:     resolver,
		reports:      reports,
	}
}

// GetRun devuelve la corrida si pertenece a la organización.
func (uc *QueryUseCase) GetRun(ctx context.Context, organizationID, runID string) (*entity.MRPRun, error) {
	run, err := uc.runRepo.GetByID(ctx, runID)
	if err != nil {
		return nil, err
	}
	if run == nil || run.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return run, nil
}

// ListRuns corridas de la planta, más recientes primero.
func (uc *QueryUseCase) ListRuns(ctx context.Context, organizationID, plantID string, limit, offset int) ([]*entity.MRPRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.runRepo.ListByPlant(ctx, organizationID, plantID, limit, offset)
}

// ListPlannedOrders órdenes generadas por la corrida, por fecha de necesidad.
func (uc *QueryUseCase) ListPlannedOrders(ctx context.Context, organizationID, runID string) ([]*entity.PlannedOrder, error) {
	if _, err := uc.GetRun(ctx, organizationID, runID); err != nil {
		return nil, err
	}
	return uc.orderRepo.ListByRun(ctx, runID)
}

// RunReport genera el PDF de la corrida con sus órdenes planificadas.
func (uc *QueryUseCase) RunReport(ctx context.Context, organizationID, runID string) ([]byte, error) {
	if uc.reports == nil {
		return nil, fmt.Errorf("generador de reportes no configurado")
	}
	run, err := uc.GetRun(ctx, organizationID, runID)
	if err != nil {
		return nil, err
	}
	orders, err := uc.orderRepo.ListByRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	materials := make(map[string]*entity.Material)
	for _, o := range orders {
		if _, ok := materials[o.MaterialID]; ok {
			continue
		}
		m, err := uc.materialRepo.GetByID(ctx, o.MaterialID)
		if err != nil {
			return nil, err
		}
		materials[o.MaterialID] = m
	}
	return uc.reports.GenerateRunReport(run, orders, materials)
}

// CalculateNetRequirements netea un material en [from, to] con la demanda abierta actual
// de su planta. Herramienta what-if: no genera órdenes.
func (uc *QueryUseCase) CalculateNetRequirements(
	ctx context.Context,
	organizationID, materialID string,
	from, to time.Time,
) (*NetRequirementsResult, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: la fecha final es anterior a la inicial", domain.ErrInvalidInput)
	}
	m, err := uc.material(ctx, organizationID, materialID)
	if err != nil {
		return nil, err
	}
	book, err := uc.demand.Build(ctx, m.OrganizationID, m.PlantID, from, to)
	if err != nil {
		return nil, err
	}
	if err := book.Failure(m.ID); err != nil {
		return nil, err
	}
	return uc.calculator.Calculate(ctx, m.ID, from, to, book.For(m.ID))
}

// ExplodeWorkOrder explosión de BOM de una orden de trabajo de la organización.
func (uc *QueryUseCase) ExplodeWorkOrder(ctx context.Context, organizationID, workOrderID string) ([]entity.ComponentRequirement, error) {
	wo, err := uc.woRepo.GetByID(ctx, workOrderID)
	if err != nil {
		return nil, err
	}
	if wo == nil || wo.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return uc.resolver.ExplodeWorkOrder(ctx, wo)
}

func (uc *QueryUseCase) material(ctx context.Context, organizationID, materialID string) (*entity.Material, error) {
	m, err := uc.materialRepo.GetByID(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if m == nil || m.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return m, nil
}
