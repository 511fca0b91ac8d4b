package planning_test

import (
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/mrp-api/internal/application/planning"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/infrastructure/memory"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	orgID   = "org-1"
	plantID = "plant-1"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store    *memory.Store
	resolver *planning.BOMResolver
	orch     *planning.Orchestrator
	query    *planning.QueryUseCase
	metrics  *recordingMetrics
	today    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithDepth(t, 0)
}

func newFixtureWithDepth(t *testing.T, maxDepth int) *fixture {
	t.Helper()
	store := memory.NewStore()
	log := zerolog.Nop()

	resolver := planning.NewBOMResolver(store.BOMs(), store.WorkOrders(), maxDepth)
	demand := planning.NewDemandBuilder(store.WorkOrders(), store.Materials(), resolver)
	calc := planning.NewNetRequirementsCalculator(store.Inventory(), store.Supply(), log)
	metrics := &recordingMetrics{skipped: map[string]int{}}

	orch := planning.NewOrchestrator(
		store.Materials(), store.Runs(), memory.NewTxRunner(store),
		demand, calc, planning.NewPlannedOrderGenerator(), metrics, log,
	)
	query := planning.NewQueryUseCase(
		store.Runs(), store.PlannedOrders(), store.Materials(), store.WorkOrders(),
		demand, calc, resolver, nil,
	)
	return &fixture{
		store:    store,
		resolver: resolver,
		orch:     orch,
		query:    query,
		metrics:  metrics,
		today:    entity.TruncateDay(time.Now()),
	}
}

func (f *fixture) day(n int) time.Time { return f.today.AddDate(0, 0, n) }

// addMaterial registra un material MRP de la planta de pruebas.
func (f *fixture) addMaterial(id, procurement string, leadDays int, lot string) *entity.Material {
	m := &entity.Material{
		ID:              id,
		OrganizationID:  orgID,
		PlantID:         plantID,
		MaterialNumber:  "MAT-" + id,
		Description:     "Material " + id,
		UnitOfMeasure:   "EA",
		ProcurementType: procurement,
		MRPType:         entity.MRPTypeMRP,
		LeadTimeDays:    leadDays,
		LotSize:         d(lot),
	}
	f.store.AddMaterial(m)
	return m
}

// addParent registra un material de producto terminado que no se netea (REORDER),
// útil para declarar consumos de componentes.
func (f *fixture) addParent(id string) {
	f.store.AddMaterial(&entity.Material{
		ID:              id,
		OrganizationID:  orgID,
		PlantID:         plantID,
		MaterialNumber:  "FG-" + id,
		ProcurementType: entity.ProcurementManufacture,
		MRPType:         entity.MRPTypeReorder,
		LotSize:         d("1"),
	})
}

// addDemand crea una orden de trabajo del padre que consume qty del componente en el día n.
func (f *fixture) addDemand(woID, parentID, componentID, qty string, n int) {
	start := f.day(n)
	f.store.AddWorkOrder(&entity.WorkOrder{
		ID:               woID,
		OrganizationID:   orgID,
		PlantID:          plantID,
		OrderNumber:      "WO-" + woID,
		MaterialID:       parentID,
		PlannedQuantity:  d("1"),
		StartDatePlanned: &start,
		EndDatePlanned:   f.day(n + 1),
		Status:           entity.WorkOrderStatusReleased,
	}, &entity.WorkOrderMaterial{ID: woID + "-m", MaterialID: componentID, QuantityRequired: d(qty), UnitOfMeasure: "EA"})
}

// addWorkOrder crea una orden de trabajo sin consumos declarados.
func (f *fixture) addWorkOrder(woID, materialID, qty string, startDay, endDay int) {
	start := f.day(startDay)
	f.store.AddWorkOrder(&entity.WorkOrder{
		ID:               woID,
		OrganizationID:   orgID,
		PlantID:          plantID,
		OrderNumber:      "WO-" + woID,
		MaterialID:       materialID,
		PlannedQuantity:  d(qty),
		StartDatePlanned: &start,
		EndDatePlanned:   f.day(endDay),
		Status:           entity.WorkOrderStatusReleased,
	})
}

func (f *fixture) addBOM(materialID string, base string, lines ...*entity.BOMLine) {
	for i, l := range lines {
		l.ID = materialID + "-l" + string(rune('a'+i))
		l.Position = (i + 1) * 10
		if l.UnitOfMeasure == "" {
			l.UnitOfMeasure = "EA"
		}
	}
	f.store.AddBOM(&entity.BOMHeader{
		ID:           "bom-" + materialID,
		MaterialID:   materialID,
		Version:      1,
		BaseQuantity: d(base),
		ValidFrom:    f.day(-365),
	}, lines...)
}

func line(component, qty, scrap string, phantom bool) *entity.BOMLine {
	return &entity.BOMLine{ComponentMaterialID: component, Quantity: d(qty), ScrapFactor: d(scrap), IsPhantom: phantom}
}

// ──────────────────────────────────────────────────────────────────────────────
// Métricas de prueba
// ──────────────────────────────────────────────────────────────────────────────

type recordingMetrics struct {
	mu        sync.Mutex
	runs      []string
	processed int
	skipped   map[string]int
	orders    int
}

func (m *recordingMetrics) ObserveRun(status string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, status)
}

func (m *recordingMetrics) MaterialProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processed++
}

func (m *recordingMetrics) MaterialSkipped(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skipped[reason]++
}

func (m *recordingMetrics) PlannedOrdersCreated(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders += n
}
