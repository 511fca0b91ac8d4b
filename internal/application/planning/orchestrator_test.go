package planning_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jhoicas/mrp-api/internal/application/planning"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/mrp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runMRP(t *testing.T, f *fixture, opts planning.RunOptions) *entity.MRPRun {
	t.Helper()
	run, err := f.orch.RunMRP(context.Background(), orgID, plantID, opts)
	require.NoError(t, err)
	require.NotNil(t, run)
	return run
}

func ordersOf(t *testing.T, f *fixture, run *entity.MRPRun) []*entity.PlannedOrder {
	t.Helper()
	orders, err := f.query.ListPlannedOrders(context.Background(), orgID, run.ID)
	require.NoError(t, err)
	return orders
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios de cantidad
// ──────────────────────────────────────────────────────────────────────────────

func TestRunMRP_SinMaterialesCompletaEnCero(t *testing.T) {
	f := newFixture(t)

	run := runMRP(t, f, planning.RunOptions{HorizonDays: 30})

	assert.Equal(t, entity.MRPRunStatusCompleted, run.Status)
	assert.Equal(t, 0, run.MaterialsProcessed)
	assert.Equal(t, 0, run.PlannedOrdersCreated)
	assert.True(t, run.TotalShortageQty.IsZero())
	assert.NotNil(t, run.CompletedAt)
	assert.Regexp(t, `^MRP-\d{8}-[0-9A-F]{8}$`, run.RunCode)
	assert.Equal(t, run.PlanningHorizonStart.AddDate(0, 0, 30), run.PlanningHorizonEnd)
}

func TestRunMRP_Stock100Bruto150Lote100(t *testing.T) {
	f := newFixture(t)
	f.addParent("FG")
	f.addMaterial("M1", entity.ProcurementPurchase, 3, "100")
	f.store.SetStock("M1", d("100"))
	// 150 de bruto en dos fechas: faltan 20 el día 5 y 30 más el día 10
	f.addDemand("wo-1", "FG", "M1", "120", 5)
	f.addDemand("wo-2", "FG", "M1", "30", 10)

	run := runMRP(t, f, planning.RunOptions{HorizonDays: 30})

	require.Equal(t, entity.MRPRunStatusCompleted, run.Status)
	assert.True(t, run.TotalShortageQty.Equal(d("50")), "neto esperado 50, obtenido %s", run.TotalShortageQty)
	assert.Equal(t, 2, run.PlannedOrdersCreated)

	orders := ordersOf(t, f, run)
	require.Len(t, orders, 2)
	total := orders[0].PlannedQuantity.Add(orders[1].PlannedQuantity)
	assert.True(t, total.Equal(d("200")), "cantidad planificada total esperada 200, obtenida %s", total)

	assert.Equal(t, f.day(5), orders[0].NeedDate)
	assert.Equal(t, f.day(2), orders[0].OrderDate, "fecha de pedido = necesidad - lead time")
	assert.Equal(t, f.day(10), orders[1].NeedDate)
	for _, o := range orders {
		assert.Equal(t, entity.PlannedOrderTypePurchase, o.OrderType)
		assert.Equal(t, entity.PlannedOrderStatusPlanned, o.Status)
		assert.Equal(t, entity.PlannedOrderSourceMRP, o.Source)
		assert.Equal(t, run.ID, o.MRPRunID)
		assert.Equal(t, string(mrp.PolicyFixedLotSize), o.LotSizingPolicy)
	}
}

func TestRunMRP_Stock30Bruto75Lote50(t *testing.T) {
	f := newFixture(t)
	f.addParent("FG")
	f.addMaterial("M1", entity.ProcurementPurchase, 0, "50")
	f.store.SetStock("M1", d("30"))
	f.addDemand("wo-1", "FG", "M1", "75", 7)

	run := runMRP(t, f, planning.RunOptions{HorizonDays: 30})

	assert.True(t, run.TotalShortageQty.Equal(d("45")))
	orders := ordersOf(t, f, run)
	require.Len(t, orders, 1)
	assert.True(t, orders[0].PlannedQuantity.Equal(d("50")), "un lote debe cubrir el faltante")
	assert.True(t, orders[0].ShortageQuantity.Equal(d("45")))
}

func TestRunMRP_StockSuficienteNoGeneraOrdenes(t *testing.T) {
	f := newFixture(t)
	f.addParent("FG")
	f.addMaterial("M1", entity.ProcurementPurchase, 0, "10")
	f.store.SetStock("M1", d("500"))
	f.addDemand("wo-1", "FG", "M1", "75", 7)

	run := runMRP(t, f, planning.RunOptions{})

	assert.Equal(t, 1, run.MaterialsProcessed)
	assert.Equal(t, 0, run.PlannedOrdersCreated)
	assert.Empty(t, ordersOf(t, f, run))
}

func TestRunMRP_DemandaFueraDelHorizonteSeIgnora(t *testing.T) {
	f := newFixture(t)
	f.addParent("FG")
	f.addMaterial("M1", entity.ProcurementPurchase, 0, "10")
	f.addDemand("wo-1", "FG", "M1", "75", 40)

	run := runMRP(t, f, planning.RunOptions{HorizonDays: 30})

	assert.Equal(t, 0, run.PlannedOrdersCreated)
}

func TestRunMRP_PoliticaAlternativaPorMaterial(t *testing.T) {
	f := newFixture(t)
	f.addParent("FG")
	f.addMaterial("M1", entity.ProcurementPurchase, 0, "50")
	f.store.SetStock("M1", d("30"))
	f.addDemand("wo-1", "FG", "M1", "75", 7)

	run := runMRP(t, f, planning.RunOptions{
		PolicyFor: func(*entity.Material) mrp.Policy { return mrp.LotForLot{} },
	})

	orders := ordersOf(t, f, run)
	require.Len(t, orders, 1)
	assert.True(t, orders[0].PlannedQuantity.Equal(d("45")))
	assert.Equal(t, string(mrp.PolicyLotForLot), orders[0].LotSizingPolicy)
}

// ──────────────────────────────────────────────────────────────────────────────
// Demanda dependiente y suministro
// ──────────────────────────────────────────────────────────────────────────────

func TestRunMRP_ExplosionGeneraDemandaDependiente(t *testing.T) {
	f := newFixture(t)
	f.addMaterial("FG", entity.ProcurementManufacture, 2, "10")
	f.addMaterial("C1", entity.ProcurementPurchase, 4, "10")
	f.addBOM("FG", "1", line("C1", "2", "0", false))
	f.store.SetStock("C1", d("5"))
	// 10 FG que empiezan el día 8 y terminan el día 10
	f.addWorkOrder("wo-1", "FG", "10", 8, 10)

	run := runMRP(t, f, planning.RunOptions{HorizonDays: 30})
	require.Equal(t, entity.MRPRunStatusCompleted, run.Status)
	assert.Equal(t, 2, run.MaterialsProcessed)

	var c1, fg []*entity.PlannedOrder
	for _, o := range ordersOf(t, f, run) {
		switch o.MaterialID {
		case "C1":
			c1 = append(c1, o)
		case "FG":
			fg = append(fg, o)
		}
	}

	require.Len(t, c1, 1)
	assert.True(t, c1[0].PlannedQuantity.Equal(d("20")), "20 - 5 = 15 redondeado a lote 10")
	assert.Equal(t, f.day(8), c1[0].NeedDate, "los componentes se necesitan al inicio de la orden")
	assert.Equal(t, f.day(4), c1[0].OrderDate)

	require.Len(t, fg, 1)
	assert.Equal(t, entity.PlannedOrderTypeProduction, fg[0].OrderType)
	assert.Equal(t, f.day(10), fg[0].NeedDate)
}

func TestRunMRP_RecepcionesProgramadasReducenElNeto(t *testing.T) {
	f := newFixture(t)
	f.addParent("FG")
	f.addMaterial("M1", entity.ProcurementPurchase, 0, "1")
	f.addDemand("wo-1", "FG", "M1", "100", 10)
	f.store.AddPurchaseReceipt(entity.ScheduledReceipt{MaterialID: "M1", Quantity: d("30"), ReceiptDate: f.day(3), SourceID: "po-1"})
	f.store.AddPlannedOrder(&entity.PlannedOrder{
		ID: "firm-1", MaterialID: "M1", OrganizationID: orgID, PlantID: plantID,
		PlannedQuantity: d("20"), NeedDate: f.day(6), Status: entity.PlannedOrderStatusFirmed,
	})
	f.store.AddPlannedOrder(&entity.PlannedOrder{
		ID: "old-1", MaterialID: "M1", OrganizationID: orgID, PlantID: plantID,
		PlannedQuantity: d("999"), NeedDate: f.day(6), Status: entity.PlannedOrderStatusPlanned,
	})

	run := runMRP(t, f, planning.RunOptions{})

	assert.True(t, run.TotalShortageQty.Equal(d("50")), "100 - 30 compra - 20 firme; las PLANNED previas no cuentan")
}

func TestRunMRP_StockNegativoSeTrataComoCero(t *testing.T) {
	f := newFixture(t)
	f.addParent("FG")
	f.addMaterial("M1", entity.ProcurementPurchase, 0, "1")
	f.store.SetStock("M1", d("-40"))
	f.addDemand("wo-1", "FG", "M1", "10", 2)

	run := runMRP(t, f, planning.RunOptions{})

	assert.True(t, run.TotalShortageQty.Equal(d("10")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Aislamiento de fallos
// ──────────────────────────────────────────────────────────────────────────────

func TestRunMRP_MaterialSinBOMSeOmiteYLaCorridaCompleta(t *testing.T) {
	f := newFixture(t)
	f.addParent("FG")
	for _, id := range []string{"M1", "M2", "M3", "M4"} {
		f.addMaterial(id, entity.ProcurementPurchase, 1, "10")
		f.addDemand("wo-"+id, "FG", id, "25", 5)
	}
	f.addMaterial("M5", entity.ProcurementManufacture, 1, "10")
	f.addWorkOrder("wo-M5", "M5", "3", 4, 6)

	run := runMRP(t, f, planning.RunOptions{Workers: 3})

	assert.Equal(t, entity.MRPRunStatusCompleted, run.Status, "un material defectuoso no debe fallar la corrida")
	assert.Equal(t, 4, run.MaterialsProcessed)
	assert.Equal(t, 1, run.MaterialsSkipped)
	require.Len(t, run.SkippedMaterials, 1)
	assert.Equal(t, "M5", run.SkippedMaterials[0].MaterialID)
	assert.Equal(t, "NO_ACTIVE_BOM", run.SkippedMaterials[0].Reason)
	assert.Equal(t, 4, run.PlannedOrdersCreated)
	assert.Equal(t, 1, f.metrics.skipped["NO_ACTIVE_BOM"])
}

func TestRunMRP_LoteInvalidoSeOmite(t *testing.T) {
	f := newFixture(t)
	f.addParent("FG")
	f.addMaterial("M1", entity.ProcurementPurchase, 0, "0")
	f.addMaterial("M2", entity.ProcurementPurchase, 0, "5")
	f.addDemand("wo-1", "FG", "M1", "7", 2)
	f.addDemand("wo-2", "FG", "M2", "7", 2)

	run := runMRP(t, f, planning.RunOptions{})

	assert.Equal(t, entity.MRPRunStatusCompleted, run.Status)
	assert.Equal(t, 1, run.MaterialsProcessed)
	require.Len(t, run.SkippedMaterials, 1)
	assert.Equal(t, "INVALID_LOT_SIZING_PARAMETERS", run.SkippedMaterials[0].Reason)
}

func TestRunMRP_CicloEnBOMSeOmite(t *testing.T) {
	f := newFixture(t)
	f.addMaterial("FG", entity.ProcurementManufacture, 0, "1")
	f.addBOM("FG", "1", line("PH", "1", "0", true))
	f.addBOM("PH", "1", line("FG", "1", "0", true))
	f.addWorkOrder("wo-1", "FG", "1", 1, 2)

	run := runMRP(t, f, planning.RunOptions{})

	assert.Equal(t, entity.MRPRunStatusCompleted, run.Status)
	require.Len(t, run.SkippedMaterials, 1)
	assert.Equal(t, "BOM_CYCLE_OR_TOO_DEEP", run.SkippedMaterials[0].Reason)
}

func TestRunMRP_EOQFueraDeRangoSeOmite(t *testing.T) {
	f := newFixture(t)
	f.addParent("FG")
	f.addMaterial("M1", entity.ProcurementPurchase, 0, "10")
	f.addDemand("wo-1", "FG", "M1", "7", 2)

	run := runMRP(t, f, planning.RunOptions{
		PolicyFor: func(*entity.Material) mrp.Policy {
			return mrp.EOQ{AnnualDemand: d("1e200"), OrderingCost: d("1e200"), HoldingCostRate: d("1"), UnitCost: d("1"), FallbackLot: d("1")}
		},
	})

	assert.Equal(t, entity.MRPRunStatusCompleted, run.Status)
	require.Len(t, run.SkippedMaterials, 1)
	assert.Equal(t, "INVALID_LOT_SIZING_PARAMETERS", run.SkippedMaterials[0].Reason)
}

func TestRunMRP_PanicoEnUnMaterialSeOmiteComoUnknown(t *testing.T) {
	f := newFixture(t)
	f.addParent("FG")
	f.addMaterial("M1", entity.ProcurementPurchase, 0, "10")
	f.addMaterial("M2", entity.ProcurementPurchase, 0, "10")
	f.addDemand("wo-1", "FG", "M1", "7", 2)
	f.addDemand("wo-2", "FG", "M2", "7", 2)

	run := runMRP(t, f, planning.RunOptions{
		Workers: 2,
		PolicyFor: func(m *entity.Material) mrp.Policy {
			if m.ID == "M1" {
				panic("política corrupta")
			}
			return mrp.LotForLot{}
		},
	})

	assert.Equal(t, entity.MRPRunStatusCompleted, run.Status, "un pánico aislado no debe fallar la corrida")
	assert.Equal(t, 1, run.MaterialsProcessed)
	assert.Equal(t, 1, run.MaterialsSkipped)
	require.Len(t, run.SkippedMaterials, 1)
	assert.Equal(t, "M1", run.SkippedMaterials[0].MaterialID)
	assert.Equal(t, "UNKNOWN", run.SkippedMaterials[0].Reason)
	assert.Contains(t, run.SkippedMaterials[0].Message, "política corrupta")
	assert.Equal(t, 1, run.PlannedOrdersCreated)
	assert.Equal(t, 1, f.metrics.skipped["UNKNOWN"])
}

func TestRunMRP_FalloDeLecturaTerminaEnFailed(t *testing.T) {
	f := newFixture(t)
	f.addParent("FG")
	f.addMaterial("M1", entity.ProcurementPurchase, 0, "10")
	f.addDemand("wo-1", "FG", "M1", "7", 2)
	f.store.FailReads(errors.New("conexión perdida"))

	run := runMRP(t, f, planning.RunOptions{})

	assert.Equal(t, entity.MRPRunStatusFailed, run.Status)
	assert.Contains(t, run.ErrorMessage, "conexión perdida")
	assert.NotNil(t, run.CompletedAt)

	stored, err := f.query.GetRun(context.Background(), orgID, run.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MRPRunStatusFailed, stored.Status, "el estado terminal debe persistirse")
}

func TestRunMRP_FalloDeEscrituraTerminaEnFailed(t *testing.T) {
	f := newFixture(t)
	f.addParent("FG")
	f.addMaterial("M1", entity.ProcurementPurchase, 0, "10")
	f.addDemand("wo-1", "FG", "M1", "7", 2)
	f.store.FailWrites(errors.New("disco lleno"))

	run := runMRP(t, f, planning.RunOptions{})

	assert.Equal(t, entity.MRPRunStatusFailed, run.Status)
	assert.Contains(t, run.ErrorMessage, "disco lleno")
	assert.Empty(t, f.store.AllPlannedOrders(), "no debe quedar ninguna orden escrita")
}

func TestRunMRP_CancelacionConservaContadoresParciales(t *testing.T) {
	f := newFixture(t)
	for _, id := range []string{"M1", "M2", "M3"} {
		f.addMaterial(id, entity.ProcurementPurchase, 0, "10")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var once sync.Once
	f.store.OnStockRead(func(string) { once.Do(cancel) })

	run, err := f.orch.RunMRP(ctx, orgID, plantID, planning.RunOptions{Workers: 1})
	require.NoError(t, err)

	assert.Equal(t, entity.MRPRunStatusFailed, run.Status)
	assert.Contains(t, run.ErrorMessage, "cancelada")
	assert.Equal(t, 1, run.MaterialsProcessed, "el material en curso termina; el resto no se procesa")

	stored, err := f.query.GetRun(context.Background(), orgID, run.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MRPRunStatusFailed, stored.Status)
	assert.Equal(t, 1, stored.MaterialsProcessed)
}

func TestRunMRP_OrganizacionYPlantaRequeridas(t *testing.T) {
	f := newFixture(t)
	_, err := f.orch.RunMRP(context.Background(), "", plantID, planning.RunOptions{})
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Determinismo
// ──────────────────────────────────────────────────────────────────────────────

type orderKey struct {
	material  string
	qty       string
	needDate  string
	orderDate string
}

func keys(orders []*entity.PlannedOrder) []orderKey {
	out := make([]orderKey, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderKey{
			material:  o.MaterialID,
			qty:       o.PlannedQuantity.String(),
			needDate:  o.NeedDate.Format("2006-01-02"),
			orderDate: o.OrderDate.Format("2006-01-02"),
		})
	}
	return out
}

func TestRunMRP_DeterministaEntreCorridas(t *testing.T) {
	f := newFixture(t)
	f.addMaterial("FG", entity.ProcurementManufacture, 2, "5")
	f.addBOM("FG", "1", line("C1", "2", "5", false), line("PH", "1", "0", true))
	f.addBOM("PH", "1", line("C2", "4", "0", false), line("C1", "1", "0", false))
	for _, id := range []string{"C1", "C2"} {
		f.addMaterial(id, entity.ProcurementPurchase, 3, "25")
	}
	f.store.SetStock("C1", d("12"))
	f.addWorkOrder("wo-1", "FG", "7", 5, 9)
	f.addWorkOrder("wo-2", "FG", "4", 12, 15)
	f.addWorkOrder("wo-3", "FG", "9", 20, 22)

	first := runMRP(t, f, planning.RunOptions{Workers: 4})
	second := runMRP(t, f, planning.RunOptions{Workers: 1})

	assert.Equal(t, first.PlannedOrdersCreated, second.PlannedOrdersCreated)
	assert.True(t, first.TotalShortageQty.Equal(second.TotalShortageQty))
	assert.Equal(t, keys(ordersOf(t, f, first)), keys(ordersOf(t, f, second)),
		"dos corridas sobre los mismos datos deben producir las mismas órdenes")
	assert.NotEqual(t, first.ID, second.ID)
}
