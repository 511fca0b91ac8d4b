package planning_test

import (
	"testing"
	"time"

	"github.com/jhoicas/mrp-api/internal/application/planning"
	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/mrp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var need = time.Date(2026, 5, 20, 15, 30, 0, 0, time.UTC)

func purchased(lead int, lot string) *entity.Material {
	return &entity.Material{
		ID: "M1", OrganizationID: orgID, PlantID: plantID, MaterialNumber: "MAT-1",
		ProcurementType: entity.ProcurementPurchase, LeadTimeDays: lead, LotSize: d(lot),
	}
}

func TestGeneratePlannedOrders_FechaDePedidoYTipo(t *testing.T) {
	g := planning.NewPlannedOrderGenerator()

	cases := []struct {
		procurement string
		want        string
	}{
		{entity.ProcurementPurchase, entity.PlannedOrderTypePurchase},
		{entity.ProcurementBoth, entity.PlannedOrderTypePurchase},
		{entity.ProcurementManufacture, entity.PlannedOrderTypeProduction},
	}
	for _, c := range cases {
		m := purchased(7, "10")
		m.ProcurementType = c.procurement

		orders, err := g.GeneratePlannedOrders(nil, m, d("13"), need, nil)
		require.NoError(t, err)
		require.Len(t, orders, 1)

		o := orders[0]
		assert.Equal(t, c.want, o.OrderType, "tipo para %s", c.procurement)
		assert.Equal(t, time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC), o.NeedDate)
		assert.Equal(t, time.Date(2026, 5, 13, 0, 0, 0, 0, time.UTC), o.OrderDate)
		assert.True(t, o.PlannedQuantity.Equal(d("20")))
		assert.Equal(t, entity.PlannedOrderStatusPlanned, o.Status)
		assert.NotEmpty(t, o.ID)
	}
}

func TestGeneratePlannedOrders_NetoCeroNoGeneraOrden(t *testing.T) {
	g := planning.NewPlannedOrderGenerator()
	orders, err := g.GeneratePlannedOrders(nil, purchased(0, "10"), d("0"), need, nil)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestGeneratePlannedOrders_LoteInvalido(t *testing.T) {
	g := planning.NewPlannedOrderGenerator()
	_, err := g.GeneratePlannedOrders(nil, purchased(0, "0"), d("5"), need, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidLotSizingParameters)
}

func TestGeneratePlannedOrders_AsignaCorrida(t *testing.T) {
	g := planning.NewPlannedOrderGenerator()
	run := &entity.MRPRun{ID: "run-9", OrganizationID: orgID, PlantID: plantID}

	orders, err := g.GeneratePlannedOrders(run, purchased(0, "1"), d("3"), need, mrp.LotForLot{})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "run-9", orders[0].MRPRunID)
}

func TestGenerateForProfile_UnaOrdenPorFechaDeFaltante(t *testing.T) {
	g := planning.NewPlannedOrderGenerator()
	day := func(n int) time.Time { return time.Date(2026, 6, n, 0, 0, 0, 0, time.UTC) }
	profile := mrp.ComputeNetRequirements(d("10"), nil, []entity.DemandLine{
		{MaterialID: "M1", Quantity: d("15"), NeedDate: day(3)},
		{MaterialID: "M1", Quantity: d("8"), NeedDate: day(9)},
		{MaterialID: "M1", Quantity: d("4"), NeedDate: day(12)},
	})

	orders, err := g.GenerateForProfile(nil, purchased(2, "1"), profile, nil)
	require.NoError(t, err)
	require.Len(t, orders, 3)

	assert.Equal(t, []string{"5", "8", "4"}, []string{
		orders[0].PlannedQuantity.String(),
		orders[1].PlannedQuantity.String(),
		orders[2].PlannedQuantity.String(),
	})
	for i := 1; i < len(orders); i++ {
		assert.True(t, orders[i-1].NeedDate.Before(orders[i].NeedDate), "órdenes en orden cronológico")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Selección de política
// ──────────────────────────────────────────────────────────────────────────────

func TestPolicySelector(t *testing.T) {
	m := purchased(0, "25")
	m.StandardCost = d("4")

	assert.Nil(t, planning.PolicySelector(mrp.PolicyFixedLotSize, planning.EOQParams{}))

	lfl := planning.PolicySelector(mrp.PolicyLotForLot, planning.EOQParams{})
	require.NotNil(t, lfl)
	assert.Equal(t, mrp.PolicyLotForLot, lfl(m).Kind())

	eoq := planning.PolicySelector(mrp.PolicyEOQ, planning.EOQParams{
		AnnualDemand: d("1000"), OrderingCost: d("50"), HoldingCostRate: d("0.25"),
	})
	require.NotNil(t, eoq)
	p, ok := eoq(m).(mrp.EOQ)
	require.True(t, ok)
	assert.True(t, p.UnitCost.Equal(d("4")), "el costo unitario debe salir del costo estándar")
	assert.True(t, p.FallbackLot.Equal(d("25")), "el lote de respaldo debe ser el lote del material")

	// sqrt(2 × 1000 × 50 / (0.25 × 4)) = sqrt(100000) ≈ 316.23 → 317
	qty, err := mrp.Size(d("40"), p)
	require.NoError(t, err)
	assert.True(t, qty.Equal(d("317")), "obtenido %s", qty)
}
