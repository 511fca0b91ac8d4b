package planning

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/mrp"
	"github.com/shopspring/decimal"
)

// DefaultPolicy política configurada del material: lote fijo de material.LotSize.
func DefaultPolicy(m *entity.Material) mrp.Policy {
	return mrp.FixedLotSize{Lot: m.LotSize}
}

// EOQParams costos comunes de una corrida EOQ. El costo unitario sale de
// Material.StandardCost y el lote de respaldo de Material.LotSize.
type EOQParams struct {
	AnnualDemand    decimal.Decimal
	OrderingCost    decimal.Decimal
	HoldingCostRate decimal.Decimal
}

// PolicySelector arma RunOptions.PolicyFor para la política pedida.
// FIXED_LOT_SIZE devuelve nil: es la política por defecto.
func PolicySelector(kind mrp.PolicyKind, eoq EOQParams) func(*entity.Material) mrp.Policy {
	switch kind {
	case mrp.PolicyLotForLot:
		return func(*entity.Material) mrp.Policy { return mrp.LotForLot{} }
	case mrp.PolicyEOQ:
		return func(m *entity.Material) mrp.Policy {
			return mrp.EOQ{
				AnnualDemand:    eoq.AnnualDemand,
				OrderingCost:    eoq.OrderingCost,
				HoldingCostRate: eoq.HoldingCostRate,
				UnitCost:        m.StandardCost,
				FallbackLot:     m.LotSize,
			}
		}
	}
	return nil
}

// PlannedOrderGenerator convierte faltantes en órdenes planificadas PLANNED.
type PlannedOrderGenerator struct {
	newID func() string
	now   func() time.Time
}

// NewPlannedOrderGenerator construye el generador con ids UUID y reloj real.
func NewPlannedOrderGenerator() *PlannedOrderGenerator {
	return &PlannedOrderGenerator{
		newID: func() string { return uuid.New().String() },
		now:   time.Now,
	}
}

// GeneratePlannedOrders emite a lo sumo una orden para netRequirement en needDate.
// OrderDate = needDate - LeadTimeDays (días calendario). policy nil usa DefaultPolicy.
func (g *PlannedOrderGenerator) GeneratePlannedOrders(
	run *entity.MRPRun,
	material *entity.Material,
	netRequirement decimal.Decimal,
	needDate time.Time,
	policy mrp.Policy,
) ([]*entity.PlannedOrder, error) {
	if material.LeadTimeDays < 0 {
		return nil, fmt.Errorf("%w: lead time negativo en %s", domain.ErrInvalidInput, material.MaterialNumber)
	}
	if policy == nil {
		policy = DefaultPolicy(material)
	}

	qty, err := mrp.Size(netRequirement, policy)
	if err != nil {
		return nil, fmt.Errorf("material %s: %w", material.MaterialNumber, err)
	}
	if !qty.IsPositive() {
		return nil, nil
	}

	needDay := entity.TruncateDay(needDate)
	now := g.now()
	order := &entity.PlannedOrder{
		ID:               g.newID(),
		MaterialID:       material.ID,
		OrganizationID:   material.OrganizationID,
		PlantID:          material.PlantID,
		OrderType:        material.PlannedOrderType(),
		PlannedQuantity:  qty,
		ShortageQuantity: netRequirement,
		NeedDate:         needDay,
		OrderDate:        needDay.AddDate(0, 0, -material.LeadTimeDays),
		LotSizingPolicy:  string(policy.Kind()),
		Status:           entity.PlannedOrderStatusPlanned,
		Source:           entity.PlannedOrderSourceMRP,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if run != nil {
		order.MRPRunID = run.ID
		order.OrganizationID = run.OrganizationID
		order.PlantID = run.PlantID
	}
	return []*entity.PlannedOrder{order}, nil
}

// GenerateForProfile emite una orden por fecha de faltante, dimensionada contra el déficit
// incremental de esa fecha. Las órdenes salen en orden cronológico.
func (g *PlannedOrderGenerator) GenerateForProfile(
	run *entity.MRPRun,
	material *entity.Material,
	profile mrp.NetProfile,
	policy mrp.Policy,
) ([]*entity.PlannedOrder, error) {
	var orders []*entity.PlannedOrder
	for _, bucket := range profile.Shortages {
		out, err := g.GeneratePlannedOrders(run, material, bucket.Deficit, bucket.Date, policy)
		if err != nil {
			return nil, err
		}
		orders = append(orders, out...)
	}
	return orders, nil
}
