package planning

import (
	"context"
	"time"

	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/mrp"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// NetRequirementsResult perfil neteado de un material en una ventana.
type NetRequirementsResult struct {
	MaterialID  string
	WindowStart time.Time
	WindowEnd   time.Time
	mrp.NetProfile
}

// NetRequirementsCalculator netea la demanda de un material contra stock y recepciones.
// Lee inventario y suministro una sola vez por llamada y nunca escribe.
type NetRequirementsCalculator struct {
	inventoryRepo repository.InventoryRepository
	supplyRepo    repository.SupplyRepository
	log           zerolog.Logger
}

// NewNetRequirementsCalculator construye el calculador.
func NewNetRequirementsCalculator(
	inventoryRepo repository.InventoryRepository,
	supplyRepo repository.SupplyRepository,
	log zerolog.Logger,
) *NetRequirementsCalculator {
	return &NetRequirementsCalculator{
		inventoryRepo: inventoryRepo,
		supplyRepo:    supplyRepo,
		log:           log.With().Str("component", "net_requirements").Logger(),
	}
}

// Calculate netea demand (ya construida por el libro de demanda) en [from, to].
// Las líneas fuera de la ventana se ignoran.
func (c *NetRequirementsCalculator) Calculate(
	ctx context.Context,
	materialID string,
	from, to time.Time,
	demand []entity.DemandLine,
) (*NetRequirementsResult, error) {
	from, to = entity.TruncateDay(from), entity.TruncateDay(to)

	stock, err := c.inventoryRepo.GetOnHand(ctx, materialID)
	if err != nil {
		return nil, readFailure(err, "stock de "+materialID)
	}
	receipts, err := c.supplyRepo.ListScheduledReceipts(ctx, materialID, from, to)
	if err != nil {
		return nil, readFailure(err, "recepciones de "+materialID)
	}

	inWindow := make([]entity.DemandLine, 0, len(demand))
	for _, d := range demand {
		day := entity.TruncateDay(d.NeedDate)
		if day.Before(from) || day.After(to) {
			continue
		}
		inWindow = append(inWindow, d)
	}

	profile := mrp.ComputeNetRequirements(stock.Quantity, receipts, inWindow)
	if profile.NegativeOnHand {
		c.log.Warn().
			Str("material_id", materialID).
			Str("on_hand", stock.Quantity.String()).
			Msg("stock negativo tratado como cero")
	}

	return &NetRequirementsResult{
		MaterialID:  materialID,
		WindowStart: from,
		WindowEnd:   to,
		NetProfile:  profile,
	}, nil
}
