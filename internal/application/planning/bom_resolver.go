package planning

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/mrp"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// DefaultMaxBOMDepth niveles de BOM que se recorren antes de declarar ciclo.
const DefaultMaxBOMDepth = 10

// BOMResolver explota la lista de materiales de una orden de trabajo en requerimientos
// planos de componentes hoja. Solo lee; nunca modifica BOM ni órdenes.
type BOMResolver struct {
	bomRepo  repository.BOMRepository
	woRepo   repository.WorkOrderRepository
	maxDepth int
}

// NewBOMResolver construye el resolvedor. maxDepth <= 0 usa DefaultMaxBOMDepth.
func NewBOMResolver(bomRepo repository.BOMRepository, woRepo repository.WorkOrderRepository, maxDepth int) *BOMResolver {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxBOMDepth
	}
	return &BOMResolver{bomRepo: bomRepo, woRepo: woRepo, maxDepth: maxDepth}
}

// requirement acumulado de un componente hoja.
type requirement struct {
	qty decimal.Decimal
	uom string
}

// Explode resuelve la BOM vigente del material de la orden para su cantidad planificada.
func (r *BOMResolver) Explode(ctx context.Context, workOrderID string) ([]entity.ComponentRequirement, error) {
	wo, err := r.woRepo.GetByID(ctx, workOrderID)
	if err != nil {
		return nil, readFailure(err, "orden de trabajo "+workOrderID)
	}
	if wo == nil {
		return nil, domain.ErrNotFound
	}
	return r.ExplodeWorkOrder(ctx, wo)
}

// ExplodeWorkOrder igual que Explode pero con la orden ya cargada.
// La vigencia de la BOM se evalúa en la fecha de consumo de componentes de la orden.
func (r *BOMResolver) ExplodeWorkOrder(ctx context.Context, wo *entity.WorkOrder) ([]entity.ComponentRequirement, error) {
	reqs, err := r.ExplodeQuantity(ctx, wo.MaterialID, wo.PlannedQuantity, wo.ComponentNeedDate())
	if err != nil {
		return nil, fmt.Errorf("explotar orden %s: %w", wo.OrderNumber, err)
	}
	for i := range reqs {
		reqs[i].ParentWorkOrderID = wo.ID
	}
	return reqs, nil
}

// ExplodeQuantity explota qty unidades de materialID con la BOM vigente en at.
// El resultado trae una entrada por componente hoja, ordenada por material.
func (r *BOMResolver) ExplodeQuantity(ctx context.Context, materialID string, qty decimal.Decimal, at time.Time) ([]entity.ComponentRequirement, error) {
	acc, err := r.explode(ctx, materialID, qty, at, 0, nil)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(acc))
	for id := range acc {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]entity.ComponentRequirement, 0, len(ids))
	for _, id := range ids {
		out = append(out, entity.ComponentRequirement{
			MaterialID:    id,
			Quantity:      acc[id].qty,
			UnitOfMeasure: acc[id].uom,
		})
	}
	return out, nil
}

// explode devuelve el acumulado propio de este nivel (material → cantidad); el llamador lo
// fusiona en el suyo. path lleva los materiales del camino actual para detectar ciclos.
func (r *BOMResolver) explode(
	ctx context.Context,
	materialID string,
	qty decimal.Decimal,
	at time.Time,
	depth int,
	path []string,
) (map[string]requirement, error) {
	if depth >= r.maxDepth {
		return nil, fmt.Errorf("%w: %s supera %d niveles", domain.ErrBOMCycleOrTooDeep, materialID, r.maxDepth)
	}
	for _, p := range path {
		if p == materialID {
			return nil, fmt.Errorf("%w: %s aparece dos veces en el camino %v", domain.ErrBOMCycleOrTooDeep, materialID, path)
		}
	}
	path = append(path[:len(path):len(path)], materialID)

	header, err := r.bomRepo.GetActiveHeader(ctx, materialID, at)
	if err != nil {
		return nil, readFailure(err, "cabecera BOM de "+materialID)
	}
	if header == nil {
		return nil, fmt.Errorf("%w: %s en %s", domain.ErrNoActiveBOM, materialID, at.Format("2006-01-02"))
	}
	if !header.BaseQuantity.IsPositive() {
		return nil, fmt.Errorf("%w: BOM %s con cantidad base %s", domain.ErrNoActiveBOM, header.ID, header.BaseQuantity)
	}

	lines, err := r.bomRepo.ListLines(ctx, header.ID)
	if err != nil {
		return nil, readFailure(err, "líneas BOM "+header.ID)
	}

	acc := make(map[string]requirement)
	for _, line := range lines {
		required := mrp.ExplodedQuantity(qty, line.Quantity, header.BaseQuantity, line.ScrapFactor)
		if !line.IsPhantom {
			merge(acc, line.ComponentMaterialID, requirement{qty: required, uom: line.UnitOfMeasure})
			continue
		}
		sub, err := r.explode(ctx, line.ComponentMaterialID, required, at, depth+1, path)
		if err != nil {
			return nil, err
		}
		// Las claves se fusionan en orden para que la unidad de medida elegida sea estable.
		keys := make([]string, 0, len(sub))
		for k := range sub {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			merge(acc, k, sub[k])
		}
	}
	return acc, nil
}

func merge(acc map[string]requirement, materialID string, req requirement) {
	cur, ok := acc[materialID]
	if !ok {
		acc[materialID] = req
		return
	}
	cur.qty = cur.qty.Add(req.qty)
	acc[materialID] = cur
}

// readFailure envuelve errores de repositorio como fallo de infraestructura, salvo NotFound.
func readFailure(err error, what string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrMaterialReadFailure, what, err)
}
