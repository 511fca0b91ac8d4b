package planning

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

// DemandBook demanda bruta por material construida una sola vez al inicio de la corrida.
// Es de solo lectura: los workers la consultan en paralelo sin bloqueo.
type DemandBook struct {
	lines    map[string][]entity.DemandLine
	failures map[string]error
}

// For devuelve las líneas de demanda del material ordenadas por fecha de necesidad.
func (b *DemandBook) For(materialID string) []entity.DemandLine {
	if b == nil {
		return nil
	}
	return b.lines[materialID]
}

// Failure devuelve el error de explosión registrado para el material, si hubo.
func (b *DemandBook) Failure(materialID string) error {
	if b == nil {
		return nil
	}
	return b.failures[materialID]
}

// DemandBuilder arma el libro de demanda a partir de las órdenes de trabajo abiertas.
type DemandBuilder struct {
	woRepo       repository.WorkOrderRepository
	materialRepo repository.MaterialRepository
	resolver     *BOMResolver
}

// NewDemandBuilder construye el armador de demanda.
func NewDemandBuilder(
	woRepo repository.WorkOrderRepository,
	materialRepo repository.MaterialRepository,
	resolver *BOMResolver,
) *DemandBuilder {
	return &DemandBuilder{woRepo: woRepo, materialRepo: materialRepo, resolver: resolver}
}

// Build lee las órdenes abiertas de la organización y planta hasta to y genera:
//   - demanda independiente: la orden para su propio material en EndDatePlanned;
//   - demanda dependiente: consumos declarados de la orden o, si no hay, la explosión de BOM
//     cuando el material es fabricado.
//
// Las fechas anteriores a from (órdenes atrasadas) se llevan a from.
// Un error de explosión queda registrado contra el material de la orden; solo los fallos de
// lectura devuelven error.
func (b *DemandBuilder) Build(ctx context.Context, organizationID, plantID string, from, to time.Time) (*DemandBook, error) {
	from = entity.TruncateDay(from)
	book := &DemandBook{
		lines:    make(map[string][]entity.DemandLine),
		failures: make(map[string]error),
	}

	orders, err := b.woRepo.ListOpen(ctx, organizationID, plantID, to)
	if err != nil {
		return nil, readFailure(err, "órdenes de trabajo abiertas")
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })

	materials := make(map[string]*entity.Material)
	for _, wo := range orders {
		if !wo.IsOpen() || !wo.PlannedQuantity.IsPositive() {
			continue
		}
		book.add(entity.DemandLine{
			MaterialID:        wo.MaterialID,
			Quantity:          wo.PlannedQuantity,
			NeedDate:          clampDay(wo.EndDatePlanned, from),
			SourceWorkOrderID: wo.ID,
			Kind:              entity.DemandKindWorkOrder,
		})

		needDate := clampDay(wo.ComponentNeedDate(), from)

		declared, err := b.woRepo.ListMaterials(ctx, wo.ID)
		if err != nil {
			return nil, readFailure(err, "consumos de la orden "+wo.ID)
		}
		if len(declared) > 0 {
			for _, m := range declared {
				book.add(entity.DemandLine{
					MaterialID:        m.MaterialID,
					Quantity:          m.QuantityRequired,
					NeedDate:          needDate,
					SourceWorkOrderID: wo.ID,
					Kind:              entity.DemandKindComponent,
				})
			}
			continue
		}

		material, ok := materials[wo.MaterialID]
		if !ok {
			material, err = b.materialRepo.GetByID(ctx, wo.MaterialID)
			if err != nil {
				if !errors.Is(err, domain.ErrNotFound) {
					return nil, readFailure(err, "material "+wo.MaterialID)
				}
				book.fail(wo.MaterialID, fmt.Errorf("orden %s: material %s: %w", wo.OrderNumber, wo.MaterialID, err))
				continue
			}
			materials[wo.MaterialID] = material
		}
		if material == nil || !material.IsManufactured() {
			continue
		}

		reqs, err := b.resolver.ExplodeWorkOrder(ctx, wo)
		if err != nil {
			if domain.IsInfrastructure(err) {
				return nil, err
			}
			book.fail(wo.MaterialID, err)
			continue
		}
		for _, req := range reqs {
			book.add(entity.DemandLine{
				MaterialID:        req.MaterialID,
				Quantity:          req.Quantity,
				NeedDate:          needDate,
				SourceWorkOrderID: wo.ID,
				Kind:              entity.DemandKindComponent,
			})
		}
	}

	for id := range book.lines {
		lines := book.lines[id]
		sort.SliceStable(lines, func(i, j int) bool { return lines[i].NeedDate.Before(lines[j].NeedDate) })
	}
	return book, nil
}

func (b *DemandBook) add(line entity.DemandLine) {
	b.lines[line.MaterialID] = append(b.lines[line.MaterialID], line)
}

// fail conserva el primer error del material (las órdenes se recorren por id).
func (b *DemandBook) fail(materialID string, err error) {
	if _, ok := b.failures[materialID]; !ok {
		b.failures[materialID] = err
	}
}

func clampDay(t, from time.Time) time.Time {
	day := entity.TruncateDay(t)
	if day.Before(from) {
		return from
	}
	return day
}
