package planning

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
)

// PlannedOrderUseCase transiciones que aplican compras y producción sobre las órdenes
// planificadas. El motor nunca las invoca.
type PlannedOrderUseCase struct {
	orderRepo repository.PlannedOrderRepository
	now       func() time.Time
}

// NewPlannedOrderUseCase construye el caso de uso.
func NewPlannedOrderUseCase(orderRepo repository.PlannedOrderRepository) *PlannedOrderUseCase {
	return &PlannedOrderUseCase{orderRepo: orderRepo, now: time.Now}
}

// Firm PLANNED → FIRMED.
func (uc *PlannedOrderUseCase) Firm(ctx context.Context, organizationID, id string) (*entity.PlannedOrder, error) {
	order, err := uc.get(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	if err := order.Firm(uc.now()); err != nil {
		return nil, err
	}
	if err := uc.orderRepo.UpdateStatus(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Convert PLANNED|FIRMED → CONVERTED registrando la orden real creada aguas abajo.
func (uc *PlannedOrderUseCase) Convert(ctx context.Context, organizationID, id, orderID string) (*entity.PlannedOrder, error) {
	order, err := uc.get(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	if err := order.ConvertToWorkOrder(strings.TrimSpace(orderID), uc.now()); err != nil {
		return nil, err
	}
	if err := uc.orderRepo.UpdateStatus(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (uc *PlannedOrderUseCase) get(ctx context.Context, organizationID, id string) (*entity.PlannedOrder, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil || order.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return order, nil
}
