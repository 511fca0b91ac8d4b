package planning_test

import (
	"context"
	"testing"

	"github.com/jhoicas/mrp-api/internal/application/planning"
	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlannedOrderUseCase(t *testing.T) (*planning.PlannedOrderUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.AddPlannedOrder(&entity.PlannedOrder{
		ID: "po-1", OrganizationID: orgID, PlantID: plantID, MaterialID: "M1",
		PlannedQuantity: d("10"), Status: entity.PlannedOrderStatusPlanned, Source: entity.PlannedOrderSourceMRP,
	})
	return planning.NewPlannedOrderUseCase(store.PlannedOrders()), store
}

func TestPlannedOrder_FirmarYConvertir(t *testing.T) {
	uc, store := newPlannedOrderUseCase(t)
	ctx := context.Background()

	firmed, err := uc.Firm(ctx, orgID, "po-1")
	require.NoError(t, err)
	assert.Equal(t, entity.PlannedOrderStatusFirmed, firmed.Status)

	converted, err := uc.Convert(ctx, orgID, "po-1", "WO-2026-001")
	require.NoError(t, err)
	assert.Equal(t, entity.PlannedOrderStatusConverted, converted.Status)
	require.NotNil(t, converted.ConvertedToOrderID)
	assert.Equal(t, "WO-2026-001", *converted.ConvertedToOrderID)

	stored, err := store.PlannedOrders().GetByID(ctx, "po-1")
	require.NoError(t, err)
	assert.Equal(t, entity.PlannedOrderStatusConverted, stored.Status, "la transición debe persistirse")
}

func TestPlannedOrder_ConvertirDirectoDesdePlanned(t *testing.T) {
	uc, _ := newPlannedOrderUseCase(t)
	o, err := uc.Convert(context.Background(), orgID, "po-1", "PO-77")
	require.NoError(t, err)
	assert.Equal(t, entity.PlannedOrderStatusConverted, o.Status)
}

func TestPlannedOrder_TransicionesInvalidas(t *testing.T) {
	uc, _ := newPlannedOrderUseCase(t)
	ctx := context.Background()

	_, err := uc.Firm(ctx, orgID, "po-1")
	require.NoError(t, err)
	_, err = uc.Firm(ctx, orgID, "po-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "no se puede firmar dos veces")

	_, err = uc.Convert(ctx, orgID, "po-1", "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Convert(ctx, orgID, "po-1", "WO-1")
	require.NoError(t, err)
	_, err = uc.Convert(ctx, orgID, "po-1", "WO-2")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "una orden convertida es terminal")
}

func TestPlannedOrder_OtraOrganizacion(t *testing.T) {
	uc, _ := newPlannedOrderUseCase(t)
	_, err := uc.Firm(context.Background(), "otra-org", "po-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
