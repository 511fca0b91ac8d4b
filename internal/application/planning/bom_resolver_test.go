package planning_test

import (
	"context"
	"testing"

	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quantities(reqs []entity.ComponentRequirement) map[string]string {
	out := make(map[string]string, len(reqs))
	for _, r := range reqs {
		out[r.MaterialID] = r.Quantity.String()
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Un nivel
// ──────────────────────────────────────────────────────────────────────────────

func TestExplode_UnNivelConMermaYCantidadBase(t *testing.T) {
	f := newFixture(t)
	f.addMaterial("FG", entity.ProcurementManufacture, 2, "1")
	// Líneas expresadas por 4 unidades del padre
	f.addBOM("FG", "4", line("C1", "2", "10", false), line("C2", "3", "0", false))
	f.addWorkOrder("wo-1", "FG", "10", 3, 5)

	reqs, err := f.resolver.Explode(context.Background(), "wo-1")
	require.NoError(t, err)

	// 10 × 2/4 × 1.10 = 5.5 ; 10 × 3/4 = 7.5
	assert.Equal(t, map[string]string{"C1": "5.5", "C2": "7.5"}, quantities(reqs))
	for _, r := range reqs {
		assert.Equal(t, "wo-1", r.ParentWorkOrderID, "cada requerimiento debe referenciar la orden")
		assert.Equal(t, "EA", r.UnitOfMeasure)
	}
}

func TestExplode_SalidaOrdenadaPorMaterial(t *testing.T) {
	f := newFixture(t)
	f.addMaterial("FG", entity.ProcurementManufacture, 0, "1")
	f.addBOM("FG", "1", line("Z9", "1", "0", false), line("A1", "1", "0", false), line("M5", "1", "0", false))
	f.addWorkOrder("wo-1", "FG", "1", 1, 2)

	reqs, err := f.resolver.Explode(context.Background(), "wo-1")
	require.NoError(t, err)
	require.Len(t, reqs, 3)
	assert.Equal(t, "A1", reqs[0].MaterialID)
	assert.Equal(t, "M5", reqs[1].MaterialID)
	assert.Equal(t, "Z9", reqs[2].MaterialID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fantasmas
// ──────────────────────────────────────────────────────────────────────────────

func TestExplode_FantasmaSeAplanaYSumaCaminos(t *testing.T) {
	f := newFixture(t)
	f.addMaterial("FG", entity.ProcurementManufacture, 0, "1")
	f.addBOM("FG", "1",
		line("C1", "2", "10", false),
		line("PH", "1", "0", true),
	)
	f.addBOM("PH", "1",
		line("C2", "3", "0", false),
		line("C1", "1", "0", false),
	)
	f.addWorkOrder("wo-1", "FG", "10", 1, 2)

	reqs, err := f.resolver.Explode(context.Background(), "wo-1")
	require.NoError(t, err)

	got := quantities(reqs)
	assert.NotContains(t, got, "PH", "el material fantasma nunca debe aparecer como requerimiento")
	// C1: 10×2×1.1 = 22 directo + 10×1 vía fantasma = 32 ; C2: 10×1×3 = 30
	assert.Equal(t, map[string]string{"C1": "32", "C2": "30"}, got)
}

func TestExplode_FantasmaMultiplicaAmbosNiveles(t *testing.T) {
	f := newFixture(t)
	f.addMaterial("FG", entity.ProcurementManufacture, 0, "1")
	f.addBOM("FG", "2", line("PH", "3", "50", true))
	f.addBOM("PH", "5", line("C9", "10", "20", false))
	f.addWorkOrder("wo-1", "FG", "4", 1, 2)

	reqs, err := f.resolver.Explode(context.Background(), "wo-1")
	require.NoError(t, err)

	// PH: 4 × 3/2 × 1.5 = 9 ; C9: 9 × 10/5 × 1.2 = 21.6
	assert.Equal(t, map[string]string{"C9": "21.6"}, quantities(reqs))
}

func TestExplode_FantasmaSinBOMVigente(t *testing.T) {
	f := newFixture(t)
	f.addMaterial("FG", entity.ProcurementManufacture, 0, "1")
	f.addBOM("FG", "1", line("PH", "1", "0", true))
	f.addWorkOrder("wo-1", "FG", "1", 1, 2)

	_, err := f.resolver.Explode(context.Background(), "wo-1")
	assert.ErrorIs(t, err, domain.ErrNoActiveBOM)
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores
// ──────────────────────────────────────────────────────────────────────────────

func TestExplode_SinBOMVigente(t *testing.T) {
	f := newFixture(t)
	f.addMaterial("FG", entity.ProcurementManufacture, 0, "1")
	f.addWorkOrder("wo-1", "FG", "1", 1, 2)

	_, err := f.resolver.Explode(context.Background(), "wo-1")
	assert.ErrorIs(t, err, domain.ErrNoActiveBOM)
	assert.False(t, domain.IsInfrastructure(err), "falta de BOM es un error de datos, no de infraestructura")
}

func TestExplode_BOMFueraDeVigencia(t *testing.T) {
	f := newFixture(t)
	f.addMaterial("FG", entity.ProcurementManufacture, 0, "1")
	expired := f.day(-1)
	f.store.AddBOM(&entity.BOMHeader{
		ID: "bom-old", MaterialID: "FG", Version: 1, BaseQuantity: d("1"),
		ValidFrom: f.day(-100), ValidTo: &expired,
	}, line("C1", "1", "0", false))
	f.addWorkOrder("wo-1", "FG", "1", 1, 2)

	_, err := f.resolver.Explode(context.Background(), "wo-1")
	assert.ErrorIs(t, err, domain.ErrNoActiveBOM)
}

func TestExplode_VersionMasRecienteGana(t *testing.T) {
	f := newFixture(t)
	f.addMaterial("FG", entity.ProcurementManufacture, 0, "1")
	f.store.AddBOM(&entity.BOMHeader{ID: "v1", MaterialID: "FG", Version: 1, BaseQuantity: d("1"), ValidFrom: f.day(-100)},
		line("OLD", "1", "0", false))
	f.store.AddBOM(&entity.BOMHeader{ID: "v2", MaterialID: "FG", Version: 2, BaseQuantity: d("1"), ValidFrom: f.day(-10)},
		line("NEW", "1", "0", false))
	f.addWorkOrder("wo-1", "FG", "1", 1, 2)

	reqs, err := f.resolver.Explode(context.Background(), "wo-1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"NEW": "1"}, quantities(reqs))
}

func TestExplode_CicloEntreFantasmas(t *testing.T) {
	f := newFixture(t)
	f.addMaterial("FG", entity.ProcurementManufacture, 0, "1")
	f.addBOM("FG", "1", line("PA", "1", "0", true))
	f.addBOM("PA", "1", line("PB", "1", "0", true))
	f.addBOM("PB", "1", line("PA", "1", "0", true))
	f.addWorkOrder("wo-1", "FG", "1", 1, 2)

	_, err := f.resolver.Explode(context.Background(), "wo-1")
	assert.ErrorIs(t, err, domain.ErrBOMCycleOrTooDeep)
}

func TestExplode_ProfundidadExcedida(t *testing.T) {
	f := newFixtureWithDepth(t, 2)
	f.addMaterial("FG", entity.ProcurementManufacture, 0, "1")
	f.addBOM("FG", "1", line("P1", "1", "0", true))
	f.addBOM("P1", "1", line("P2", "1", "0", true))
	f.addBOM("P2", "1", line("C1", "1", "0", false))
	f.addWorkOrder("wo-1", "FG", "1", 1, 2)

	_, err := f.resolver.Explode(context.Background(), "wo-1")
	assert.ErrorIs(t, err, domain.ErrBOMCycleOrTooDeep)
}

func TestExplode_OrdenInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.resolver.Explode(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
