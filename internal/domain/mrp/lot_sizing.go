package mrp

import (
	"fmt"
	"math"

	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/shopspring/decimal"
)

// PolicyKind nombre de la política de tamaño de lote.
type PolicyKind string

// Políticas de tamaño de lote soportadas.
const (
	PolicyLotForLot    PolicyKind = "LOT_FOR_LOT"
	PolicyFixedLotSize PolicyKind = "FIXED_LOT_SIZE"
	PolicyEOQ          PolicyKind = "EOQ"
)

// Policy variante cerrada de políticas de lote. Solo este paquete puede implementarla;
// Size hace el despacho por tipo.
type Policy interface {
	Kind() PolicyKind
	policy()
}

// LotForLot ordena exactamente el requerimiento neto.
type LotForLot struct{}

// FixedLotSize redondea hacia arriba al múltiplo de Lot.
type FixedLotSize struct {
	Lot decimal.Decimal
}

// EOQ lote económico de pedido: sqrt(2·D·S / (H·C)).
// Si el EOQ no cubre el requerimiento neto se redondea el faltante con FallbackLot (lote fijo).
type EOQ struct {
	AnnualDemand    decimal.Decimal // D
	OrderingCost    decimal.Decimal // S, costo por pedido
	HoldingCostRate decimal.Decimal // H, fracción anual del costo unitario
	UnitCost        decimal.Decimal // C
	FallbackLot     decimal.Decimal
}

func (LotForLot) Kind() PolicyKind    { return PolicyLotForLot }
func (FixedLotSize) Kind() PolicyKind { return PolicyFixedLotSize }
func (EOQ) Kind() PolicyKind          { return PolicyEOQ }

func (LotForLot) policy()    {}
func (FixedLotSize) policy() {}
func (EOQ) policy()          {}

// Size convierte un requerimiento neto en cantidad de pedido según la política.
// Un requerimiento neto cero nunca genera pedido.
func Size(net decimal.Decimal, p Policy) (decimal.Decimal, error) {
	if net.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: requerimiento neto negativo %s", domain.ErrInvalidLotSizingParameters, net)
	}
	switch p := p.(type) {
	case LotForLot:
		return net, nil
	case FixedLotSize:
		return roundUpToLot(net, p.Lot)
	case EOQ:
		return sizeEOQ(net, p)
	case nil:
		return decimal.Zero, fmt.Errorf("%w: política nula", domain.ErrInvalidLotSizingParameters)
	default:
		return decimal.Zero, fmt.Errorf("%w: política %s no soportada", domain.ErrInvalidLotSizingParameters, p.Kind())
	}
}

// roundUpToLot = ceil(net / lot) × lot, exacto sobre decimales.
func roundUpToLot(net, lot decimal.Decimal) (decimal.Decimal, error) {
	if !lot.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: lote fijo %s debe ser > 0", domain.ErrInvalidLotSizingParameters, lot)
	}
	if net.IsZero() {
		return decimal.Zero, nil
	}
	q, r := net.QuoRem(lot, 0)
	if r.IsPositive() {
		q = q.Add(decimal.NewFromInt(1))
	}
	return q.Mul(lot), nil
}

func sizeEOQ(net decimal.Decimal, p EOQ) (decimal.Decimal, error) {
	if p.AnnualDemand.IsNegative() || p.OrderingCost.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: demanda anual y costo de pedido deben ser >= 0", domain.ErrInvalidLotSizingParameters)
	}
	if !p.HoldingCostRate.IsPositive() || !p.UnitCost.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: tasa de mantenimiento y costo unitario deben ser > 0", domain.ErrInvalidLotSizingParameters)
	}
	if net.IsZero() {
		return decimal.Zero, nil
	}

	two := decimal.NewFromInt(2)
	radicand := two.Mul(p.AnnualDemand).Mul(p.OrderingCost).
		DivRound(p.HoldingCostRate.Mul(p.UnitCost), 16)
	if f := radicand.InexactFloat64(); math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Zero, fmt.Errorf("%w: EOQ fuera de rango (2DS/HC = %s)", domain.ErrInvalidLotSizingParameters, radicand.StringFixed(0))
	}
	eoq := sqrtDecimal(radicand).Ceil()

	if eoq.GreaterThanOrEqual(net) {
		return eoq, nil
	}
	// El EOQ gobierna el lote económico, no el mínimo para cubrir un faltante identificado.
	return roundUpToLot(net, p.FallbackLot)
}

// sqrtDecimal raíz cuadrada por Newton-Raphson en decimal (x >= 0).
// x debe ser representable como float64; sizeEOQ rechaza lo que no lo es.
func sqrtDecimal(x decimal.Decimal) decimal.Decimal {
	if !x.IsPositive() {
		return decimal.Zero
	}
	f := math.Sqrt(x.InexactFloat64())
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return x
	}
	if r := decimal.NewFromFloat(math.Round(f)); r.Mul(r).Equal(x) {
		return r
	}
	guess := x
	if f > 0 {
		guess = decimal.NewFromFloat(f)
	}
	two := decimal.NewFromInt(2)
	eps := decimal.New(1, -12)
	for i := 0; i < 100; i++ {
		next := guess.Add(x.DivRound(guess, 16)).DivRound(two, 16)
		if next.Sub(guess).Abs().LessThan(eps) {
			return next
		}
		guess = next
	}
	return guess
}

// ParsePolicyKind valida un nombre de política recibido por configuración o API.
func ParsePolicyKind(s string) (PolicyKind, error) {
	switch PolicyKind(s) {
	case PolicyLotForLot, PolicyFixedLotSize, PolicyEOQ:
		return PolicyKind(s), nil
	}
	return "", fmt.Errorf("%w: política %q desconocida", domain.ErrInvalidLotSizingParameters, s)
}
