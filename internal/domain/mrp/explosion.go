package mrp

import (
	"github.com/shopspring/decimal"
)

// QuantityScale decimales con que se redondean las cantidades explotadas.
const QuantityScale int32 = 6

var hundred = decimal.NewFromInt(100)

// ExplodedQuantity = parentQty × (lineQty / baseQty) × (1 + scrap/100).
// Se multiplica antes de dividir para no acumular redondeo entre niveles.
func ExplodedQuantity(parentQty, lineQty, baseQty, scrapPct decimal.Decimal) decimal.Decimal {
	num := parentQty.Mul(lineQty).Mul(hundred.Add(scrapPct))
	den := baseQty.Mul(hundred)
	return num.DivRound(den, QuantityScale)
}
