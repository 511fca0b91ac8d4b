package mrp

import (
	"sort"
	"time"

	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ShortageBucket déficit en una fecha de necesidad.
// Deficit es el faltante que aparece en esa fecha; CumulativeDeficit el acumulado al cierre del día.
type ShortageBucket struct {
	Date              time.Time
	Demand            decimal.Decimal
	Deficit           decimal.Decimal
	CumulativeDeficit decimal.Decimal
}

// NetProfile resultado del neteo de un material en una ventana.
type NetProfile struct {
	GrossRequirements decimal.Decimal
	ScheduledReceipts decimal.Decimal
	OnHand            decimal.Decimal
	NetRequirements   decimal.Decimal
	ShortageDates     []time.Time
	Shortages         []ShortageBucket
	NegativeOnHand    bool // el stock leído era negativo y se trató como cero
}

// ComputeNetRequirements netea la demanda bruta contra el stock y las recepciones programadas.
//
//	net = max(0, bruto - disponible - recepciones)
//
// Con net > 0 recorre el balance proyectado por fecha (disponible + recepciones de la ventana
// menos la demanda acumulada) y registra cada fecha con balance negativo. El mayor déficit
// acumulado coincide con net. Función pura: no lee ni modifica inventario.
func ComputeNetRequirements(onHand decimal.Decimal, receipts []entity.ScheduledReceipt, demand []entity.DemandLine) NetProfile {
	p := NetProfile{OnHand: onHand}
	if onHand.IsNegative() {
		p.NegativeOnHand = true
		p.OnHand = decimal.Zero
	}

	byDate := make(map[time.Time]decimal.Decimal)
	for _, d := range demand {
		if !d.Quantity.IsPositive() {
			continue
		}
		day := entity.TruncateDay(d.NeedDate)
		byDate[day] = byDate[day].Add(d.Quantity)
		p.GrossRequirements = p.GrossRequirements.Add(d.Quantity)
	}
	for _, r := range receipts {
		if r.Quantity.IsPositive() {
			p.ScheduledReceipts = p.ScheduledReceipts.Add(r.Quantity)
		}
	}

	net := p.GrossRequirements.Sub(p.OnHand).Sub(p.ScheduledReceipts)
	if !net.IsPositive() {
		p.NetRequirements = decimal.Zero
		return p
	}
	p.NetRequirements = net

	dates := make([]time.Time, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	balance := p.OnHand.Add(p.ScheduledReceipts)
	prevDeficit := decimal.Zero
	for _, day := range dates {
		qty := byDate[day]
		balance = balance.Sub(qty)
		if !balance.IsNegative() {
			continue
		}
		cumulative := balance.Neg()
		p.ShortageDates = append(p.ShortageDates, day)
		p.Shortages = append(p.Shortages, ShortageBucket{
			Date:              day,
			Demand:            qty,
			Deficit:           cumulative.Sub(prevDeficit),
			CumulativeDeficit: cumulative,
		})
		prevDeficit = cumulative
	}
	return p
}
