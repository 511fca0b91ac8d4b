// Package pdf genera el reporte PDF de una corrida MRP con Maroto v2.
//
// Layout de la página A4 (horizontal):
//
//	┌──────────────────────────────────────────────────────────────────┐
//	│  HEADER: Código de corrida + estado │ Planta + horizonte + fecha │
//	│  ──────────────────────────────────────────────────────────────  │
//	│  RESUMEN: procesados / omitidos / órdenes / faltante total       │
//	│  ──────────────────────────────────────────────────────────────  │
//	│  TABLA: Material | Tipo | Necesidad | Lanzamiento | Faltante |   │
//	│         Cantidad | Política                                      │
//	│  ──────────────────────────────────────────────────────────────  │
//	│  OMITIDOS: material + motivo                                     │
//	│  FOOTER: código de barras con el código de corrida               │
//	└──────────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/mrp-api/internal/application/planning"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
)

var _ planning.ReportGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

const dateLayout = "02/01/2006"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa planning.ReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateRunReport genera el PDF de la corrida y devuelve sus bytes.
// materials resuelve el número y la descripción de cada material; si falta, se usa el id.
func (g *MarotoPDFGenerator) GenerateRunReport(
	run *entity.MRPRun,
	orders []*entity.PlannedOrder,
	materials map[string]*entity.Material,
) ([]byte, error) {
	if run == nil {
		return nil, fmt.Errorf("pdf: corrida requerida")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Corrida MRP "+run.RunCode, true).
		WithAuthor(nonEmpty(run.CreatedBy, "mrp-api"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(run))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(run))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(orders) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("La corrida no generó órdenes planificadas.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}
	for _, r := range tableDetailRows(orders, materials) {
		m.AddRows(r)
	}

	if len(run.SkippedMaterials) > 0 {
		m.AddRows(line.NewRow(3))
		for _, r := range skippedRows(run.SkippedMaterials, materials) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(run))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: código y estado (izq), planta y horizonte (der).
func headerRow(run *entity.MRPRun) core.Row {
	statusColor := colorPrimary
	if run.Status == entity.MRPRunStatusFailed {
		statusColor = colorRed
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("CORRIDA MRP "+run.RunCode, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Estado: "+run.Status, props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 9, Color: statusColor,
			}),
		),
		col.New(5).Add(
			text.New("Planta: "+run.PlantID, props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Top: 1,
			}),
			text.New(fmt.Sprintf("Horizonte: %s - %s",
				run.PlanningHorizonStart.Format(dateLayout),
				run.PlanningHorizonEnd.Format(dateLayout),
			), props.Text{Size: 9, Align: align.Right, Top: 7}),
			text.New("Ejecutada: "+run.RunDate.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func summaryRow(run *entity.MRPRun) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 5}),
		)
	}
	r := row.New(14).Add(
		cell("Materiales procesados", fmt.Sprint(run.MaterialsProcessed)),
		cell("Materiales omitidos", fmt.Sprint(run.MaterialsSkipped)),
		cell("Órdenes planificadas", fmt.Sprint(run.PlannedOrdersCreated)),
		cell("Faltante total", run.TotalShortageQty.StringFixed(2)),
	)
	if run.ErrorMessage == "" {
		return r
	}
	return row.New(20).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Procesados %d | Omitidos %d | Órdenes %d | Faltante %s",
				run.MaterialsProcessed, run.MaterialsSkipped, run.PlannedOrdersCreated,
				run.TotalShortageQty.StringFixed(2),
			), props.Text{Style: fontstyle.Bold, Size: 9, Top: 1}),
			text.New("Error: "+run.ErrorMessage, props.Text{Size: 8, Top: 8, Color: colorRed}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Material", 3, align.Left),
		h("Tipo", 2, align.Center),
		h("Necesidad", 1, align.Center),
		h("Lanzamiento", 2, align.Center),
		h("Faltante", 1, align.Right),
		h("Cantidad", 1, align.Right),
		h("Política", 2, align.Center),
	)
}

// tableDetailRows: una fila por orden planificada, en el orden recibido.
func tableDetailRows(orders []*entity.PlannedOrder, materials map[string]*entity.Material) []core.Row {
	result := make([]core.Row, 0, len(orders))
	for _, o := range orders {
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(
				materialLabel(o.MaterialID, materials),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(o.OrderType, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(o.NeedDate.Format(dateLayout), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(o.OrderDate.Format(dateLayout), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(
				o.ShortageQuantity.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				o.PlannedQuantity.StringFixed(2),
				props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(o.LotSizingPolicy, props.Text{Size: 8, Align: align.Center, Top: 1})),
		))
	}
	return result
}

func skippedRows(skipped []entity.SkippedMaterial, materials map[string]*entity.Material) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("MATERIALES OMITIDOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorRed, Top: 1,
			}),
		)),
	}
	for _, s := range skipped {
		rows = append(rows, row.New(5).Add(
			col.New(3).Add(text.New(materialLabel(s.MaterialID, materials), props.Text{Size: 7, Left: 1})),
			col.New(3).Add(text.New(s.Reason, props.Text{Style: fontstyle.Bold, Size: 7})),
			col.New(6).Add(text.New(s.Message, props.Text{Size: 7, Color: colorGray})),
		))
	}
	return rows
}

// footerRow: código de barras con el código de corrida para trazabilidad en planta.
func footerRow(run *entity.MRPRun) core.Row {
	return row.New(18).Add(
		col.New(4).Add(code.NewBar(run.RunCode, props.Barcode{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New("Las órdenes planificadas son recomendaciones: compras y producción "+
				"las firman o convierten en órdenes reales.", props.Text{
				Size: 7, Top: 4, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func materialLabel(id string, materials map[string]*entity.Material) string {
	m, ok := materials[id]
	if !ok || m == nil {
		return id
	}
	if m.Description == "" {
		return m.MaterialNumber
	}
	return m.MaterialNumber + " - " + truncate(m.Description, 40)
}

// truncate corta s a n runas.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
