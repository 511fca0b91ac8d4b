package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// materialRow fila de materiales.csv:
// numero;descripcion;um;aprovisionamiento;tipo_mrp;lead_time;lote;stock_seguridad;punto_reorden;costo
type materialRow struct {
	number, description, uom, procurement, mrpType string
	leadDays                                       int
	lotSize, safetyStock, reorderPoint, cost       decimal.Decimal
}

// bomRow fila de bom.csv:
// padre;version;cantidad_base;vigente_desde;posicion;componente;cantidad;um;merma;fantasma
type bomRow struct {
	parent       string
	version      int
	baseQuantity decimal.Decimal
	validFrom    time.Time
	position     int
	component    string
	quantity     decimal.Decimal
	uom          string
	scrap        decimal.Decimal
	phantom      bool
}

// Equivalencias de los códigos del ERP anterior.
var (
	procurementCodes = map[string]string{"C": "PURCHASE", "F": "MANUFACTURE", "A": "BOTH"}
	mrpTypeCodes     = map[string]string{"PD": "MRP", "VB": "REORDER"}
)

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true
	return cr
}

// readRows devuelve las filas de datos sin la cabecera y sin líneas vacías.
func readRows(r io.Reader, fields int) ([][]string, error) {
	cr := newReader(r)
	cr.FieldsPerRecord = fields
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("archivo vacío")
	}
	return records[1:], nil
}

func parseMaterials(r io.Reader) ([]materialRow, error) {
	records, err := readRows(r, 10)
	if err != nil {
		return nil, err
	}
	out := make([]materialRow, 0, len(records))
	for i, rec := range records {
		line := i + 2
		m := materialRow{
			number:      strings.TrimSpace(rec[0]),
			description: strings.TrimSpace(rec[1]),
			uom:         strings.ToUpper(strings.TrimSpace(rec[2])),
		}
		var ok bool
		if m.procurement, ok = procurementCodes[strings.ToUpper(strings.TrimSpace(rec[3]))]; !ok {
			return nil, fmt.Errorf("línea %d: aprovisionamiento desconocido %q", line, rec[3])
		}
		if m.mrpType, ok = mrpTypeCodes[strings.ToUpper(strings.TrimSpace(rec[4]))]; !ok {
			return nil, fmt.Errorf("línea %d: tipo MRP desconocido %q", line, rec[4])
		}
		if m.leadDays, err = strconv.Atoi(strings.TrimSpace(rec[5])); err != nil || m.leadDays < 0 {
			return nil, fmt.Errorf("línea %d: lead time inválido %q", line, rec[5])
		}
		nums := []*decimal.Decimal{&m.lotSize, &m.safetyStock, &m.reorderPoint, &m.cost}
		for j, dst := range nums {
			if *dst, err = parseDecimal(rec[6+j]); err != nil {
				return nil, fmt.Errorf("línea %d, columna %d: %w", line, 7+j, err)
			}
		}
		if m.number == "" {
			return nil, fmt.Errorf("línea %d: número de material vacío", line)
		}
		if !m.lotSize.IsPositive() {
			m.lotSize = decimal.NewFromInt(1)
		}
		if m.uom == "" {
			m.uom = "EA"
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].number < out[j].number })
	return out, nil
}

func parseBOM(r io.Reader) ([]bomRow, error) {
	records, err := readRows(r, 10)
	if err != nil {
		return nil, err
	}
	out := make([]bomRow, 0, len(records))
	for i, rec := range records {
		line := i + 2
		b := bomRow{
			parent:    strings.TrimSpace(rec[0]),
			component: strings.TrimSpace(rec[5]),
			uom:       strings.ToUpper(strings.TrimSpace(rec[7])),
			phantom:   strings.EqualFold(strings.TrimSpace(rec[9]), "X"),
		}
		if b.version, err = strconv.Atoi(strings.TrimSpace(rec[1])); err != nil {
			return nil, fmt.Errorf("línea %d: versión inválida %q", line, rec[1])
		}
		if b.baseQuantity, err = parseDecimal(rec[2]); err != nil || !b.baseQuantity.IsPositive() {
			return nil, fmt.Errorf("línea %d: cantidad base inválida %q", line, rec[2])
		}
		if b.validFrom, err = time.Parse("02.01.2006", strings.TrimSpace(rec[3])); err != nil {
			return nil, fmt.Errorf("línea %d: fecha inválida %q (dd.mm.aaaa)", line, rec[3])
		}
		if b.position, err = strconv.Atoi(strings.TrimSpace(rec[4])); err != nil {
			return nil, fmt.Errorf("línea %d: posición inválida %q", line, rec[4])
		}
		if b.quantity, err = parseDecimal(rec[6]); err != nil || !b.quantity.IsPositive() {
			return nil, fmt.Errorf("línea %d: cantidad inválida %q", line, rec[6])
		}
		if b.scrap, err = parseDecimal(rec[8]); err != nil || b.scrap.IsNegative() || b.scrap.GreaterThan(decimal.NewFromInt(100)) {
			return nil, fmt.Errorf("línea %d: merma fuera de 0-100 %q", line, rec[8])
		}
		if b.parent == "" || b.component == "" {
			return nil, fmt.Errorf("línea %d: padre y componente son requeridos", line)
		}
		if b.uom == "" {
			b.uom = "EA"
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].parent != out[j].parent {
			return out[i].parent < out[j].parent
		}
		if out[i].version != out[j].version {
			return out[i].version < out[j].version
		}
		return out[i].position < out[j].position
	})
	return out, nil
}

// parseDecimal acepta coma o punto decimal y separador de miles '.' cuando hay coma.
// Vacío = 0.
func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}

func writeSQL(w io.Writer, orgID, plantID string, materials []materialRow, boms []bomRow) error {
	var b strings.Builder
	b.WriteString("-- Maestros MRP importados del ERP anterior\n")
	b.WriteString("-- Generado por cmd/seed_mrp\n\n")

	if len(materials) > 0 {
		b.WriteString("-- 1. Materiales\n")
		b.WriteString("INSERT INTO materials (organization_id, plant_id, material_number, description, unit_of_measure,\n")
		b.WriteString("    procurement_type, mrp_type, lead_time_days, lot_size, safety_stock, reorder_point, standard_cost) VALUES\n")
		for i, m := range materials {
			sep := ","
			if i == len(materials)-1 {
				sep = ""
			}
			fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s', '%s', '%s', '%s', %d, %s, %s, %s, %s)%s\n",
				escapeSQL(orgID), escapeSQL(plantID), escapeSQL(m.number), escapeSQL(m.description), escapeSQL(m.uom),
				m.procurement, m.mrpType, m.leadDays,
				m.lotSize.String(), m.safetyStock.String(), m.reorderPoint.String(), m.cost.String(), sep)
		}
		b.WriteString("ON CONFLICT (organization_id, plant_id, material_number) DO UPDATE SET\n")
		b.WriteString("    description = EXCLUDED.description, procurement_type = EXCLUDED.procurement_type,\n")
		b.WriteString("    mrp_type = EXCLUDED.mrp_type, lead_time_days = EXCLUDED.lead_time_days,\n")
		b.WriteString("    lot_size = EXCLUDED.lot_size, updated_at = now();\n\n")
	}

	// Cabeceras únicas por (padre, versión) en el orden ya ordenado de las líneas.
	type headerKey struct {
		parent  string
		version int
	}
	seen := make(map[headerKey]bool)
	if len(boms) > 0 {
		b.WriteString("-- 2. Versiones de BOM\n")
	}
	for _, r := range boms {
		k := headerKey{r.parent, r.version}
		if seen[k] {
			continue
		}
		seen[k] = true
		fmt.Fprintf(&b, "INSERT INTO bom_headers (material_id, version, base_quantity, valid_from)\n")
		fmt.Fprintf(&b, "SELECT id, %d, %s, '%s' FROM materials WHERE organization_id = '%s' AND plant_id = '%s' AND material_number = '%s'\n",
			r.version, r.baseQuantity.String(), r.validFrom.Format("2006-01-02"),
			escapeSQL(orgID), escapeSQL(plantID), escapeSQL(r.parent))
		b.WriteString("ON CONFLICT (material_id, version) DO NOTHING;\n")
	}

	if len(boms) > 0 {
		b.WriteString("\n-- 3. Líneas de BOM\n")
	}
	for _, r := range boms {
		fmt.Fprintf(&b, "INSERT INTO bom_lines (bom_header_id, position, component_material_id, quantity, unit_of_measure, scrap_factor, is_phantom)\n")
		fmt.Fprintf(&b, "SELECT h.id, %d, c.id, %s, '%s', %s, %t\n",
			r.position, r.quantity.String(), escapeSQL(r.uom), r.scrap.String(), r.phantom)
		b.WriteString("FROM bom_headers h\n")
		fmt.Fprintf(&b, "JOIN materials p ON p.id = h.material_id AND p.organization_id = '%s' AND p.plant_id = '%s' AND p.material_number = '%s'\n",
			escapeSQL(orgID), escapeSQL(plantID), escapeSQL(r.parent))
		fmt.Fprintf(&b, "JOIN materials c ON c.organization_id = p.organization_id AND c.plant_id = p.plant_id AND c.material_number = '%s'\n",
			escapeSQL(r.component))
		fmt.Fprintf(&b, "WHERE h.version = %d\n", r.version)
		b.WriteString("ON CONFLICT (bom_header_id, position) DO UPDATE SET quantity = EXCLUDED.quantity, scrap_factor = EXCLUDED.scrap_factor;\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
