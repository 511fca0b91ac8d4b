// Package memory implementa los repositorios del motor MRP en memoria. Lo usan las pruebas y
// las simulaciones what-if que no deben tocar la BD.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Store datos compartidos por todos los repositorios en memoria.
type Store struct {
	mu sync.RWMutex

	materials     map[string]*entity.Material
	bomHeaders    map[string][]*entity.BOMHeader // por material
	bomLines      map[string][]*entity.BOMLine   // por cabecera
	stock         map[string]decimal.Decimal
	workOrders    map[string]*entity.WorkOrder
	woMaterials   map[string][]*entity.WorkOrderMaterial
	purchaseLines []entity.ScheduledReceipt
	plannedOrders map[string]*entity.PlannedOrder
	runs          map[string]*entity.MRPRun
	users         map[string]*entity.User // por email en minúsculas

	readErr  error
	writeErr error
	onRead   func(materialID string)
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		materials:     make(map[string]*entity.Material),
		bomHeaders:    make(map[string][]*entity.BOMHeader),
		bomLines:      make(map[string][]*entity.BOMLine),
		stock:         make(map[string]decimal.Decimal),
		workOrders:    make(map[string]*entity.WorkOrder),
		woMaterials:   make(map[string][]*entity.WorkOrderMaterial),
		plannedOrders: make(map[string]*entity.PlannedOrder),
		runs:          make(map[string]*entity.MRPRun),
		users:         make(map[string]*entity.User),
	}
}

// ── Carga de datos ───────────────────────────────────────────────────────────

// AddMaterial registra un material.
func (s *Store) AddMaterial(m *entity.Material) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *m
	s.materials[m.ID] = &cp
}

// AddBOM registra una versión de BOM con sus líneas.
func (s *Store) AddBOM(h *entity.BOMHeader, lines ...*entity.BOMLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hc := *h
	s.bomHeaders[h.MaterialID] = append(s.bomHeaders[h.MaterialID], &hc)
	for _, l := range lines {
		lc := *l
		lc.BOMHeaderID = h.ID
		s.bomLines[h.ID] = append(s.bomLines[h.ID], &lc)
	}
	sort.SliceStable(s.bomLines[h.ID], func(i, j int) bool {
		return s.bomLines[h.ID][i].Position < s.bomLines[h.ID][j].Position
	})
}

// SetStock fija la cantidad disponible de un material.
func (s *Store) SetStock(materialID string, qty decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock[materialID] = qty
}

// AddWorkOrder registra una orden de trabajo con sus consumos declarados.
func (s *Store) AddWorkOrder(wo *entity.WorkOrder, materials ...*entity.WorkOrderMaterial) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *wo
	s.workOrders[wo.ID] = &cp
	for _, m := range materials {
		mc := *m
		mc.WorkOrderID = wo.ID
		s.woMaterials[wo.ID] = append(s.woMaterials[wo.ID], &mc)
	}
	sort.SliceStable(s.woMaterials[wo.ID], func(i, j int) bool {
		return s.woMaterials[wo.ID][i].MaterialID < s.woMaterials[wo.ID][j].MaterialID
	})
}

// AddPurchaseReceipt registra una línea de orden de compra abierta.
func (s *Store) AddPurchaseReceipt(r entity.ScheduledReceipt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.Kind = entity.ReceiptKindPurchaseOrder
	s.purchaseLines = append(s.purchaseLines, r)
}

// AddPlannedOrder registra una orden planificada existente (p. ej. FIRMED de otra corrida).
func (s *Store) AddPlannedOrder(o *entity.PlannedOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *o
	s.plannedOrders[o.ID] = &cp
}

// ── Fallos simulados ─────────────────────────────────────────────────────────

// FailReads hace que toda lectura de stock y suministro devuelva err (nil lo desactiva).
func (s *Store) FailReads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readErr = err
}

// FailWrites hace que toda escritura de órdenes planificadas devuelva err.
func (s *Store) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr = err
}

// OnStockRead registra un hook invocado antes de cada lectura de stock.
func (s *Store) OnStockRead(fn func(materialID string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRead = fn
}

// AllPlannedOrders devuelve copia de todas las órdenes planificadas, por fecha y material.
func (s *Store) AllPlannedOrders() []*entity.PlannedOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.PlannedOrder, 0, len(s.plannedOrders))
	for _, o := range s.plannedOrders {
		cp := *o
		out = append(out, &cp)
	}
	sortPlannedOrders(out)
	return out
}

func sortPlannedOrders(orders []*entity.PlannedOrder) {
	sort.Slice(orders, func(i, j int) bool {
		a, b := orders[i], orders[j]
		if !a.NeedDate.Equal(b.NeedDate) {
			return a.NeedDate.Before(b.NeedDate)
		}
		if a.MaterialID != b.MaterialID {
			return a.MaterialID < b.MaterialID
		}
		return a.ID < b.ID
	})
}

func inWindow(t, from, to time.Time) bool {
	day := entity.TruncateDay(t)
	return !day.Before(entity.TruncateDay(from)) && !day.After(entity.TruncateDay(to))
}
