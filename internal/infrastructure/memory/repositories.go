package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.MaterialRepository     = (*MaterialRepo)(nil)
	_ repository.BOMRepository          = (*BOMRepo)(nil)
	_ repository.InventoryRepository    = (*InventoryRepo)(nil)
	_ repository.WorkOrderRepository    = (*WorkOrderRepo)(nil)
	_ repository.SupplyRepository       = (*SupplyRepo)(nil)
	_ repository.PlannedOrderRepository = (*PlannedOrderRepo)(nil)
	_ repository.MRPRunRepository       = (*MRPRunRepo)(nil)
	_ repository.UserRepository         = (*UserRepo)(nil)
)

// ── Materiales ───────────────────────────────────────────────────────────────

// MaterialRepo maestro de materiales en memoria.
type MaterialRepo struct{ s *Store }

// Materials devuelve el repositorio de materiales del store.
func (s *Store) Materials() *MaterialRepo { return &MaterialRepo{s: s} }

func (r *MaterialRepo) GetByID(_ context.Context, id string) (*entity.Material, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.materials[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *MaterialRepo) ListForMRP(_ context.Context, organizationID, plantID string) ([]*entity.Material, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Material
	for _, m := range r.s.materials {
		if m.OrganizationID == organizationID && m.PlantID == plantID && m.MRPType == entity.MRPTypeMRP {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MaterialNumber < out[j].MaterialNumber })
	return out, nil
}

// ── BOM ──────────────────────────────────────────────────────────────────────

// BOMRepo listas de materiales en memoria.
type BOMRepo struct{ s *Store }

// BOMs devuelve el repositorio de BOM del store.
func (s *Store) BOMs() *BOMRepo { return &BOMRepo{s: s} }

func (r *BOMRepo) GetActiveHeader(_ context.Context, materialID string, at time.Time) (*entity.BOMHeader, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var best *entity.BOMHeader
	for _, h := range r.s.bomHeaders[materialID] {
		if !h.IsValidAt(at) {
			continue
		}
		if best == nil || h.ValidFrom.After(best.ValidFrom) ||
			(h.ValidFrom.Equal(best.ValidFrom) && h.Version > best.Version) {
			best = h
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (r *BOMRepo) ListLines(_ context.Context, headerID string) ([]*entity.BOMLine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	lines := r.s.bomLines[headerID]
	out := make([]*entity.BOMLine, 0, len(lines))
	for _, l := range lines {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

// ── Inventario ───────────────────────────────────────────────────────────────

// InventoryRepo stock disponible en memoria.
type InventoryRepo struct{ s *Store }

// Inventory devuelve el repositorio de inventario del store.
func (s *Store) Inventory() *InventoryRepo { return &InventoryRepo{s: s} }

func (r *InventoryRepo) GetOnHand(_ context.Context, materialID string) (*entity.StockSnapshot, error) {
	r.s.mu.RLock()
	hook := r.s.onRead
	r.s.mu.RUnlock()
	if hook != nil {
		hook(materialID)
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.readErr != nil {
		return nil, r.s.readErr
	}
	qty, ok := r.s.stock[materialID]
	if !ok {
		qty = decimal.Zero
	}
	return &entity.StockSnapshot{MaterialID: materialID, Quantity: qty, ReadAt: time.Now()}, nil
}

// ── Órdenes de trabajo ───────────────────────────────────────────────────────

// WorkOrderRepo órdenes de trabajo en memoria.
type WorkOrderRepo struct{ s *Store }

// WorkOrders devuelve el repositorio de órdenes de trabajo del store.
func (s *Store) WorkOrders() *WorkOrderRepo { return &WorkOrderRepo{s: s} }

func (r *WorkOrderRepo) GetByID(_ context.Context, id string) (*entity.WorkOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	wo, ok := r.s.workOrders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *wo
	return &cp, nil
}

func (r *WorkOrderRepo) ListOpen(_ context.Context, organizationID, plantID string, until time.Time) ([]*entity.WorkOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	limit := entity.TruncateDay(until)
	var out []*entity.WorkOrder
	for _, wo := range r.s.workOrders {
		if wo.OrganizationID != organizationID || wo.PlantID != plantID || !wo.IsOpen() {
			continue
		}
		if entity.TruncateDay(wo.EndDatePlanned).After(limit) {
			continue
		}
		cp := *wo
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *WorkOrderRepo) ListMaterials(_ context.Context, workOrderID string) ([]*entity.WorkOrderMaterial, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	mats := r.s.woMaterials[workOrderID]
	out := make([]*entity.WorkOrderMaterial, 0, len(mats))
	for _, m := range mats {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

// ── Suministro ───────────────────────────────────────────────────────────────

// SupplyRepo recepciones programadas: órdenes planificadas FIRMED y líneas de compra abiertas.
type SupplyRepo struct{ s *Store }

// Supply devuelve el repositorio de suministro del store.
func (s *Store) Supply() *SupplyRepo { return &SupplyRepo{s: s} }

func (r *SupplyRepo) ListScheduledReceipts(_ context.Context, materialID string, from, to time.Time) ([]entity.ScheduledReceipt, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.readErr != nil {
		return nil, r.s.readErr
	}
	var out []entity.ScheduledReceipt
	for _, o := range r.s.plannedOrders {
		if o.MaterialID != materialID || o.Status != entity.PlannedOrderStatusFirmed || !inWindow(o.NeedDate, from, to) {
			continue
		}
		out = append(out, entity.ScheduledReceipt{
			MaterialID:  o.MaterialID,
			Quantity:    o.PlannedQuantity,
			ReceiptDate: o.NeedDate,
			SourceID:    o.ID,
			Kind:        entity.ReceiptKindPlannedOrder,
		})
	}
	for _, p := range r.s.purchaseLines {
		if p.MaterialID == materialID && inWindow(p.ReceiptDate, from, to) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ReceiptDate.Before(out[j].ReceiptDate) })
	return out, nil
}

// ── Órdenes planificadas ─────────────────────────────────────────────────────

// PlannedOrderRepo órdenes planificadas en memoria.
type PlannedOrderRepo struct{ s *Store }

// PlannedOrders devuelve el repositorio de órdenes planificadas del store.
func (s *Store) PlannedOrders() *PlannedOrderRepo { return &PlannedOrderRepo{s: s} }

func (r *PlannedOrderRepo) CreateBatch(_ context.Context, orders []*entity.PlannedOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.writeErr != nil {
		return r.s.writeErr
	}
	for _, o := range orders {
		if _, ok := r.s.plannedOrders[o.ID]; ok {
			return domain.ErrConflict
		}
	}
	for _, o := range orders {
		cp := *o
		r.s.plannedOrders[o.ID] = &cp
	}
	return nil
}

func (r *PlannedOrderRepo) GetByID(_ context.Context, id string) (*entity.PlannedOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.plannedOrders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *PlannedOrderRepo) ListByRun(_ context.Context, runID string) ([]*entity.PlannedOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*entity.PlannedOrder{}
	for _, o := range r.s.plannedOrders {
		if o.MRPRunID == runID {
			cp := *o
			out = append(out, &cp)
		}
	}
	sortPlannedOrders(out)
	return out, nil
}

func (r *PlannedOrderRepo) UpdateStatus(_ context.Context, order *entity.PlannedOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.writeErr != nil {
		return r.s.writeErr
	}
	cur, ok := r.s.plannedOrders[order.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Status = order.Status
	cur.ConvertedToOrderID = order.ConvertedToOrderID
	cur.UpdatedAt = order.UpdatedAt
	return nil
}

// ── Corridas ─────────────────────────────────────────────────────────────────

// MRPRunRepo corridas MRP en memoria.
type MRPRunRepo struct{ s *Store }

// Runs devuelve el repositorio de corridas del store.
func (s *Store) Runs() *MRPRunRepo { return &MRPRunRepo{s: s} }

func (r *MRPRunRepo) Create(_ context.Context, run *entity.MRPRun) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.runs[run.ID]; ok {
		return domain.ErrConflict
	}
	r.s.runs[run.ID] = copyRun(run)
	return nil
}

func (r *MRPRunRepo) Finish(_ context.Context, run *entity.MRPRun) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.runs[run.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Status != entity.MRPRunStatusRunning {
		return domain.ErrConflict
	}
	r.s.runs[run.ID] = copyRun(run)
	return nil
}

func (r *MRPRunRepo) GetByID(_ context.Context, id string) (*entity.MRPRun, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	run, ok := r.s.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyRun(run), nil
}

func (r *MRPRunRepo) ListByPlant(_ context.Context, organizationID, plantID string, limit, offset int) ([]*entity.MRPRun, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []*entity.MRPRun
	for _, run := range r.s.runs {
		if run.OrganizationID == organizationID && (plantID == "" || run.PlantID == plantID) {
			all = append(all, copyRun(run))
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].RunDate.Equal(all[j].RunDate) {
			return all[i].RunDate.After(all[j].RunDate)
		}
		return all[i].ID < all[j].ID
	})
	if offset >= len(all) {
		return []*entity.MRPRun{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func copyRun(run *entity.MRPRun) *entity.MRPRun {
	cp := *run
	cp.SkippedMaterials = append([]entity.SkippedMaterial(nil), run.SkippedMaterials...)
	if run.CompletedAt != nil {
		t := *run.CompletedAt
		cp.CompletedAt = &t
	}
	return &cp
}

// ── Usuarios ─────────────────────────────────────────────────────────────────

// UserRepo usuarios en memoria.
type UserRepo struct{ s *Store }

// Users devuelve el repositorio de usuarios del store.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := strings.ToLower(user.Email)
	if _, ok := r.s.users[key]; ok {
		return domain.ErrConflict
	}
	cp := *user
	r.s.users[key] = &cp
	return nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}
