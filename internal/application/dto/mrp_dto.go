package dto

import (
	"time"

	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/mrp"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// RunMRPRequest body de POST /api/mrp/runs.
// lot_sizing_policy vacío usa FIXED_LOT_SIZE con el lote de cada material.
// Con EOQ, annual_demand, ordering_cost y holding_cost_rate aplican a todos los materiales.
type RunMRPRequest struct {
	PlantID         string          `json:"plant_id"`
	HorizonDays     int             `json:"horizon_days"`
	LotSizingPolicy string          `json:"lot_sizing_policy"`
	AnnualDemand    decimal.Decimal `json:"annual_demand"`
	OrderingCost    decimal.Decimal `json:"ordering_cost"`
	HoldingCostRate decimal.Decimal `json:"holding_cost_rate"`
}

// SkippedMaterialResponse material omitido en la corrida.
type SkippedMaterialResponse struct {
	MaterialID string `json:"material_id"`
	Reason     string `json:"reason"`
	Message    string `json:"message"`
}

// MRPRunResponse corrida MRP.
type MRPRunResponse struct {
	ID                   string                    `json:"id"`
	RunCode              string                    `json:"run_code"`
	OrganizationID       string                    `json:"organization_id"`
	PlantID              string                    `json:"plant_id"`
	Status               string                    `json:"status"`
	RunDate              time.Time                 `json:"run_date"`
	PlanningHorizonStart string                    `json:"planning_horizon_start"`
	PlanningHorizonEnd   string                    `json:"planning_horizon_end"`
	MaterialsProcessed   int                       `json:"materials_processed"`
	MaterialsSkipped     int                       `json:"materials_skipped"`
	PlannedOrdersCreated int                       `json:"planned_orders_created"`
	TotalShortageQty     decimal.Decimal           `json:"total_shortage_qty"`
	SkippedMaterials     []SkippedMaterialResponse `json:"skipped_materials"`
	ErrorMessage         string                    `json:"error_message,omitempty"`
	CompletedAt          *time.Time                `json:"completed_at,omitempty"`
	CreatedBy            string                    `json:"created_by,omitempty"`
}

// MRPRunListResponse listado paginado de corridas.
type MRPRunListResponse struct {
	Items []MRPRunResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// PlannedOrderResponse orden planificada.
type PlannedOrderResponse struct {
	ID                 string          `json:"id"`
	MRPRunID           string          `json:"mrp_run_id,omitempty"`
	MaterialID         string          `json:"material_id"`
	OrderType          string          `json:"order_type"`
	PlannedQuantity    decimal.Decimal `json:"planned_quantity"`
	ShortageQuantity   decimal.Decimal `json:"shortage_quantity"`
	NeedDate           string          `json:"need_date"`
	OrderDate          string          `json:"order_date"`
	LotSizingPolicy    string          `json:"lot_sizing_policy"`
	Status             string          `json:"status"`
	Source             string          `json:"source"`
	ConvertedToOrderID *string         `json:"converted_to_order_id,omitempty"`
}

// ConvertPlannedOrderRequest body de POST /api/mrp/planned-orders/:id/convert.
type ConvertPlannedOrderRequest struct {
	OrderID string `json:"order_id"`
}

// ShortageResponse faltante en una fecha.
type ShortageResponse struct {
	Date              string          `json:"date"`
	Demand            decimal.Decimal `json:"demand"`
	Deficit           decimal.Decimal `json:"deficit"`
	CumulativeDeficit decimal.Decimal `json:"cumulative_deficit"`
}

// NetRequirementsResponse resultado del neteo de diagnóstico.
type NetRequirementsResponse struct {
	MaterialID        string             `json:"material_id"`
	WindowStart       string             `json:"window_start"`
	WindowEnd         string             `json:"window_end"`
	GrossRequirements decimal.Decimal    `json:"gross_requirements"`
	ScheduledReceipts decimal.Decimal    `json:"scheduled_receipts"`
	OnHand            decimal.Decimal    `json:"on_hand"`
	NetRequirements   decimal.Decimal    `json:"net_requirements"`
	ShortageDates     []string           `json:"shortage_dates"`
	Shortages         []ShortageResponse `json:"shortages"`
}

// ComponentRequirementResponse componente hoja de una explosión.
type ComponentRequirementResponse struct {
	MaterialID        string          `json:"material_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	UnitOfMeasure     string          `json:"unit_of_measure"`
	ParentWorkOrderID string          `json:"parent_work_order_id"`
}

// ToMRPRunResponse convierte la entidad a DTO.
func ToMRPRunResponse(r *entity.MRPRun) MRPRunResponse {
	skipped := make([]SkippedMaterialResponse, 0, len(r.SkippedMaterials))
	for _, s := range r.SkippedMaterials {
		skipped = append(skipped, SkippedMaterialResponse{MaterialID: s.MaterialID, Reason: s.Reason, Message: s.Message})
	}
	return MRPRunResponse{
		ID:                   r.ID,
		RunCode:              r.RunCode,
		OrganizationID:       r.OrganizationID,
		PlantID:              r.PlantID,
		Status:               r.Status,
		RunDate:              r.RunDate,
		PlanningHorizonStart: r.PlanningHorizonStart.Format(dateLayout),
		PlanningHorizonEnd:   r.PlanningHorizonEnd.Format(dateLayout),
		MaterialsProcessed:   r.MaterialsProcessed,
		MaterialsSkipped:     r.MaterialsSkipped,
		PlannedOrdersCreated: r.PlannedOrdersCreated,
		TotalShortageQty:     r.TotalShortageQty,
		SkippedMaterials:     skipped,
		ErrorMessage:         r.ErrorMessage,
		CompletedAt:          r.CompletedAt,
		CreatedBy:            r.CreatedBy,
	}
}

// ToPlannedOrderResponse convierte la entidad a DTO.
func ToPlannedOrderResponse(o *entity.PlannedOrder) PlannedOrderResponse {
	return PlannedOrderResponse{
		ID:                 o.ID,
		MRPRunID:           o.MRPRunID,
		MaterialID:         o.MaterialID,
		OrderType:          o.OrderType,
		PlannedQuantity:    o.PlannedQuantity,
		ShortageQuantity:   o.ShortageQuantity,
		NeedDate:           o.NeedDate.Format(dateLayout),
		OrderDate:          o.OrderDate.Format(dateLayout),
		LotSizingPolicy:    o.LotSizingPolicy,
		Status:             o.Status,
		Source:             o.Source,
		ConvertedToOrderID: o.ConvertedToOrderID,
	}
}

// ToPlannedOrderResponses convierte una lista; nunca devuelve nil.
func ToPlannedOrderResponses(orders []*entity.PlannedOrder) []PlannedOrderResponse {
	out := make([]PlannedOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToPlannedOrderResponse(o))
	}
	return out
}

// ToComponentRequirementResponses convierte la explosión de BOM.
func ToComponentRequirementResponses(reqs []entity.ComponentRequirement) []ComponentRequirementResponse {
	out := make([]ComponentRequirementResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, ComponentRequirementResponse{
			MaterialID:        r.MaterialID,
			Quantity:          r.Quantity,
			UnitOfMeasure:     r.UnitOfMeasure,
			ParentWorkOrderID: r.ParentWorkOrderID,
		})
	}
	return out
}

// ToNetRequirementsResponse convierte el perfil neteado de un material.
func ToNetRequirementsResponse(materialID string, from, to time.Time, p mrp.NetProfile) NetRequirementsResponse {
	dates := make([]string, 0, len(p.ShortageDates))
	for _, d := range p.ShortageDates {
		dates = append(dates, d.Format(dateLayout))
	}
	shortages := make([]ShortageResponse, 0, len(p.Shortages))
	for _, s := range p.Shortages {
		shortages = append(shortages, ShortageResponse{
			Date:              s.Date.Format(dateLayout),
			Demand:            s.Demand,
			Deficit:           s.Deficit,
			CumulativeDeficit: s.CumulativeDeficit,
		})
	}
	return NetRequirementsResponse{
		MaterialID:        materialID,
		WindowStart:       from.Format(dateLayout),
		WindowEnd:         to.Format(dateLayout),
		GrossRequirements: p.GrossRequirements,
		ScheduledReceipts: p.ScheduledReceipts,
		OnHand:            p.OnHand,
		NetRequirements:   p.NetRequirements,
		ShortageDates:     dates,
		Shortages:         shortages,
	}
}

// FormatDate fecha de calendario en formato ISO (YYYY-MM-DD).
func FormatDate(t time.Time) string { return t.Format(dateLayout) }
