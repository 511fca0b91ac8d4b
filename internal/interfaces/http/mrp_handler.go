package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/mrp-api/internal/application/dto"
	"github.com/jhoicas/mrp-api/internal/application/planning"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/mrp"
)

// MRPHandler dispara corridas MRP y expone sus resultados.
type MRPHandler struct {
	orchestrator *planning.Orchestrator
	query        *planning.QueryUseCase
	defaults     planning.RunOptions
}

// NewMRPHandler construye el handler. defaults son las opciones de corrida configuradas
// (horizonte, workers, timeout); horizon_days del body las sustituye por petición.
func NewMRPHandler(orchestrator *planning.Orchestrator, query *planning.QueryUseCase, defaults planning.RunOptions) *MRPHandler {
	return &MRPHandler{orchestrator: orchestrator, query: query, defaults: defaults}
}

// RunMRP godoc
// @Summary      Ejecutar corrida MRP
// @Description  Netea la demanda abierta de la planta y genera órdenes planificadas.
//               lot_sizing_policy (LOT_FOR_LOT, FIXED_LOT_SIZE, EOQ) sustituye el lote fijo de cada material.
//               La corrida se devuelve en COMPLETED o FAILED; una corrida FAILED conserva los contadores parciales.
// @Tags         mrp
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RunMRPRequest  true  "Planta, horizonte y política de lote"
// @Success      201   {object}  dto.MRPRunResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/mrp/runs [post]
func (h *MRPHandler) RunMRP(c *fiber.Ctx) error {
	orgID := GetOrganizationID(c)
	if orgID == "" {
		return unauthorized(c)
	}
	var in dto.RunMRPRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.HorizonDays < 0 || in.HorizonDays > 366 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "horizon_days debe estar entre 0 y 366 (0 usa el valor configurado)"})
	}
	policyFor, msg := runPolicy(in)
	if msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
	}
	plantID, ok := h.plantScope(c, in.PlantID)
	if !ok {
		return nil
	}

	opts := h.defaults
	opts.CreatedBy = GetUserID(c)
	if in.HorizonDays > 0 {
		opts.HorizonDays = in.HorizonDays
	}
	if policyFor != nil {
		opts.PolicyFor = policyFor
	}
	run, err := h.orchestrator.RunMRP(c.Context(), orgID, plantID, opts)
	if err != nil {
		return writeError(c, err, "corrida no encontrada")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMRPRunResponse(run))
}

// runPolicy traduce lot_sizing_policy del body. Devuelve un mensaje de validación no vacío
// si la política o sus costos son inválidos.
func runPolicy(in dto.RunMRPRequest) (func(*entity.Material) mrp.Policy, string) {
	if in.LotSizingPolicy == "" {
		return nil, ""
	}
	kind, err := mrp.ParsePolicyKind(strings.ToUpper(strings.TrimSpace(in.LotSizingPolicy)))
	if err != nil {
		return nil, "lot_sizing_policy debe ser LOT_FOR_LOT, FIXED_LOT_SIZE o EOQ"
	}
	if kind == mrp.PolicyEOQ {
		if in.AnnualDemand.IsNegative() || in.OrderingCost.IsNegative() {
			return nil, "annual_demand y ordering_cost deben ser >= 0"
		}
		if !in.HoldingCostRate.IsPositive() {
			return nil, "holding_cost_rate debe ser > 0 con EOQ"
		}
	}
	return planning.PolicySelector(kind, planning.EOQParams{
		AnnualDemand:    in.AnnualDemand,
		OrderingCost:    in.OrderingCost,
		HoldingCostRate: in.HoldingCostRate,
	}), ""
}

// ListRuns godoc
// @Summary      Listar corridas MRP de una planta
// @Tags         mrp
// @Security     Bearer
// @Produce      json
// @Param        plant_id  query  string  false  "Planta (default: la del token)"
// @Param        limit     query  int     false  "Máx. resultados (default 20, max 100)"
// @Param        offset    query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MRPRunListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/mrp/runs [get]
func (h *MRPHandler) ListRuns(c *fiber.Ctx) error {
	orgID := GetOrganizationID(c)
	if orgID == "" {
		return unauthorized(c)
	}
	plantID, ok := h.plantScope(c, c.Query("plant_id"))
	if !ok {
		return nil
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
	}
	page.DefaultPage()

	runs, err := h.query.ListRuns(c.Context(), orgID, plantID, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err, "corridas no encontradas")
	}
	items := make([]dto.MRPRunResponse, 0, len(runs))
	for _, r := range runs {
		items = append(items, dto.ToMRPRunResponse(r))
	}
	return c.JSON(dto.MRPRunListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}

// GetRun godoc
// @Summary      Detalle de una corrida MRP
// @Tags         mrp
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la corrida"
// @Success      200  {object}  dto.MRPRunResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/mrp/runs/{id} [get]
func (h *MRPHandler) GetRun(c *fiber.Ctx) error {
	orgID := GetOrganizationID(c)
	if orgID == "" {
		return unauthorized(c)
	}
	run, err := h.query.GetRun(c.Context(), orgID, c.Params("id"))
	if err != nil {
		return writeError(c, err, "corrida no encontrada")
	}
	if !h.canSeePlant(c, run.PlantID) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "corrida no encontrada"})
	}
	return c.JSON(dto.ToMRPRunResponse(run))
}

// ListPlannedOrders godoc
// @Summary      Órdenes planificadas de una corrida
// @Tags         mrp
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la corrida"
// @Success      200  {array}   dto.PlannedOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/mrp/runs/{id}/planned-orders [get]
func (h *MRPHandler) ListPlannedOrders(c *fiber.Ctx) error {
	orgID := GetOrganizationID(c)
	if orgID == "" {
		return unauthorized(c)
	}
	orders, err := h.query.ListPlannedOrders(c.Context(), orgID, c.Params("id"))
	if err != nil {
		return writeError(c, err, "corrida no encontrada")
	}
	return c.JSON(dto.ToPlannedOrderResponses(orders))
}

// RunReport godoc
// @Summary      Reporte PDF de una corrida
// @Tags         mrp
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la corrida"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/mrp/runs/{id}/report [get]
func (h *MRPHandler) RunReport(c *fiber.Ctx) error {
	orgID := GetOrganizationID(c)
	if orgID == "" {
		return unauthorized(c)
	}
	pdf, err := h.query.RunReport(c.Context(), orgID, c.Params("id"))
	if err != nil {
		return writeError(c, err, "corrida no encontrada")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="mrp-`+c.Params("id")+`.pdf"`)
	return c.Send(pdf)
}

// NetRequirements godoc
// @Summary      Neteo de diagnóstico de un material
// @Description  Calcula el requerimiento neto del material en [from, to] sin generar órdenes.
// @Tags         mrp
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID del material"
// @Param        from  query  string  false  "Inicio (YYYY-MM-DD). Default: hoy."
// @Param        to    query  string  false  "Fin (YYYY-MM-DD). Default: from + 30 días."
// @Success      200  {object}  dto.NetRequirementsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/mrp/materials/{id}/net-requirements [get]
func (h *MRPHandler) NetRequirements(c *fiber.Ctx) error {
	orgID := GetOrganizationID(c)
	if orgID == "" {
		return unauthorized(c)
	}
	from := entity.TruncateDay(time.Now())
	if s := c.Query("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "from debe tener formato YYYY-MM-DD"})
		}
		from = t
	}
	horizon := h.defaults.HorizonDays
	if horizon <= 0 {
		horizon = planning.DefaultHorizonDays
	}
	to := from.AddDate(0, 0, horizon)
	if s := c.Query("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "to debe tener formato YYYY-MM-DD"})
		}
		to = t
	}

	res, err := h.query.CalculateNetRequirements(c.Context(), orgID, c.Params("id"), from, to)
	if err != nil {
		return writeError(c, err, "material no encontrado")
	}
	return c.JSON(dto.ToNetRequirementsResponse(res.MaterialID, res.WindowStart, res.WindowEnd, res.NetProfile))
}

// ExplodeWorkOrder godoc
// @Summary      Explosión de BOM de una orden de trabajo
// @Tags         mrp
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la orden de trabajo"
// @Success      200  {array}   dto.ComponentRequirementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/mrp/work-orders/{id}/explosion [get]
func (h *MRPHandler) ExplodeWorkOrder(c *fiber.Ctx) error {
	orgID := GetOrganizationID(c)
	if orgID == "" {
		return unauthorized(c)
	}
	reqs, err := h.query.ExplodeWorkOrder(c.Context(), orgID, c.Params("id"))
	if err != nil {
		return writeError(c, err, "orden de trabajo no encontrada")
	}
	return c.JSON(dto.ToComponentRequirementResponses(reqs))
}

// plantScope resuelve la planta de la petición contra la del token. Si la respuesta
// de error ya se escribió devuelve ok=false.
func (h *MRPHandler) plantScope(c *fiber.Ctx, requested string) (string, bool) {
	requested = strings.TrimSpace(requested)
	tokenPlant := GetPlantID(c)
	switch {
	case requested == "" && tokenPlant == "":
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "plant_id requerido"})
		return "", false
	case requested == "":
		return tokenPlant, true
	case tokenPlant != "" && requested != tokenPlant:
		_ = c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el token no tiene acceso a la planta " + requested})
		return "", false
	default:
		return requested, true
	}
}

func (h *MRPHandler) canSeePlant(c *fiber.Ctx, plantID string) bool {
	tokenPlant := GetPlantID(c)
	return tokenPlant == "" || tokenPlant == plantID
}
