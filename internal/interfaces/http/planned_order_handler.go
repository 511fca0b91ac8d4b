package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/mrp-api/internal/application/dto"
	"github.com/jhoicas/mrp-api/internal/application/planning"
)

// PlannedOrderHandler firme y conversión de órdenes planificadas.
type PlannedOrderHandler struct {
	uc *planning.PlannedOrderUseCase
}

// NewPlannedOrderHandler construye el handler.
func NewPlannedOrderHandler(uc *planning.PlannedOrderUseCase) *PlannedOrderHandler {
	return &PlannedOrderHandler{uc: uc}
}

// Firm godoc
// @Summary      Poner en firme una orden planificada
// @Description  PLANNED → FIRMED. Las órdenes en firme cuentan como recepción programada en corridas posteriores.
// @Tags         planned-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la orden planificada"
// @Success      200  {object}  dto.PlannedOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/mrp/planned-orders/{id}/firm [post]
func (h *PlannedOrderHandler) Firm(c *fiber.Ctx) error {
	orgID := GetOrganizationID(c)
	if orgID == "" {
		return unauthorized(c)
	}
	order, err := h.uc.Firm(c.Context(), orgID, c.Params("id"))
	if err != nil {
		return writeError(c, err, "orden planificada no encontrada")
	}
	return c.JSON(dto.ToPlannedOrderResponse(order))
}

// Convert godoc
// @Summary      Convertir una orden planificada
// @Description  PLANNED|FIRMED → CONVERTED registrando la orden de compra o de trabajo creada.
// @Tags         planned-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                          true  "ID de la orden planificada"
// @Param        body  body      dto.ConvertPlannedOrderRequest  true  "Orden real creada"
// @Success      200   {object}  dto.PlannedOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/mrp/planned-orders/{id}/convert [post]
func (h *PlannedOrderHandler) Convert(c *fiber.Ctx) error {
	orgID := GetOrganizationID(c)
	if orgID == "" {
		return unauthorized(c)
	}
	var in dto.ConvertPlannedOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.Convert(c.Context(), orgID, c.Params("id"), in.OrderID)
	if err != nil {
		return writeError(c, err, "orden planificada no encontrada")
	}
	return c.JSON(dto.ToPlannedOrderResponse(order))
}
