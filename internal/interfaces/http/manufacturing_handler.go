package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Perfumeria-api/internal/application/dto"
	"github.com/jhoicas/Perfumeria-api/internal/domain/entity"
	"github.com/jhoicas/Perfumeria-api/internal/domain/repository"
)

// OrderService CRUD y validación de órdenes (lo implementa *manufacturing.OrderUseCase).
type OrderService interface {
	Create(companyID string, in dto.OrderRequest) (*dto.OrderResponse, error)
	GetByID(companyID, id string) (*dto.OrderResponse, error)
	List(companyID string, filter repository.OrderFilter, limit, offset int) (*dto.OrderListResponse, error)
	Update(companyID, id string, in dto.OrderRequest) (*dto.OrderResponse, error)
	Delete(companyID, id string) error
	Validate(companyID, id string) (*dto.ValidationResponse, error)
}

// PlanService plan de producción (lo implementa *manufacturing.PlanningUseCase).
type PlanService interface {
	Plan(companyID, orderID string) (*dto.PlanResponse, error)
	PlanDraft(companyID string, in dto.OrderRequest) (*dto.PlanResponse, error)
}

// LifecycleService avance de estado (lo implementa *manufacturing.LifecycleUseCase).
type LifecycleService interface {
	Advance(ctx context.Context, companyID, orderID string) (*dto.TransitionResponse, error)
}

// BatchSheetService hoja de lote en PDF (lo implementa *manufacturing.BatchSheetUseCase).
type BatchSheetService interface {
	Generate(ctx context.Context, companyID, orderID string) ([]byte, string, error)
}

// ManufacturingHandler maneja las peticiones HTTP de órdenes de fabricación (protegido).
type ManufacturingHandler struct {
	orders     OrderService
	planning   PlanService
	lifecycle  LifecycleService
	batchSheet BatchSheetService
}

// NewManufacturingHandler construye el handler.
func NewManufacturingHandler(orders OrderService, planning PlanService, lifecycle LifecycleService, batchSheet BatchSheetService) *ManufacturingHandler {
	return &ManufacturingHandler{orders: orders, planning: planning, lifecycle: lifecycle, batchSheet: batchSheet}
}

// Create godoc
// @Summary      Crear orden de fabricación (DRAFT)
// @Tags         manufacturing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrderRequest  true  "Datos de la orden"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/manufacturing-orders [post]
func (h *ManufacturingHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.OrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.orders.Create(companyID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden por ID
// @Tags         manufacturing
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden (MO-YYYYMMDD-NNN)"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manufacturing-orders/{id} [get]
func (h *ManufacturingHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.orders.GetByID(companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes
// @Tags         manufacturing
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtro por estado"
// @Param        search  query  string  false  "Busca en ID, producto y lote"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.OrderListResponse
// @Router       /api/manufacturing-orders [get]
func (h *ManufacturingHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	limit, offset := page(c)
	filter := repository.OrderFilter{
		Status: entity.OrderStatus(strings.ToUpper(strings.TrimSpace(c.Query("status")))),
		Search: strings.TrimSpace(c.Query("search")),
	}
	out, err := h.orders.List(companyID, filter, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar los datos editables de una orden
// @Description  El estado no se modifica aquí (usar /advance). Órdenes CLOSED son de solo lectura.
// @Tags         manufacturing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "ID de la orden"
// @Param        body  body  dto.OrderRequest  true  "Datos de la orden"
// @Success      200   {object}  dto.OrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/manufacturing-orders/{id} [put]
func (h *ManufacturingHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.OrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.orders.Update(companyID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar orden (solo DRAFT)
// @Tags         manufacturing
// @Security     Bearer
// @Param        id   path  string  true  "ID de la orden"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/manufacturing-orders/{id} [delete]
func (h *ManufacturingHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	if err := h.orders.Delete(companyID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Validation godoc
// @Summary      Validar orden
// @Tags         manufacturing
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ValidationResponse
// @Router       /api/manufacturing-orders/{id}/validation [get]
func (h *ManufacturingHandler) Validation(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.orders.Validate(companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Plan godoc
// @Summary      Plan de producción de una orden guardada
// @Description  Rendimiento, fórmula escalada, disponibilidad en sucursal y costos.
// @Tags         manufacturing
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PlanResponse
// @Router       /api/manufacturing-orders/{id}/plan [get]
func (h *ManufacturingHandler) Plan(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.planning.Plan(companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Preview godoc
// @Summary      Plan de producción para una orden sin guardar
// @Tags         manufacturing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrderRequest  true  "Borrador de la orden"
// @Success      200   {object}  dto.PlanResponse
// @Router       /api/manufacturing-orders/preview [post]
func (h *ManufacturingHandler) Preview(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.OrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.planning.PlanDraft(companyID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Advance godoc
// @Summary      Avanzar la orden al siguiente estado
// @Description  DRAFT → IN_PROGRESS → MACERATING → QC → PACKAGING → DONE → CLOSED.
// @Tags         manufacturing
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.TransitionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ValidationErrorResponse
// @Router       /api/manufacturing-orders/{id}/advance [post]
func (h *ManufacturingHandler) Advance(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.lifecycle.Advance(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BatchSheet godoc
// @Summary      Descargar la hoja de lote en PDF
// @Tags         manufacturing
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Router       /api/manufacturing-orders/{id}/batch-sheet [get]
func (h *ManufacturingHandler) BatchSheet(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	pdf, filename, err := h.batchSheet.Generate(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}
