package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Perfumeria-api/internal/application/dto"
	"github.com/jhoicas/Perfumeria-api/internal/application/ports"
	"github.com/jhoicas/Perfumeria-api/internal/domain"
)

// SuggestionService asistente de fórmulas (lo implementa *manufacturing.SuggestionUseCase).
type SuggestionService interface {
	SuggestFormula(ctx context.Context, companyID string, req dto.FormulaSuggestionRequest) (*dto.FormulaSuggestionResponse, error)
}

// AIHandler maneja el endpoint de sugerencia de fórmulas asistida por IA.
type AIHandler struct {
	uc SuggestionService
}

// NewAIHandler construye el handler.
func NewAIHandler(uc SuggestionService) *AIHandler {
	return &AIHandler{uc: uc}
}

// SuggestFormula godoc
// @Summary      Sugerir fórmula base con IA
// @Description  Propone porcentajes usando solo materias primas del catálogo de la empresa.
//               Los materiales inventados por el modelo se descartan (campo dropped).
//               Timeout interno de 10 s.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FormulaSuggestionRequest  true  "product_name (obligatorio), concentration, notes"
// @Success      200   {object}  dto.FormulaSuggestionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      408   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/manufacturing-orders/formula-suggestion [post]
func (h *AIHandler) SuggestFormula(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}

	var req dto.FormulaSuggestionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	result, err := h.uc.SuggestFormula(c.Context(), companyID, req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) ||
			errors.Is(err, ports.ErrAIUnavailable) ||
			errors.Is(err, context.DeadlineExceeded) {
			return writeError(c, err)
		}
		// Respuesta inválida o error del proveedor externo
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "AI_ERROR", Message: err.Error(),
		})
	}

	return c.JSON(result)
}
