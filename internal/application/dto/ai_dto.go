package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Perfumeria-api/internal/domain/entity"
)

// FormulaSuggestionRequest entrada para pedir una fórmula base al asistente.
type FormulaSuggestionRequest struct {
	ProductName   string               `json:"product_name"`
	Concentration entity.Concentration `json:"concentration"`
	Notes         string               `json:"notes"` // descripción olfativa libre
}

// AISuggestedIngredient ingrediente propuesto por el LLM (referencia a un material del catálogo).
type AISuggestedIngredient struct {
	MaterialID string          `json:"material_id"`
	Percentage decimal.Decimal `json:"percentage"`
}

// AIFormulaSuggestionDTO respuesta cruda del LLM.
type AIFormulaSuggestionDTO struct {
	Ingredients []AISuggestedIngredient `json:"ingredients"`
	Reasoning   string                  `json:"reasoning"`
}

// FormulaSuggestionResponse fórmula lista para cargar en la orden.
type FormulaSuggestionResponse struct {
	Formula   []entity.FormulaLine `json:"formula"`
	Total     decimal.Decimal      `json:"total_percentage"`
	Reasoning string               `json:"reasoning"`
	Dropped   []string             `json:"dropped,omitempty"` // IDs sugeridos que no están en el catálogo
}
