package ports

import (
	"context"
	"errors"

	"github.com/jhoicas/Perfumeria-api/internal/application/dto"
	"github.com/jhoicas/Perfumeria-api/internal/domain/entity"
)

// FormulaSuggester define el puerto de salida para el asistente de fórmulas (LLM).
// Cualquier adaptador (Anthropic, Gemini, mock) debe implementar esta interfaz; la aplicación
// solo conoce este contrato.
type FormulaSuggester interface {
	// SuggestFormula propone una composición porcentual usando únicamente los materiales dados.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	SuggestFormula(
		ctx context.Context,
		req dto.FormulaSuggestionRequest,
		materials []*entity.Product,
	) (*dto.AIFormulaSuggestionDTO, error)
}

// ErrAIUnavailable el proveedor de IA no está configurado (falta API key).
var ErrAIUnavailable = errors.New("servicio de IA no configurado")
