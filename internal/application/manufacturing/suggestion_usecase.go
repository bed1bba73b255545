package manufacturing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Perfumeria-api/internal/application/dto"
	"github.com/jhoicas/Perfumeria-api/internal/application/ports"
	"github.com/jhoicas/Perfumeria-api/internal/domain"
	"github.com/jhoicas/Perfumeria-api/internal/domain/entity"
	mfg "github.com/jhoicas/Perfumeria-api/internal/domain/manufacturing"
	"github.com/jhoicas/Perfumeria-api/internal/domain/repository"
)

const (
	suggestionTimeout = 10 * time.Second
	// Tope de materias primas enviadas al LLM en el prompt.
	maxSuggestionMaterials = 200
)

// SuggestionUseCase pide al asistente una fórmula base construida solo con materias primas del catálogo.
type SuggestionUseCase struct {
	suggester   ports.FormulaSuggester
	productRepo repository.ProductRepository
}

// NewSuggestionUseCase construye el caso de uso inyectando el puerto FormulaSuggester.
func NewSuggestionUseCase(suggester ports.FormulaSuggester, productRepo repository.ProductRepository) *SuggestionUseCase {
	return &SuggestionUseCase{suggester: suggester, productRepo: productRepo}
}

// SuggestFormula devuelve líneas de fórmula listas para la orden. Los IDs que el modelo
// invente (no presentes en el catálogo) o con porcentaje no positivo se descartan y se
// informan en Dropped. El total puede no sumar 100: el validador lo señalará.
func (uc *SuggestionUseCase) SuggestFormula(
	ctx context.Context,
	companyID string,
	req dto.FormulaSuggestionRequest,
) (*dto.FormulaSuggestionResponse, error) {
	if strings.TrimSpace(req.ProductName) == "" {
		return nil, fmt.Errorf("%w: product_name es obligatorio", domain.ErrInvalidInput)
	}
	if req.Concentration != "" && !req.Concentration.IsValid() {
		return nil, fmt.Errorf("%w: concentration %q", domain.ErrInvalidInput, req.Concentration)
	}

	materials, err := uc.productRepo.ListByCompany(companyID, entity.ProductCategoryRawMaterial, maxSuggestionMaterials, 0)
	if err != nil {
		return nil, err
	}
	if len(materials) == 0 {
		return nil, fmt.Errorf("%w: no hay materias primas en el catálogo", domain.ErrInvalidInput)
	}

	// Timeout de 10 s: las llamadas a LLMs pueden demorar varios segundos.
	ctx, cancel := context.WithTimeout(ctx, suggestionTimeout)
	defer cancel()

	raw, err := uc.suggester.SuggestFormula(ctx, req, materials)
	if err != nil {
		return nil, fmt.Errorf("sugerencia de fórmula: %w", err)
	}

	byID := make(map[string]*entity.Product, len(materials))
	for _, m := range materials {
		byID[m.ID] = m
	}
	out := &dto.FormulaSuggestionResponse{
		Formula:   make([]entity.FormulaLine, 0, len(raw.Ingredients)),
		Reasoning: raw.Reasoning,
	}
	for _, ing := range raw.Ingredients {
		p, ok := byID[ing.MaterialID]
		if !ok || !ing.Percentage.IsPositive() {
			out.Dropped = append(out.Dropped, ing.MaterialID)
			continue
		}
		out.Formula = append(out.Formula, mfg.NewFormulaLine(p, ing.Percentage))
	}
	out.Total = mfg.FormulaTotal(out.Formula)
	return out, nil
}
