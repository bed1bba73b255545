package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Perfumeria-api/internal/application/dto"
	"github.com/jhoicas/Perfumeria-api/internal/domain/entity"
)

// formulaSystemPrompt define el rol del modelo y el formato de salida.
const formulaSystemPrompt = `Eres un perfumista técnico que formula perfumes para producción por lotes.
Recibirás el nombre del producto, la concentración deseada, una descripción olfativa y el catálogo
de materias primas disponibles (id, nombre, densidad).
Devuelve ÚNICAMENTE un objeto JSON válido (sin markdown) con esta estructura exacta:
{
  "ingredients": [{"material_id": "<id del catálogo>", "percentage": <número>}],
  "reasoning": "<explicación concisa en español, máximo 300 caracteres>"
}

Reglas:
- Usa solo material_id presentes en el catálogo. No inventes materiales.
- Los porcentajes son % del volumen total del lote y deben sumar 100.
- Respeta la concentración: EDT_15 ≈ 15% de aceites aromáticos, EDP_20 ≈ 20%, EXTRAIT_30 ≈ 30%, OIL_100 = 100% aceites sin etanol.
- El resto normalmente es etanol y, si corresponde, agua desionizada o fijador.`

// jsonBlockRe extrae el primer objeto JSON del texto aunque el modelo lo envuelva en markdown.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// buildFormulaPrompt arma el mensaje de usuario con el pedido y el catálogo.
func buildFormulaPrompt(req dto.FormulaSuggestionRequest, materials []*entity.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Producto: %s\n", req.ProductName)
	conc := req.Concentration
	if conc == "" {
		conc = entity.ConcentrationEDT
	}
	fmt.Fprintf(&b, "Concentración: %s\n", conc)
	if strings.TrimSpace(req.Notes) != "" {
		fmt.Fprintf(&b, "Descripción olfativa: %s\n", req.Notes)
	}
	b.WriteString("Catálogo de materias primas:\n")
	for _, m := range materials {
		density := "1"
		if m.Density.IsPositive() {
			density = m.Density.String()
		}
		fmt.Fprintf(&b, "- id=%s | %s | densidad=%s\n", m.ID, m.Name, density)
	}
	return b.String()
}

// llmFormulaPayload es el JSON que esperamos recibir del modelo.
type llmFormulaPayload struct {
	Ingredients []struct {
		MaterialID string  `json:"material_id"`
		Percentage float64 `json:"percentage"`
	} `json:"ingredients"`
	Reasoning string `json:"reasoning"`
}

// parseFormulaSuggestion convierte el texto del modelo en el DTO. Porcentajes redondeados a 2 decimales.
func parseFormulaSuggestion(rawText string) (*dto.AIFormulaSuggestionDTO, error) {
	cleanJSON := extractJSON(rawText)
	if cleanJSON == "" {
		return nil, fmt.Errorf("AI: no se encontró JSON válido en la respuesta del modelo (respuesta: %s)", rawText)
	}
	var payload llmFormulaPayload
	if err := json.Unmarshal([]byte(cleanJSON), &payload); err != nil {
		return nil, fmt.Errorf("AI: parsear JSON de fórmula: %w (JSON extraído: %s)", err, cleanJSON)
	}
	out := &dto.AIFormulaSuggestionDTO{
		Ingredients: make([]dto.AISuggestedIngredient, 0, len(payload.Ingredients)),
		Reasoning:   payload.Reasoning,
	}
	for _, ing := range payload.Ingredients {
		out.Ingredients = append(out.Ingredients, dto.AISuggestedIngredient{
			MaterialID: strings.TrimSpace(ing.MaterialID),
			Percentage: decimal.NewFromFloat(ing.Percentage).Round(2),
		})
	}
	return out, nil
}

// extractJSON extrae el primer objeto JSON bien formado de un texto libre.
// Estrategia en dos pasos:
//  1. Eliminar bloques de código markdown (```json … ``` o ``` … ```).
//  2. Usar regex para capturar el primer bloque { … }.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}

	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}
