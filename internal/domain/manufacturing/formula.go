// Package manufacturing contiene el motor de fórmulas, rendimiento, reservas, validación
// y ciclo de vida de las órdenes de fabricación. Todo es cálculo puro en memoria:
// sin I/O, sin estado compartido; los repositorios viven en la capa de aplicación.
package manufacturing

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Perfumeria-api/internal/domain/entity"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// ScaledLine línea de fórmula convertida a volumen (ml) y masa (g) absolutos.
// Density queda con el valor efectivamente usado.
type ScaledLine struct {
	entity.FormulaLine
	RequiredMl decimal.Decimal
	RequiredG  decimal.Decimal
}

// ScaleFormula convierte porcentajes en cantidades absolutas para totalVolumeMl.
// requiredMl = pct/100 * total; requiredG = requiredMl * densidad (1 si la línea no la define).
// No normaliza: una fórmula que no suma 100 produce igualmente un resultado numérico.
func ScaleFormula(formula []entity.FormulaLine, totalVolumeMl decimal.Decimal) []ScaledLine {
	return ScaleFormulaWithCatalog(formula, totalVolumeMl, nil)
}

// ScaleFormulaWithCatalog igual que ScaleFormula, pero si la línea no tiene densidad
// usa la del producto del catálogo antes de caer a 1.
func ScaleFormulaWithCatalog(formula []entity.FormulaLine, totalVolumeMl decimal.Decimal, products []*entity.Product) []ScaledLine {
	byID := indexProducts(products)
	out := make([]ScaledLine, 0, len(formula))
	for _, line := range formula {
		requiredMl := line.Percentage.Div(hundred).Mul(totalVolumeMl)
		density := resolveDensity(line, byID[line.MaterialID])
		line.Density = density
		out = append(out, ScaledLine{
			FormulaLine: line,
			RequiredMl:  requiredMl,
			RequiredG:   requiredMl.Mul(density),
		})
	}
	return out
}

// FormulaTotal suma los porcentajes de la fórmula.
func FormulaTotal(formula []entity.FormulaLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range formula {
		total = total.Add(line.Percentage)
	}
	return total
}

func resolveDensity(line entity.FormulaLine, product *entity.Product) decimal.Decimal {
	if line.Density.IsPositive() {
		return line.Density
	}
	if product != nil && product.Density.IsPositive() {
		return product.Density
	}
	return one
}

// ClassifyIngredient infiere el rol del ingrediente a partir de su nombre.
// Es solo un valor por defecto al seleccionar el material; el usuario puede cambiarlo.
// Sin coincidencias devuelve ADDITIVE.
func ClassifyIngredient(name string) entity.IngredientKind {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "oil"), strings.Contains(n, "aceite"):
		return entity.IngredientAromaOil
	case strings.Contains(n, "ethanol"), strings.Contains(n, "alcohol"), strings.Contains(n, "etanol"):
		return entity.IngredientEthanol
	case strings.Contains(n, "water"), strings.Contains(n, "agua"):
		return entity.IngredientDIWater
	case strings.Contains(n, "fixative"), strings.Contains(n, "fixateur"), strings.Contains(n, "fijador"):
		return entity.IngredientFixative
	case strings.Contains(n, "color"), strings.Contains(n, "colour"), strings.Contains(n, "dye"):
		return entity.IngredientColor
	default:
		return entity.IngredientAdditive
	}
}

// NewFormulaLine crea una línea a partir de un producto del catálogo: copia nombre y SKU,
// infiere el tipo por nombre y toma la densidad del producto (1 si no la tiene).
func NewFormulaLine(product *entity.Product, percentage decimal.Decimal) entity.FormulaLine {
	density := one
	if product.Density.IsPositive() {
		density = product.Density
	}
	return entity.FormulaLine{
		ID:           uuid.New().String(),
		MaterialID:   product.ID,
		MaterialName: product.Name,
		MaterialSKU:  product.SKU,
		Kind:         ClassifyIngredient(product.Name),
		Percentage:   percentage,
		Density:      density,
	}
}

func indexProducts(products []*entity.Product) map[string]*entity.Product {
	byID := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		if p != nil {
			byID[p.ID] = p
		}
	}
	return byID
}
