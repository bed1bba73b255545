package manufacturing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Perfumeria-api/internal/domain/entity"
)

const defaultRetailMarkup = 3

// DefaultRetailMarkup multiplicador por defecto del precio sugerido sobre el costo por frasco.
func DefaultRetailMarkup() decimal.Decimal { return decimal.NewFromInt(defaultRetailMarkup) }

// Decimales: montos en 3 (moneda con fils), costo por ml en 6.
const (
	moneyPlaces = 3
	perMlPlaces = 6
)

// RollUpCosts suma los costos del lote:
//
//	materials = Σ requerido (unidad base) × costo unitario del producto
//	packaging = Σ qtyPerUnit × unidades × costo unitario del producto
//	total     = materials + labor + overhead + packaging + other
//
// Labor, overhead y other se toman de order.Costs (captura manual). PerMl y PerBottle
// dividen entre el volumen y las unidades esperadas; con divisor cero quedan en 0.
func RollUpCosts(
	order *entity.ManufacturingOrder,
	scaled []ScaledLine,
	products []*entity.Product,
	markup decimal.Decimal,
) entity.Costs {
	byID := indexProducts(products)

	materials := decimal.Zero
	for _, line := range scaled {
		p := byID[line.MaterialID]
		if p == nil {
			continue
		}
		qty, _ := requiredInBaseUnit(line, p)
		materials = materials.Add(qty.Mul(p.UnitCost))
	}

	units := decimal.NewFromInt(int64(order.UnitsRequested))
	packaging := decimal.Zero
	for _, item := range order.PackagingItems {
		p := byID[item.ProductID]
		if p == nil {
			continue
		}
		packaging = packaging.Add(item.QtyPerUnit.Mul(units).Mul(p.UnitCost))
	}

	c := entity.Costs{
		Materials: materials.Round(moneyPlaces),
		Labor:     order.Costs.Labor,
		Overhead:  order.Costs.Overhead,
		Packaging: packaging.Round(moneyPlaces),
		Other:     order.Costs.Other,
	}
	c.Total = c.Materials.Add(c.Labor).Add(c.Overhead).Add(c.Packaging).Add(c.Other)

	if order.Yield.ExpectedMl.IsPositive() {
		c.PerMl = c.Total.Div(order.Yield.ExpectedMl).Round(perMlPlaces)
	}
	if order.Yield.ExpectedUnits > 0 {
		c.PerBottle = c.Total.Div(decimal.NewFromInt(int64(order.Yield.ExpectedUnits))).Round(moneyPlaces)
	}
	if !markup.IsPositive() {
		markup = DefaultRetailMarkup()
	}
	c.SuggestedRetail = c.PerBottle.Mul(markup).Round(moneyPlaces)
	return c
}
