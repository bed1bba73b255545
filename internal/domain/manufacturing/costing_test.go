package manufacturing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Perfumeria-api/internal/domain/entity"
	"github.com/jhoicas/Perfumeria-api/internal/domain/manufacturing"
)

func costingFixture() (*entity.ManufacturingOrder, []manufacturing.ScaledLine, []*entity.Product) {
	order := &entity.ManufacturingOrder{
		UnitsRequested: 20,
		PackagingItems: []entity.PackagingItem{
			{ProductID: "bottle", QtyPerUnit: d("1")},
			{ProductID: "ghost", QtyPerUnit: d("1")},
		},
		Costs: entity.Costs{Labor: d("10"), Overhead: d("6")},
		Yield: entity.Yield{ExpectedMl: d("1000"), ExpectedUnits: 20},
	}
	formula := []entity.FormulaLine{
		{MaterialID: "oil", Percentage: d("10"), Density: d("0.9")},
		{MaterialID: "eth", Percentage: d("90"), Density: d("0.79")},
	}
	products := []*entity.Product{
		{ID: "oil", BaseUnit: entity.BaseUnitGram, UnitCost: d("0.5")},
		{ID: "eth", BaseUnit: entity.BaseUnitMl, UnitCost: d("0.01")},
		{ID: "bottle", BaseUnit: entity.BaseUnitPiece, UnitCost: d("0.25")},
	}
	return order, manufacturing.ScaleFormula(formula, d("1000")), products
}

func TestRollUpCosts(t *testing.T) {
	order, scaled, products := costingFixture()

	c := manufacturing.RollUpCosts(order, scaled, products, d("3"))

	// oil 90 g × 0.5 + eth 900 ml × 0.01
	assertDec(t, "54", c.Materials)
	// 1 × 20 × 0.25; el producto inexistente no suma
	assertDec(t, "5", c.Packaging)
	assertDec(t, "10", c.Labor)
	assertDec(t, "6", c.Overhead)
	assertDec(t, "0", c.Other)
	assertDec(t, "75", c.Total)
	assertDec(t, "0.075", c.PerMl)
	assertDec(t, "3.75", c.PerBottle)
	assertDec(t, "11.25", c.SuggestedRetail)
}

func TestRollUpCosts_Markup(t *testing.T) {
	order, scaled, products := costingFixture()

	assertDec(t, "7.5", manufacturing.RollUpCosts(order, scaled, products, d("2")).SuggestedRetail)
	assertDec(t, "11.25", manufacturing.RollUpCosts(order, scaled, products, d("0")).SuggestedRetail, "markup cero usa el valor por defecto")
}

func TestDefaultRetailMarkup(t *testing.T) {
	assertDec(t, "3", manufacturing.DefaultRetailMarkup())
}

func TestRollUpCosts_SinRendimiento(t *testing.T) {
	order, scaled, products := costingFixture()
	order.Yield = entity.Yield{}

	c := manufacturing.RollUpCosts(order, scaled, products, d("3"))

	assertDec(t, "75", c.Total)
	assert.True(t, c.PerMl.IsZero())
	assert.True(t, c.PerBottle.IsZero())
	assert.True(t, c.SuggestedRetail.IsZero())
}
