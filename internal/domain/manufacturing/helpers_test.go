package manufacturing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Perfumeria-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

// assertDec compara decimales por valor (0.90 == 0.9).
func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, d(want).Equal(got), append([]interface{}{"esperado %s, obtenido %s", want, got.String()}, msgAndArgs...)...)
}

// validOrder orden INTERNAL que cumple todas las reglas del validador.
func validOrder() entity.ManufacturingOrder {
	mfg := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	return entity.ManufacturingOrder{
		ID:                "MO-20261001-001",
		ProductName:       "Oud Royale",
		ManufacturingType: entity.ManufacturingTypeInternal,
		Concentration:     entity.ConcentrationEDP,
		BottleSizeMl:      d("50"),
		UnitsRequested:    100,
		BranchID:          "branch-1",
		ManufacturingDate: &mfg,
		Formula: []entity.FormulaLine{
			{ID: "l1", MaterialID: "oil-1", MaterialName: "Oud Oil", Kind: entity.IngredientAromaOil, Percentage: d("20"), Density: d("0.9")},
			{ID: "l2", MaterialID: "eth-1", MaterialName: "Ethanol 96", Kind: entity.IngredientEthanol, Percentage: d("75"), Density: d("0.79")},
			{ID: "l3", MaterialID: "wat-1", MaterialName: "DI Water", Kind: entity.IngredientDIWater, Percentage: d("5"), Density: d("1")},
		},
		ProcessLoss: entity.ProcessLoss{MixingLossPct: d("2"), FiltrationLossPct: d("1"), FillingLossPct: d("1")},
		Status:      entity.OrderStatusDraft,
	}
}
