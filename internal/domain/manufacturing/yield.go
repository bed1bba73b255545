package manufacturing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Perfumeria-api/internal/domain/entity"
)

// TheoreticalVolume = unidades × tamaño de frasco. Entradas cero o negativas se propagan.
func TheoreticalVolume(units int, bottleSizeMl decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(units)).Mul(bottleSizeMl)
}

// ExpectedYield aplica las pérdidas de mezcla, filtración y llenado en cadena:
// theoretical × (1 − mix/100) × (1 − filt/100) × (1 − fill/100).
func ExpectedYield(theoreticalMl decimal.Decimal, loss entity.ProcessLoss) decimal.Decimal {
	return theoreticalMl.
		Mul(survivingFraction(loss.MixingLossPct)).
		Mul(survivingFraction(loss.FiltrationLossPct)).
		Mul(survivingFraction(loss.FillingLossPct))
}

func survivingFraction(lossPct decimal.Decimal) decimal.Decimal {
	return one.Sub(lossPct.Div(hundred))
}

// ExpectedUnits = floor(expectedMl / bottleSizeMl); 0 si el frasco no tiene tamaño positivo.
func ExpectedUnits(expectedMl, bottleSizeMl decimal.Decimal) int {
	if !bottleSizeMl.IsPositive() {
		return 0
	}
	return int(expectedMl.Div(bottleSizeMl).Floor().IntPart())
}

// YieldPercentage = actual / theoretical × 100. Devuelve 0 si falta el volumen real
// o si alguno de los dos es cero.
func YieldPercentage(actualMl *decimal.Decimal, theoreticalMl decimal.Decimal) decimal.Decimal {
	if actualMl == nil || actualMl.IsZero() || theoreticalMl.IsZero() {
		return decimal.Zero
	}
	return actualMl.Div(theoreticalMl).Mul(hundred)
}

// RecomputeYield recalcula los campos derivados del rendimiento de la orden.
// Conserva ActualMl/ActualUnits; con las mismas entradas el resultado es idéntico.
func RecomputeYield(order *entity.ManufacturingOrder) entity.Yield {
	y := order.Yield
	y.TheoreticalMl = TheoreticalVolume(order.UnitsRequested, order.BottleSizeMl)
	y.ExpectedMl = ExpectedYield(y.TheoreticalMl, order.ProcessLoss)
	y.ExpectedUnits = ExpectedUnits(y.ExpectedMl, order.BottleSizeMl)
	y.YieldPercentage = YieldPercentage(y.ActualMl, y.TheoreticalMl)
	return y
}
