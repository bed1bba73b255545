package manufacturing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Perfumeria-api/internal/domain/entity"
)

// Claves del mapa de errores (una por regla).
const (
	FieldProductName       = "productName"
	FieldUnitsRequested    = "unitsRequested"
	FieldBottleSizeMl      = "bottleSizeMl"
	FieldManufacturingDate = "manufacturingDate"
	FieldFormula           = "formula"
	FieldDistribution      = "distribution"
)

// formulaTolerance margen aceptado para que la fórmula sume 100%.
var formulaTolerance = decimal.RequireFromString("0.01")

// ErrorMap campo → mensaje legible. Vacío significa orden válida.
type ErrorMap map[string]string

// Valid indica si no hay errores.
func (m ErrorMap) Valid() bool { return len(m) == 0 }

// Fields devuelve las claves con error (útil para logs).
func (m ErrorMap) Fields() []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// Validate evalúa todas las reglas de la orden, sin cortocircuito y sin efectos secundarios.
// Es seguro llamarlo sobre un borrador con fórmula vacía (devuelve el error de fórmula).
func Validate(order *entity.ManufacturingOrder) ErrorMap {
	errs := ErrorMap{}
	if order == nil {
		errs[FieldProductName] = "la orden es obligatoria"
		return errs
	}

	if strings.TrimSpace(order.ProductName) == "" {
		errs[FieldProductName] = "el nombre del producto es obligatorio"
	}
	if order.UnitsRequested <= 0 {
		errs[FieldUnitsRequested] = "las unidades solicitadas deben ser mayores que 0"
	}
	if !order.BottleSizeMl.IsPositive() {
		errs[FieldBottleSizeMl] = "el tamaño del frasco debe ser mayor que 0"
	}
	if order.ManufacturingDate == nil || order.ManufacturingDate.IsZero() {
		errs[FieldManufacturingDate] = "la fecha de fabricación es obligatoria"
	}

	total := FormulaTotal(order.Formula)
	if total.Sub(hundred).Abs().GreaterThan(formulaTolerance) {
		errs[FieldFormula] = fmt.Sprintf("la suma de porcentajes de la fórmula debe ser 100%% (actual: %s%%)", total.StringFixed(2))
	}

	if order.ManufacturingType == entity.ManufacturingTypeContract {
		distTotal := 0
		for _, d := range order.Distribution {
			distTotal += d.Units
		}
		if distTotal != order.UnitsRequested {
			errs[FieldDistribution] = fmt.Sprintf("el total de la distribución (%d) no coincide con las unidades solicitadas (%d)", distTotal, order.UnitsRequested)
		}
	}

	return errs
}
