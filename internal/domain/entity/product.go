package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de producto relevantes para fabricación.
const (
	ProductCategoryRawMaterial = "Raw Material" // elegible para fórmulas
	ProductCategoryPackaging   = "Packaging"    // elegible para empaque
)

// Unidades base de inventario.
const (
	BaseUnitMl    = "ml"
	BaseUnitGram  = "g"
	BaseUnitPiece = "pcs"
)

// Product representa una materia prima, material de empaque o producto terminado del catálogo.
// UnitCost es el costo por unidad base (ml, g o pcs); Density en g/ml, cero si se desconoce.
type Product struct {
	ID        string
	CompanyID string
	SKU       string
	Name      string
	Category  string
	BaseUnit  string
	Density   decimal.Decimal
	UnitCost  decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

