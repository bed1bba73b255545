package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado del ciclo de vida de una orden de fabricación.
type OrderStatus string

// Estados en orden estricto: DRAFT → IN_PROGRESS → MACERATING → QC → PACKAGING → DONE → CLOSED.
const (
	OrderStatusDraft      OrderStatus = "DRAFT"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusMacerating OrderStatus = "MACERATING"
	OrderStatusQC         OrderStatus = "QC"
	OrderStatusPackaging  OrderStatus = "PACKAGING"
	OrderStatusDone       OrderStatus = "DONE"
	OrderStatusClosed     OrderStatus = "CLOSED"
)

// IsValid indica si el estado pertenece al ciclo de vida.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusInProgress, OrderStatusMacerating, OrderStatusQC,
		OrderStatusPackaging, OrderStatusDone, OrderStatusClosed:
		return true
	}
	return false
}

func (s OrderStatus) String() string { return string(s) }

// ManufacturingType tipo de fabricación.
type ManufacturingType string

const (
	ManufacturingTypeInternal ManufacturingType = "INTERNAL"
	ManufacturingTypeContract ManufacturingType = "CONTRACT" // maquila: la producción se reparte entre ubicaciones
)

func (t ManufacturingType) IsValid() bool {
	return t == ManufacturingTypeInternal || t == ManufacturingTypeContract
}

// Concentration clasificación de la fuerza del perfume (informativa).
type Concentration string

const (
	ConcentrationEDT     Concentration = "EDT_15"
	ConcentrationEDP     Concentration = "EDP_20"
	ConcentrationExtrait Concentration = "EXTRAIT_30"
	ConcentrationOil     Concentration = "OIL_100"
)

func (c Concentration) IsValid() bool {
	switch c {
	case ConcentrationEDT, ConcentrationEDP, ConcentrationExtrait, ConcentrationOil:
		return true
	}
	return false
}

// IngredientKind rol del ingrediente dentro de la fórmula.
type IngredientKind string

const (
	IngredientAromaOil IngredientKind = "AROMA_OIL"
	IngredientEthanol  IngredientKind = "ETHANOL"
	IngredientDIWater  IngredientKind = "DI_WATER"
	IngredientFixative IngredientKind = "FIXATIVE"
	IngredientColor    IngredientKind = "COLOR"
	IngredientAdditive IngredientKind = "ADDITIVE"
)

// QC: resultados posibles de la inspección.
const (
	QCResultApproved = "APPROVED"
	QCResultRejected = "REJECTED"
)

// FormulaLine un ingrediente de la fórmula. Percentage es % del volumen total del lote (0–100).
type FormulaLine struct {
	ID           string          `json:"id"`
	MaterialID   string          `json:"material_id"`
	MaterialName string          `json:"material_name"`
	MaterialSKU  string          `json:"material_sku"`
	Kind         IngredientKind  `json:"kind"`
	Percentage   decimal.Decimal `json:"percentage"`
	Density      decimal.Decimal `json:"density"` // g/ml; cero = usar la del producto o 1
}

// ProcessLoss porcentaje de volumen perdido en cada etapa; se aplican en cadena (multiplicativo).
type ProcessLoss struct {
	MixingLossPct     decimal.Decimal `json:"mixing_loss_pct"`
	FiltrationLossPct decimal.Decimal `json:"filtration_loss_pct"`
	FillingLossPct    decimal.Decimal `json:"filling_loss_pct"`
}

// Yield rendimiento derivado de unidades, tamaño de frasco y pérdidas.
// ActualMl/ActualUnits se capturan tras la producción física.
type Yield struct {
	TheoreticalMl   decimal.Decimal  `json:"theoretical_ml"`
	ExpectedMl      decimal.Decimal  `json:"expected_ml"`
	ExpectedUnits   int              `json:"expected_units"`
	ActualMl        *decimal.Decimal `json:"actual_ml,omitempty"`
	ActualUnits     *int             `json:"actual_units,omitempty"`
	YieldPercentage decimal.Decimal  `json:"yield_percentage"`
}

// PackagingItem material de empaque consumido por unidad terminada.
type PackagingItem struct {
	ProductID  string          `json:"product_id"`
	Name       string          `json:"name"`
	QtyPerUnit decimal.Decimal `json:"qty_per_unit"`
}

// DistributionLine reparto de unidades por ubicación (solo CONTRACT).
type DistributionLine struct {
	ID           string `json:"id"`
	LocationName string `json:"location_name"`
	Units        int    `json:"units"`
}

// Costs acumulado de costos del lote.
type Costs struct {
	Materials       decimal.Decimal `json:"materials"`
	Labor           decimal.Decimal `json:"labor"`
	Overhead        decimal.Decimal `json:"overhead"`
	Packaging       decimal.Decimal `json:"packaging"`
	Other           decimal.Decimal `json:"other"`
	Total           decimal.Decimal `json:"total"`
	PerMl           decimal.Decimal `json:"per_ml"`
	PerBottle       decimal.Decimal `json:"per_bottle"`
	SuggestedRetail decimal.Decimal `json:"suggested_retail"`
}

// Chilling parámetros de enfriado previo a la filtración.
type Chilling struct {
	Hours        decimal.Decimal `json:"hours"`
	TemperatureC decimal.Decimal `json:"temperature_c"`
}

// Filtration parámetros de filtrado.
type Filtration struct {
	Stages int             `json:"stages"`
	Micron decimal.Decimal `json:"micron"`
}

// QCCheck resultado del control de calidad.
type QCCheck struct {
	Appearance string `json:"appearance"`
	Clarity    string `json:"clarity"`    // Clear | Hazy
	OdorMatch  string `json:"odor_match"` // Pass | Fail
	Result     string `json:"result"`     // APPROVED | REJECTED
}

// ManufacturingOrder agregado raíz: orden de fabricación de perfume.
// ID con formato MO-YYYYMMDD-NNN (secuencia por día); BatchCode BATCH-<epoch-ms>.
type ManufacturingOrder struct {
	ID                    string
	CompanyID             string
	BatchCode             string
	ProductName           string
	ManufacturingType     ManufacturingType
	Concentration         Concentration
	ResponsibleEmployeeID string
	BottleSizeMl          decimal.Decimal
	UnitsRequested        int
	BranchID              string
	ManufacturingDate     *time.Time
	ExpiryDate            *time.Time
	DueAt                 *time.Time
	Formula               []FormulaLine
	ProcessLoss           ProcessLoss
	MacerationDays        int
	Chilling              *Chilling
	Filtration            *Filtration
	QC                    *QCCheck
	PackagingItems        []PackagingItem
	Costs                 Costs
	Yield                 Yield
	Distribution          []DistributionLine
	Status                OrderStatus
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Clone devuelve una copia profunda: los slices y punteros no se comparten con el original.
func (o ManufacturingOrder) Clone() ManufacturingOrder {
	c := o
	c.Formula = cloneSlice(o.Formula)
	c.PackagingItems = cloneSlice(o.PackagingItems)
	c.Distribution = cloneSlice(o.Distribution)
	if o.ManufacturingDate != nil {
		t := *o.ManufacturingDate
		c.ManufacturingDate = &t
	}
	if o.ExpiryDate != nil {
		t := *o.ExpiryDate
		c.ExpiryDate = &t
	}
	if o.DueAt != nil {
		t := *o.DueAt
		c.DueAt = &t
	}
	if o.Yield.ActualMl != nil {
		v := *o.Yield.ActualMl
		c.Yield.ActualMl = &v
	}
	if o.Yield.ActualUnits != nil {
		v := *o.Yield.ActualUnits
		c.Yield.ActualUnits = &v
	}
	if o.Chilling != nil {
		v := *o.Chilling
		c.Chilling = &v
	}
	if o.Filtration != nil {
		v := *o.Filtration
		c.Filtration = &v
	}
	if o.QC != nil {
		v := *o.QC
		c.QC = &v
	}
	return c
}

// cloneSlice copia conservando la diferencia entre nil y vacío.
func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
