package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Perfumeria-api/internal/domain/entity"
	"github.com/jhoicas/Perfumeria-api/internal/domain/manufacturing"
)

// OrderRequest cuerpo para crear o reemplazar (PUT) una orden de fabricación.
// El estado no se escribe por aquí: solo cambia vía /advance.
type OrderRequest struct {
	ProductName           string                    `json:"product_name"`
	ManufacturingType     entity.ManufacturingType  `json:"manufacturing_type"`
	Concentration         entity.Concentration      `json:"concentration"`
	ResponsibleEmployeeID string                    `json:"responsible_employee_id"`
	BottleSizeMl          decimal.Decimal           `json:"bottle_size_ml"`
	UnitsRequested        int                       `json:"units_requested"`
	BranchID              string                    `json:"branch_id"`
	ManufacturingDate     *time.Time                `json:"manufacturing_date"`
	ExpiryDate            *time.Time                `json:"expiry_date"`
	DueAt                 *time.Time                `json:"due_at"`
	Formula               []entity.FormulaLine      `json:"formula"`
	ProcessLoss           entity.ProcessLoss        `json:"process_loss"`
	MacerationDays        int                       `json:"maceration_days"`
	Chilling              *entity.Chilling          `json:"chilling"`
	Filtration            *entity.Filtration        `json:"filtration"`
	QC                    *entity.QCCheck           `json:"qc"`
	PackagingItems        []entity.PackagingItem    `json:"packaging_items"`
	Distribution          []entity.DistributionLine `json:"distribution"`
	Costs                 ManualCostsRequest        `json:"costs"`
	ActualMl              *decimal.Decimal          `json:"actual_ml"`
	ActualUnits           *int                      `json:"actual_units"`
}

// ManualCostsRequest costos capturados a mano; el resto se calcula.
type ManualCostsRequest struct {
	Labor    decimal.Decimal `json:"labor"`
	Overhead decimal.Decimal `json:"overhead"`
	Other    decimal.Decimal `json:"other"`
}

// OrderResponse salida de una orden de fabricación.
type OrderResponse struct {
	ID                    string                    `json:"id"`
	CompanyID             string                    `json:"company_id"`
	BatchCode             string                    `json:"batch_code"`
	ProductName           string                    `json:"product_name"`
	ManufacturingType     entity.ManufacturingType  `json:"manufacturing_type"`
	Concentration         entity.Concentration      `json:"concentration"`
	ResponsibleEmployeeID string                    `json:"responsible_employee_id"`
	BottleSizeMl          decimal.Decimal           `json:"bottle_size_ml"`
	UnitsRequested        int                       `json:"units_requested"`
	BranchID              string                    `json:"branch_id"`
	ManufacturingDate     *time.Time                `json:"manufacturing_date"`
	ExpiryDate            *time.Time                `json:"expiry_date"`
	DueAt                 *time.Time                `json:"due_at"`
	Formula               []entity.FormulaLine      `json:"formula"`
	ProcessLoss           entity.ProcessLoss        `json:"process_loss"`
	MacerationDays        int                       `json:"maceration_days"`
	Chilling              *entity.Chilling          `json:"chilling,omitempty"`
	Filtration            *entity.Filtration        `json:"filtration,omitempty"`
	QC                    *entity.QCCheck           `json:"qc,omitempty"`
	PackagingItems        []entity.PackagingItem    `json:"packaging_items"`
	Distribution          []entity.DistributionLine `json:"distribution"`
	Costs                 entity.Costs              `json:"costs"`
	Yield                 entity.Yield              `json:"yield"`
	Status                entity.OrderStatus        `json:"status"`
	CreatedAt             time.Time                 `json:"created_at"`
	UpdatedAt             time.Time                 `json:"updated_at"`
}

// OrderListResponse lista paginada de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// ValidationResponse resultado del validador: errors vacío si la orden es válida.
type ValidationResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

// ValidationErrorResponse cuerpo 422 con el detalle por campo.
type ValidationErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// ScaledLineResponse línea de fórmula escalada al volumen teórico del lote.
type ScaledLineResponse struct {
	MaterialID   string                `json:"material_id"`
	MaterialName string                `json:"material_name"`
	Kind         entity.IngredientKind `json:"kind"`
	Percentage   decimal.Decimal       `json:"percentage"`
	Density      decimal.Decimal       `json:"density"`
	RequiredMl   decimal.Decimal       `json:"required_ml"`
	RequiredG    decimal.Decimal       `json:"required_g"`
}

// PlanResponse plan de producción: rendimiento, requerimientos, disponibilidad y costos.
type PlanResponse struct {
	OrderID           string                         `json:"order_id,omitempty"`
	BranchID          string                         `json:"branch_id"`
	Yield             entity.Yield                   `json:"yield"`
	ScaledFormula     []ScaledLineResponse           `json:"scaled_formula"`
	Materials         []manufacturing.ReservationRow `json:"materials"`
	Packaging         []manufacturing.PackagingRow   `json:"packaging"`
	MaterialShortage  bool                           `json:"material_shortage"`
	PackagingShortage bool                           `json:"packaging_shortage"`
	Costs             entity.Costs                   `json:"costs"`
	Validation        ValidationResponse             `json:"validation"`
}

// TransitionResponse resultado de un avance de estado aceptado.
type TransitionResponse struct {
	From                     entity.OrderStatus `json:"from"`
	To                       entity.OrderStatus `json:"to"`
	StampedManufacturingDate bool               `json:"stamped_manufacturing_date"`
	Order                    OrderResponse      `json:"order"`
}
