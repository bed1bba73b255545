package manufacturing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Perfumeria-api/internal/domain/entity"
)

// ReservationRow disponibilidad de una materia prima para la orden en su sucursal.
type ReservationRow struct {
	MaterialID   string          `json:"material_id"`
	MaterialName string          `json:"material_name"`
	Unit         string          `json:"unit"` // ml o g según la unidad base del producto
	Required     decimal.Decimal `json:"required"`
	Available    decimal.Decimal `json:"available"`
	IsSufficient bool            `json:"is_sufficient"`
}

// PackagingRow disponibilidad de un material de empaque para la orden en su sucursal.
type PackagingRow struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	QtyPerUnit   decimal.Decimal `json:"qty_per_unit"`
	Required     decimal.Decimal `json:"required"`
	Available    decimal.Decimal `json:"available"`
	IsSufficient bool            `json:"is_sufficient"`
}

// CheckReservation cruza la fórmula escalada con el inventario de la sucursal.
// Cantidad requerida: requiredMl si la unidad base del producto es ml, si no requiredG.
// Sin sucursal asignada no se consulta inventario: available = 0 e IsSufficient = false
// en todas las filas, aunque lo requerido sea cero.
func CheckReservation(
	scaled []ScaledLine,
	products []*entity.Product,
	inventory []*entity.InventoryLevel,
	branchID string,
) []ReservationRow {
	byID := indexProducts(products)
	assigned := BranchAssigned(branchID)
	rows := make([]ReservationRow, 0, len(scaled))
	for _, line := range scaled {
		required, unit := requiredInBaseUnit(line, byID[line.MaterialID])
		available := availableAt(inventory, line.MaterialID, branchID)
		rows = append(rows, ReservationRow{
			MaterialID:   line.MaterialID,
			MaterialName: line.MaterialName,
			Unit:         unit,
			Required:     required,
			Available:    available,
			IsSufficient: assigned && available.GreaterThanOrEqual(required),
		})
	}
	return rows
}

// CheckPackaging calcula requerido = qtyPerUnit × unidades y lo compara con el stock
// de la sucursal. Mismo criterio de sucursal no asignada que CheckReservation.
func CheckPackaging(
	items []entity.PackagingItem,
	unitsRequested int,
	inventory []*entity.InventoryLevel,
	branchID string,
) []PackagingRow {
	units := decimal.NewFromInt(int64(unitsRequested))
	assigned := BranchAssigned(branchID)
	rows := make([]PackagingRow, 0, len(items))
	for _, item := range items {
		required := item.QtyPerUnit.Mul(units)
		available := availableAt(inventory, item.ProductID, branchID)
		rows = append(rows, PackagingRow{
			ProductID:    item.ProductID,
			Name:         item.Name,
			QtyPerUnit:   item.QtyPerUnit,
			Required:     required,
			Available:    available,
			IsSufficient: assigned && available.GreaterThanOrEqual(required),
		})
	}
	return rows
}

// MaterialShortages devuelve las filas con faltante.
func MaterialShortages(rows []ReservationRow) []ReservationRow {
	var short []ReservationRow
	for _, r := range rows {
		if !r.IsSufficient {
			short = append(short, r)
		}
	}
	return short
}

// PackagingShortages devuelve las filas de empaque con faltante.
func PackagingShortages(rows []PackagingRow) []PackagingRow {
	var short []PackagingRow
	for _, r := range rows {
		if !r.IsSufficient {
			short = append(short, r)
		}
	}
	return short
}

// BranchAssigned indica si el identificador de sucursal es utilizable.
// "0" se trata como no asignado (ids numéricos heredados).
func BranchAssigned(branchID string) bool {
	id := strings.TrimSpace(branchID)
	return id != "" && id != "0"
}

func requiredInBaseUnit(line ScaledLine, product *entity.Product) (decimal.Decimal, string) {
	if product != nil && strings.EqualFold(product.BaseUnit, entity.BaseUnitMl) {
		return line.RequiredMl, entity.BaseUnitMl
	}
	return line.RequiredG, entity.BaseUnitGram
}

// availableAt suma el stock del producto en la sucursal; sin sucursal devuelve cero.
func availableAt(inventory []*entity.InventoryLevel, productID, branchID string) decimal.Decimal {
	if !BranchAssigned(branchID) {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, lvl := range inventory {
		if lvl != nil && lvl.ProductID == productID && lvl.BranchID == branchID {
			total = total.Add(lvl.Quantity)
		}
	}
	return total
}
