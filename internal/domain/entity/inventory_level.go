package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryLevel representa el stock disponible de un producto en una sucursal.
type InventoryLevel struct {
	ProductID string
	BranchID  string
	Quantity  decimal.Decimal
	UpdatedAt time.Time
}
