package manufacturing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Perfumeria-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// El avance de estado lo usa para bloquear la orden y persistir de forma atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.ManufacturingOrderRepository,
		productRepo repository.ProductRepository,
		inventoryRepo repository.InventoryLevelRepository,
	) error) error
}

// Settings reglas de negocio configurables (ver config.ManufacturingConfig).
type Settings struct {
	EnforceStockOnStart bool
	RetailMarkup        decimal.Decimal
}
