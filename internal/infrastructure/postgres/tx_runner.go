package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	appmfg "github.com/jhoicas/Perfumeria-api/internal/application/manufacturing"
	"github.com/jhoicas/Perfumeria-api/internal/domain/repository"
)

var _ appmfg.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	orderRepo repository.ManufacturingOrderRepository,
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryLevelRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewManufacturingOrderRepository(tx)
	productRepo := NewProductRepository(tx)
	inventoryRepo := NewInventoryLevelRepository(tx)

	if err := fn(orderRepo, productRepo, inventoryRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
