package repository

import "github.com/jhoicas/Perfumeria-api/internal/domain/entity"

// InventoryLevelRepository define el puerto para consultar stock por sucursal+producto (DIP).
type InventoryLevelRepository interface {
	ListByBranch(branchID string, limit, offset int) ([]*entity.InventoryLevel, error)
	// ListForProducts stock de la sucursal restringido a los productos indicados.
	ListForProducts(branchID string, productIDs []string) ([]*entity.InventoryLevel, error)
}
