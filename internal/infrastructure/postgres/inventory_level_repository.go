package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Perfumeria-api/internal/domain/entity"
	"github.com/jhoicas/Perfumeria-api/internal/domain/repository"
)

var _ repository.InventoryLevelRepository = (*InventoryLevelRepo)(nil)

// InventoryLevelRepo implementación de InventoryLevelRepository sobre PostgreSQL.
type InventoryLevelRepo struct {
	q Querier
}

// NewInventoryLevelRepository construye el adaptador. Acepta pool o tx (Querier).
func NewInventoryLevelRepository(q Querier) *InventoryLevelRepo {
	return &InventoryLevelRepo{q: q}
}

func (r *InventoryLevelRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.InventoryLevel, error) {
	query := `
		SELECT product_id, branch_id, quantity, updated_at
		FROM inventory
		WHERE branch_id = $1
		ORDER BY updated_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory levels by branch: %w", err)
	}
	return collectLevels(rows)
}

func (r *InventoryLevelRepo) ListForProducts(branchID string, productIDs []string) ([]*entity.InventoryLevel, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT product_id, branch_id, quantity, updated_at
		FROM inventory
		WHERE branch_id = $1 AND product_id = ANY($2)`
	rows, err := r.q.Query(context.Background(), query, branchID, productIDs)
	if err != nil {
		return nil, fmt.Errorf("list inventory levels for products: %w", err)
	}
	return collectLevels(rows)
}

func collectLevels(rows pgx.Rows) ([]*entity.InventoryLevel, error) {
	defer rows.Close()
	var list []*entity.InventoryLevel
	for rows.Next() {
		var l entity.InventoryLevel
		if err := rows.Scan(&l.ProductID, &l.BranchID, &l.Quantity, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory level: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
