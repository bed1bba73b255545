package repository

import "github.com/jhoicas/Perfumeria-api/internal/domain/entity"

// BranchRepository define el puerto de persistencia para Branch (DIP).
type BranchRepository interface {
	GetByID(id string) (*entity.Branch, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Branch, error)
}
