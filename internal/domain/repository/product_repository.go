package repository

import "github.com/jhoicas/Perfumeria-api/internal/domain/entity"

// ProductRepository define el puerto de lectura del catálogo de productos (DIP).
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	// ListByCompany lista productos; category vacío = todas las categorías.
	ListByCompany(companyID, category string, limit, offset int) ([]*entity.Product, error)
	// GetByIDs devuelve los productos de la empresa cuyos IDs estén en ids (los ausentes se omiten).
	GetByIDs(companyID string, ids []string) ([]*entity.Product, error)
}
