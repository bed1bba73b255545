package manufacturing

import (
	"github.com/jhoicas/Perfumeria-api/internal/application/dto"
	"github.com/jhoicas/Perfumeria-api/internal/domain"
	"github.com/jhoicas/Perfumeria-api/internal/domain/entity"
	"github.com/jhoicas/Perfumeria-api/internal/domain/repository"
)

// CatalogUseCase lecturas del catálogo que alimentan el formulario de órdenes.
type CatalogUseCase struct {
	productRepo   repository.ProductRepository
	branchRepo    repository.BranchRepository
	inventoryRepo repository.InventoryLevelRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	productRepo repository.ProductRepository,
	branchRepo repository.BranchRepository,
	inventoryRepo repository.InventoryLevelRepository,
) *CatalogUseCase {
	return &CatalogUseCase{productRepo: productRepo, branchRepo: branchRepo, inventoryRepo: inventoryRepo}
}

// ListProducts lista productos de la empresa; category vacío = todos.
func (uc *CatalogUseCase) ListProducts(companyID, category string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.productRepo.ListByCompany(companyID, category, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ProductResponse{
			ID:        p.ID,
			CompanyID: p.CompanyID,
			SKU:       p.SKU,
			Name:      p.Name,
			Category:  p.Category,
			BaseUnit:  p.BaseUnit,
			Density:   p.Density,
			UnitCost:  p.UnitCost,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		})
	}
	return &dto.ProductListResponse{Items: items, Page: dto.NewPageResponse(limit, offset, len(items))}, nil
}

// ListBranches lista sucursales de la empresa.
func (uc *CatalogUseCase) ListBranches(companyID string, limit, offset int) (*dto.BranchListResponse, error) {
	list, err := uc.branchRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BranchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, toBranchResponse(b))
	}
	return &dto.BranchListResponse{Items: items, Page: dto.NewPageResponse(limit, offset, len(items))}, nil
}

// BranchInventory stock de una sucursal de la empresa.
func (uc *CatalogUseCase) BranchInventory(companyID, branchID string, limit, offset int) (*dto.InventoryListResponse, error) {
	branch, err := uc.branchRepo.GetByID(branchID)
	if err != nil {
		return nil, err
	}
	if branch == nil || branch.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.inventoryRepo.ListByBranch(branchID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryLevelResponse, 0, len(list))
	for _, l := range list {
		items = append(items, dto.InventoryLevelResponse{
			ProductID: l.ProductID,
			BranchID:  l.BranchID,
			Quantity:  l.Quantity,
			UpdatedAt: l.UpdatedAt,
		})
	}
	return &dto.InventoryListResponse{Items: items, Page: dto.NewPageResponse(limit, offset, len(items))}, nil
}

func toBranchResponse(b *entity.Branch) dto.BranchResponse {
	return dto.BranchResponse{
		ID:        b.ID,
		CompanyID: b.CompanyID,
		Name:      b.Name,
		Code:      b.Code,
		Address:   b.Address,
		Active:    b.Active,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
