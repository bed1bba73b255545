package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Perfumeria-api/internal/application/dto"
)

// CatalogService consultas de catálogo (lo implementa *manufacturing.CatalogUseCase).
type CatalogService interface {
	ListProducts(companyID, category string, limit, offset int) (*dto.ProductListResponse, error)
	ListBranches(companyID string, limit, offset int) (*dto.BranchListResponse, error)
	BranchInventory(companyID, branchID string, limit, offset int) (*dto.InventoryListResponse, error)
}

// CatalogHandler productos, sucursales e inventario (solo lectura).
type CatalogHandler struct {
	uc CatalogService
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc CatalogService) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListProducts godoc
// @Summary      Listar productos
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "Raw Material | Packaging"
// @Param        limit     query  int     false  "Límite"  default(20)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Success      200       {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	limit, offset := page(c)
	category := strings.TrimSpace(c.Query("category"))
	out, err := h.uc.ListProducts(companyID, category, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListBranches godoc
// @Summary      Listar sucursales
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BranchListResponse
// @Router       /api/branches [get]
func (h *CatalogHandler) ListBranches(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	limit, offset := page(c)
	out, err := h.uc.ListBranches(companyID, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BranchInventory godoc
// @Summary      Inventario de una sucursal
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sucursal"
// @Success      200  {object}  dto.InventoryListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/branches/{id}/inventory [get]
func (h *CatalogHandler) BranchInventory(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	limit, offset := page(c)
	out, err := h.uc.BranchInventory(companyID, c.Params("id"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
