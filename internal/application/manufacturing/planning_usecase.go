package manufacturing

import (
	"github.com/jhoicas/Perfumeria-api/internal/application/dto"
	"github.com/jhoicas/Perfumeria-api/internal/domain"
	"github.com/jhoicas/Perfumeria-api/internal/domain/entity"
	mfg "github.com/jhoicas/Perfumeria-api/internal/domain/manufacturing"
	"github.com/jhoicas/Perfumeria-api/internal/domain/repository"
)

// PlanningUseCase arma el plan de producción de una orden: rendimiento, fórmula escalada,
// disponibilidad de materias primas y empaque en la sucursal, y costos.
type PlanningUseCase struct {
	orderRepo     repository.ManufacturingOrderRepository
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryLevelRepository
	settings      Settings
}

// NewPlanningUseCase construye el caso de uso.
func NewPlanningUseCase(
	orderRepo repository.ManufacturingOrderRepository,
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryLevelRepository,
	settings Settings,
) *PlanningUseCase {
	return &PlanningUseCase{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		settings:      settings,
	}
}

// Plan devuelve el plan de una orden guardada.
func (uc *PlanningUseCase) Plan(companyID, orderID string) (*dto.PlanResponse, error) {
	order, err := loadOrder(uc.orderRepo, companyID, orderID)
	if err != nil {
		return nil, err
	}
	return uc.planFor(order)
}

// PlanDraft calcula el plan de una orden aún no guardada (validación en vivo del formulario).
func (uc *PlanningUseCase) PlanDraft(companyID string, in dto.OrderRequest) (*dto.PlanResponse, error) {
	order := mfg.NewDraftOrder(companyID)
	if err := applyRequest(&order, in); err != nil {
		return nil, err
	}
	return uc.planFor(&order)
}

func (uc *PlanningUseCase) planFor(order *entity.ManufacturingOrder) (*dto.PlanResponse, error) {
	products, inventory, err := loadPlanData(uc.productRepo, uc.inventoryRepo, order)
	if err != nil {
		return nil, err
	}
	plan := computePlan(order, products, inventory, uc.settings)
	return &plan.response, nil
}

type plan struct {
	response  dto.PlanResponse
	materials []mfg.ReservationRow
	packaging []mfg.PackagingRow
}

// computePlan es puro: no modifica la orden recibida.
func computePlan(
	order *entity.ManufacturingOrder,
	products []*entity.Product,
	inventory []*entity.InventoryLevel,
	settings Settings,
) plan {
	o := order.Clone()
	o.Yield = mfg.RecomputeYield(&o)
	scaled := mfg.ScaleFormulaWithCatalog(o.Formula, o.Yield.TheoreticalMl, products)
	materials := mfg.CheckReservation(scaled, products, inventory, o.BranchID)
	packaging := mfg.CheckPackaging(o.PackagingItems, o.UnitsRequested, inventory, o.BranchID)
	costs := mfg.RollUpCosts(&o, scaled, products, settings.RetailMarkup)

	return plan{
		materials: materials,
		packaging: packaging,
		response: dto.PlanResponse{
			OrderID:           o.ID,
			BranchID:          o.BranchID,
			Yield:             o.Yield,
			ScaledFormula:     toScaledResponse(scaled),
			Materials:         materials,
			Packaging:         packaging,
			MaterialShortage:  len(mfg.MaterialShortages(materials)) > 0,
			PackagingShortage: len(mfg.PackagingShortages(packaging)) > 0,
			Costs:             costs,
			Validation:        toValidationResponse(mfg.Validate(&o)),
		},
	}
}

// refreshDerived recalcula rendimiento y costos de la orden con el catálogo actual.
func refreshDerived(productRepo repository.ProductRepository, order *entity.ManufacturingOrder, settings Settings) error {
	order.Yield = mfg.RecomputeYield(order)
	products, err := productRepo.GetByIDs(order.CompanyID, referencedProductIDs(order))
	if err != nil {
		return err
	}
	scaled := mfg.ScaleFormulaWithCatalog(order.Formula, order.Yield.TheoreticalMl, products)
	order.Costs = mfg.RollUpCosts(order, scaled, products, settings.RetailMarkup)
	return nil
}

// loadPlanData trae del catálogo los productos referenciados y el stock de la sucursal.
// Sin sucursal asignada no se consulta inventario.
func loadPlanData(
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryLevelRepository,
	order *entity.ManufacturingOrder,
) ([]*entity.Product, []*entity.InventoryLevel, error) {
	ids := referencedProductIDs(order)
	products, err := productRepo.GetByIDs(order.CompanyID, ids)
	if err != nil {
		return nil, nil, err
	}
	if !mfg.BranchAssigned(order.BranchID) || len(ids) == 0 {
		return products, nil, nil
	}
	inventory, err := inventoryRepo.ListForProducts(order.BranchID, ids)
	if err != nil {
		return nil, nil, err
	}
	return products, inventory, nil
}

func referencedProductIDs(order *entity.ManufacturingOrder) []string {
	seen := make(map[string]struct{}, len(order.Formula)+len(order.PackagingItems))
	ids := make([]string, 0, len(order.Formula)+len(order.PackagingItems))
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, l := range order.Formula {
		add(l.MaterialID)
	}
	for _, p := range order.PackagingItems {
		add(p.ProductID)
	}
	return ids
}

// loadOrder obtiene la orden verificando que pertenezca a la empresa.
func loadOrder(repo repository.ManufacturingOrderRepository, companyID, id string) (*entity.ManufacturingOrder, error) {
	order, err := repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil || order.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return order, nil
}
