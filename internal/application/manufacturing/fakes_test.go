package manufacturing

import (
	"context"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Perfumeria-api/internal/application/dto"
	"github.com/jhoicas/Perfumeria-api/internal/application/ports"
	"github.com/jhoicas/Perfumeria-api/internal/domain/entity"
	"github.com/jhoicas/Perfumeria-api/internal/domain/repository"
	"github.com/jhoicas/Perfumeria-api/pkg/logger"
)

var fixedNow = time.Date(2026, 10, 19, 9, 15, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error", Output: io.Discard})
}

func testSettings() Settings { return Settings{RetailMarkup: d("3")} }

// ── órdenes ──────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	orders     map[string]entity.ManufacturingOrder
	createErrs []error // errores a devolver en Create, en orden
	locked     []string
}

func newFakeOrderRepo(orders ...entity.ManufacturingOrder) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: map[string]entity.ManufacturingOrder{}}
	for _, o := range orders {
		r.orders[o.ID] = o.Clone()
	}
	return r
}

var _ repository.ManufacturingOrderRepository = (*fakeOrderRepo)(nil)

func (r *fakeOrderRepo) Create(o *entity.ManufacturingOrder) error {
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		if err != nil {
			return err
		}
	}
	r.orders[o.ID] = o.Clone()
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.ManufacturingOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	c := o.Clone()
	return &c, nil
}

func (r *fakeOrderRepo) GetForUpdate(id string) (*entity.ManufacturingOrder, error) {
	r.locked = append(r.locked, id)
	return r.GetByID(id)
}

func (r *fakeOrderRepo) Update(o *entity.ManufacturingOrder) error {
	r.orders[o.ID] = o.Clone()
	return nil
}

func (r *fakeOrderRepo) ListByCompany(companyID string, f repository.OrderFilter, limit, offset int) ([]*entity.ManufacturingOrder, error) {
	var out []*entity.ManufacturingOrder
	for _, o := range r.orders {
		if o.CompanyID != companyID || (f.Status != "" && o.Status != f.Status) {
			continue
		}
		c := o.Clone()
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeOrderRepo) Delete(id string) error {
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) LastIDWithPrefix(prefix string) (string, error) {
	last := ""
	for id := range r.orders {
		if strings.HasPrefix(id, prefix) && id > last {
			last = id
		}
	}
	return last, nil
}

// ── catálogo ─────────────────────────────────────────────────────────────────

type fakeProductRepo struct{ products []*entity.Product }

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) ListByCompany(companyID, category string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.CompanyID == companyID && (category == "" || p.Category == category) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetByIDs(companyID string, ids []string) ([]*entity.Product, error) {
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []*entity.Product
	for _, p := range r.products {
		if p.CompanyID == companyID && want[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeInventoryRepo struct {
	levels []*entity.InventoryLevel
	calls  int
}

var _ repository.InventoryLevelRepository = (*fakeInventoryRepo)(nil)

func (r *fakeInventoryRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.InventoryLevel, error) {
	var out []*entity.InventoryLevel
	for _, l := range r.levels {
		if l.BranchID == branchID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeInventoryRepo) ListForProducts(branchID string, productIDs []string) ([]*entity.InventoryLevel, error) {
	r.calls++
	want := map[string]bool{}
	for _, id := range productIDs {
		want[id] = true
	}
	var out []*entity.InventoryLevel
	for _, l := range r.levels {
		if l.BranchID == branchID && want[l.ProductID] {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeBranchRepo struct{ branches []*entity.Branch }

var _ repository.BranchRepository = (*fakeBranchRepo)(nil)

func (r *fakeBranchRepo) GetByID(id string) (*entity.Branch, error) {
	for _, b := range r.branches {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBranchRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Branch, error) {
	var out []*entity.Branch
	for _, b := range r.branches {
		if b.CompanyID == companyID {
			out = append(out, b)
		}
	}
	return out, nil
}

// ── transacción ──────────────────────────────────────────────────────────────

// fakeTxRunner restaura las órdenes si fn devuelve error (rollback).
type fakeTxRunner struct {
	orders    *fakeOrderRepo
	products  *fakeProductRepo
	inventory *fakeInventoryRepo
	commits   int
	rollbacks int
}

var _ TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	orderRepo repository.ManufacturingOrderRepository,
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryLevelRepository,
) error) error {
	snapshot := map[string]entity.ManufacturingOrder{}
	for k, v := range r.orders.orders {
		snapshot[k] = v.Clone()
	}
	if err := fn(r.orders, r.products, r.inventory); err != nil {
		r.orders.orders = snapshot
		r.rollbacks++
		return err
	}
	r.commits++
	return nil
}

// ── puertos externos ─────────────────────────────────────────────────────────

type fakeSuggester struct {
	resp        *dto.AIFormulaSuggestionDTO
	err         error
	hadDeadline bool
	materials   []*entity.Product
}

func (s *fakeSuggester) SuggestFormula(ctx context.Context, _ dto.FormulaSuggestionRequest, materials []*entity.Product) (*dto.AIFormulaSuggestionDTO, error) {
	_, s.hadDeadline = ctx.Deadline()
	s.materials = materials
	return s.resp, s.err
}

type fakeGenerator struct{ got ports.BatchSheet }

func (g *fakeGenerator) GenerateBatchSheet(_ context.Context, sheet ports.BatchSheet) ([]byte, error) {
	g.got = sheet
	return []byte("%PDF-1.4"), nil
}

// ── fixtures ─────────────────────────────────────────────────────────────────

const companyID = "company-1"

func catalog() *fakeProductRepo {
	return &fakeProductRepo{products: []*entity.Product{
		{ID: "oil", CompanyID: companyID, Name: "Oud Oil", Category: entity.ProductCategoryRawMaterial, BaseUnit: entity.BaseUnitGram, Density: d("0.9"), UnitCost: d("0.5")},
		{ID: "eth", CompanyID: companyID, Name: "Perfumer's Ethanol", Category: entity.ProductCategoryRawMaterial, BaseUnit: entity.BaseUnitMl, Density: d("0.79"), UnitCost: d("0.01")},
		{ID: "wat", CompanyID: companyID, Name: "DI Water", Category: entity.ProductCategoryRawMaterial, BaseUnit: entity.BaseUnitMl, Density: d("1"), UnitCost: d("0.001")},
		{ID: "bottle", CompanyID: companyID, Name: "Frasco 50ml", Category: entity.ProductCategoryPackaging, BaseUnit: entity.BaseUnitPiece, UnitCost: d("0.25")},
	}}
}

// stock suficiente en b1 para validRequest (100 × 50 ml).
func stockedInventory() *fakeInventoryRepo {
	return &fakeInventoryRepo{levels: []*entity.InventoryLevel{
		{ProductID: "oil", BranchID: "b1", Quantity: d("900")},
		{ProductID: "eth", BranchID: "b1", Quantity: d("4000")},
		{ProductID: "wat", BranchID: "b1", Quantity: d("250")},
		{ProductID: "bottle", BranchID: "b1", Quantity: d("100")},
	}}
}

func validRequest() dto.OrderRequest {
	mfgDate := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	return dto.OrderRequest{
		ProductName:       "Oud Royale",
		ManufacturingType: entity.ManufacturingTypeInternal,
		Concentration:     entity.ConcentrationEDP,
		BottleSizeMl:      d("50"),
		UnitsRequested:    100,
		BranchID:          "b1",
		ManufacturingDate: &mfgDate,
		Formula: []entity.FormulaLine{
			{MaterialID: "oil", MaterialName: "Oud Oil", Percentage: d("20")},
			{MaterialID: "eth", MaterialName: "Perfumer's Ethanol", Percentage: d("75")},
			{MaterialID: "wat", MaterialName: "DI Water", Percentage: d("5")},
		},
		ProcessLoss:    entity.ProcessLoss{MixingLossPct: d("2"), FiltrationLossPct: d("1"), FillingLossPct: d("1")},
		PackagingItems: []entity.PackagingItem{{ProductID: "bottle", Name: "Frasco 50ml", QtyPerUnit: d("1")}},
	}
}

// storedOrder crea una orden persistida a partir de validRequest en el estado dado.
func storedOrder(id string, status entity.OrderStatus) entity.ManufacturingOrder {
	o := entity.ManufacturingOrder{ID: id, CompanyID: companyID, BatchCode: "BATCH-1", Status: status}
	if err := applyRequest(&o, validRequest()); err != nil {
		panic(err)
	}
	return o
}
