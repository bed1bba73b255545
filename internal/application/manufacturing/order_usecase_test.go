package manufacturing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Perfumeria-api/internal/application/dto"
	"github.com/jhoicas/Perfumeria-api/internal/domain"
	"github.com/jhoicas/Perfumeria-api/internal/domain/entity"
	"github.com/jhoicas/Perfumeria-api/internal/domain/repository"
)

func newOrderUC(repo *fakeOrderRepo) *OrderUseCase {
	uc := NewOrderUseCase(repo, catalog(), testSettings(), testLogger())
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func TestOrderCreate_AsignaIDLoteYDerivados(t *testing.T) {
	repo := newFakeOrderRepo()
	uc := newOrderUC(repo)

	out, err := uc.Create(companyID, validRequest())

	require.NoError(t, err)
	assert.Equal(t, "MO-20261019-001", out.ID)
	assert.Equal(t, "BATCH-1792401300000", out.BatchCode)
	assert.Equal(t, entity.OrderStatusDraft, out.Status)
	assert.True(t, d("5000").Equal(out.Yield.TheoreticalMl))
	assert.True(t, d("4802.49").Equal(out.Yield.ExpectedMl))
	assert.Equal(t, 96, out.Yield.ExpectedUnits)
	// oil 900 g × 0.5 + eth 3750 ml × 0.01 + wat 250 ml × 0.001
	assert.True(t, d("487.75").Equal(out.Costs.Materials), out.Costs.Materials.String())
	assert.True(t, d("25").Equal(out.Costs.Packaging))
	assert.True(t, d("512.75").Equal(out.Costs.Total))
	for _, l := range out.Formula {
		assert.NotEmpty(t, l.ID)
	}
	assert.Equal(t, entity.IngredientAromaOil, out.Formula[0].Kind, "tipo inferido por nombre")
	assert.Contains(t, repo.orders, out.ID)
}

func TestOrderCreate_SecuenciaDelDia(t *testing.T) {
	repo := newFakeOrderRepo(
		entity.ManufacturingOrder{ID: "MO-20261019-004", CompanyID: companyID},
		entity.ManufacturingOrder{ID: "MO-20261018-020", CompanyID: companyID},
	)
	out, err := newOrderUC(repo).Create(companyID, validRequest())
	require.NoError(t, err)
	assert.Equal(t, "MO-20261019-005", out.ID)
}

func TestOrderCreate_ReintentaAnteDuplicado(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.createErrs = []error{domain.ErrDuplicate}

	out, err := newOrderUC(repo).Create(companyID, validRequest())

	require.NoError(t, err)
	assert.Equal(t, "MO-20261019-001", out.ID)
}

func TestOrderCreate_AgotaReintentos(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.createErrs = []error{domain.ErrDuplicate, domain.ErrDuplicate, domain.ErrDuplicate}

	_, err := newOrderUC(repo).Create(companyID, validRequest())

	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Empty(t, repo.orders)
}

func TestOrderCreate_TipoInvalido(t *testing.T) {
	req := validRequest()
	req.ManufacturingType = "OUTSOURCED"
	_, err := newOrderUC(newFakeOrderRepo()).Create(companyID, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderCreate_BorradorIncompletoSeGuarda(t *testing.T) {
	out, err := newOrderUC(newFakeOrderRepo()).Create(companyID, dto.OrderRequest{})
	require.NoError(t, err, "un borrador vacío es válido para guardar")
	assert.Equal(t, entity.ManufacturingTypeInternal, out.ManufacturingType)
	assert.Equal(t, 0, out.Yield.ExpectedUnits)
}

func TestOrderGetByID_OtraEmpresa(t *testing.T) {
	o := storedOrder("MO-20261019-001", entity.OrderStatusDraft)
	o.CompanyID = "otra"
	_, err := newOrderUC(newFakeOrderRepo(o)).GetByID(companyID, o.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = newOrderUC(newFakeOrderRepo()).GetByID(companyID, "MO-X")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderUpdate_RecalculaYConservaIdentidad(t *testing.T) {
	o := storedOrder("MO-20261019-001", entity.OrderStatusQC)
	repo := newFakeOrderRepo(o)
	req := validRequest()
	req.UnitsRequested = 200
	actual := d("9000")
	req.ActualMl = &actual

	out, err := newOrderUC(repo).Update(companyID, o.ID, req)

	require.NoError(t, err)
	assert.Equal(t, o.ID, out.ID)
	assert.Equal(t, "BATCH-1", out.BatchCode)
	assert.Equal(t, entity.OrderStatusQC, out.Status, "el estado no cambia por Update")
	assert.True(t, d("10000").Equal(out.Yield.TheoreticalMl))
	assert.True(t, d("90").Equal(out.Yield.YieldPercentage))
	assert.Equal(t, fixedNow, repo.orders[o.ID].UpdatedAt)
}

func TestOrderUpdate_CerradaEsSoloLectura(t *testing.T) {
	o := storedOrder("MO-20261019-001", entity.OrderStatusClosed)
	_, err := newOrderUC(newFakeOrderRepo(o)).Update(companyID, o.ID, validRequest())
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestOrderDelete(t *testing.T) {
	draft := storedOrder("MO-20261019-001", entity.OrderStatusDraft)
	started := storedOrder("MO-20261019-002", entity.OrderStatusInProgress)
	repo := newFakeOrderRepo(draft, started)
	uc := newOrderUC(repo)

	assert.ErrorIs(t, uc.Delete(companyID, started.ID), domain.ErrConflict)
	require.NoError(t, uc.Delete(companyID, draft.ID))
	assert.NotContains(t, repo.orders, draft.ID)
	assert.Contains(t, repo.orders, started.ID)
}

func TestOrderList_FiltroPorEstado(t *testing.T) {
	repo := newFakeOrderRepo(
		storedOrder("MO-20261019-001", entity.OrderStatusDraft),
		storedOrder("MO-20261019-002", entity.OrderStatusQC),
	)
	uc := newOrderUC(repo)

	out, err := uc.List(companyID, repository.OrderFilter{Status: entity.OrderStatusQC}, 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "MO-20261019-002", out.Items[0].ID)

	_, err = uc.List(companyID, repository.OrderFilter{Status: "BOGUS"}, 20, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderValidate(t *testing.T) {
	o := storedOrder("MO-20261019-001", entity.OrderStatusDraft)
	o.ProductName = ""
	out, err := newOrderUC(newFakeOrderRepo(o)).Validate(companyID, o.ID)

	require.NoError(t, err)
	assert.False(t, out.Valid)
	assert.Contains(t, out.Errors, "productName")
	assert.Len(t, out.Errors, 1)
}
