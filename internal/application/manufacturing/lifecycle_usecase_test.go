package manufacturing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Perfumeria-api/internal/domain"
	"github.com/jhoicas/Perfumeria-api/internal/domain/entity"
	mfg "github.com/jhoicas/Perfumeria-api/internal/domain/manufacturing"
)

func newLifecycleUC(orders *fakeOrderRepo, inv *fakeInventoryRepo, enforce bool) (*LifecycleUseCase, *fakeTxRunner) {
	tx := &fakeTxRunner{orders: orders, products: catalog(), inventory: inv}
	settings := testSettings()
	settings.EnforceStockOnStart = enforce
	uc := NewLifecycleUseCase(tx, settings, testLogger())
	uc.now = func() time.Time { return fixedNow }
	return uc, tx
}

func TestAdvance_DraftAInProgress(t *testing.T) {
	o := storedOrder("MO-20261019-001", entity.OrderStatusDraft)
	o.ManufacturingDate = nil
	repo := newFakeOrderRepo(o)
	uc, tx := newLifecycleUC(repo, stockedInventory(), false)

	out, err := uc.Advance(context.Background(), companyID, o.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDraft, out.From)
	assert.Equal(t, entity.OrderStatusInProgress, out.To)
	assert.True(t, out.StampedManufacturingDate)
	assert.Equal(t, []string{o.ID}, repo.locked, "la fila se bloquea antes de avanzar")
	assert.Equal(t, 1, tx.commits)

	stored := repo.orders[o.ID]
	assert.Equal(t, entity.OrderStatusInProgress, stored.Status)
	require.NotNil(t, stored.ManufacturingDate)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), *stored.ManufacturingDate)
	assert.Equal(t, 96, stored.Yield.ExpectedUnits)
}

func TestAdvance_RecorreTodoElCiclo(t *testing.T) {
	o := storedOrder("MO-20261019-001", entity.OrderStatusDraft)
	repo := newFakeOrderRepo(o)
	uc, _ := newLifecycleUC(repo, stockedInventory(), true)

	var visited []entity.OrderStatus
	for i := 0; i < 6; i++ {
		out, err := uc.Advance(context.Background(), companyID, o.ID)
		require.NoError(t, err)
		visited = append(visited, out.To)
	}
	assert.Equal(t, []entity.OrderStatus{
		entity.OrderStatusInProgress, entity.OrderStatusMacerating, entity.OrderStatusQC,
		entity.OrderStatusPackaging, entity.OrderStatusDone, entity.OrderStatusClosed,
	}, visited)

	_, err := uc.Advance(context.Background(), companyID, o.ID)
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	assert.Equal(t, entity.OrderStatusClosed, repo.orders[o.ID].Status)
}

func TestAdvance_InvalidaDevuelveMapaDeErrores(t *testing.T) {
	o := storedOrder("MO-20261019-001", entity.OrderStatusMacerating)
	o.BottleSizeMl = d("0")
	repo := newFakeOrderRepo(o)
	uc, tx := newLifecycleUC(repo, stockedInventory(), false)

	_, err := uc.Advance(context.Background(), companyID, o.ID)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	var te *mfg.TransitionError
	require.True(t, errors.As(err, &te))
	assert.Contains(t, te.Errors, mfg.FieldBottleSizeMl)
	assert.Equal(t, entity.OrderStatusMacerating, repo.orders[o.ID].Status)
	assert.Equal(t, 1, tx.rollbacks)
}

func TestAdvance_StockInsuficienteConControlActivo(t *testing.T) {
	o := storedOrder("MO-20261019-001", entity.OrderStatusDraft)
	o.ManufacturingDate = nil
	repo := newFakeOrderRepo(o)
	inv := stockedInventory()
	inv.levels[0].Quantity = d("899")
	uc, _ := newLifecycleUC(repo, inv, true)

	_, err := uc.Advance(context.Background(), companyID, o.ID)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Oud Oil")
	stored := repo.orders[o.ID]
	assert.Equal(t, entity.OrderStatusDraft, stored.Status)
	assert.Nil(t, stored.ManufacturingDate, "el rechazo no deja la fecha fijada")
}

func TestAdvance_StockInsuficienteSoloInformativo(t *testing.T) {
	o := storedOrder("MO-20261019-001", entity.OrderStatusDraft)
	repo := newFakeOrderRepo(o)
	uc, _ := newLifecycleUC(repo, &fakeInventoryRepo{}, false)

	out, err := uc.Advance(context.Background(), companyID, o.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusInProgress, out.To)
}

func TestAdvance_SinSucursalConControlActivo(t *testing.T) {
	o := storedOrder("MO-20261019-001", entity.OrderStatusDraft)
	o.BranchID = ""
	uc, _ := newLifecycleUC(newFakeOrderRepo(o), stockedInventory(), true)

	_, err := uc.Advance(context.Background(), companyID, o.ID)

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "sucursal")
}

func TestAdvance_OrdenInexistenteOAjena(t *testing.T) {
	o := storedOrder("MO-20261019-001", entity.OrderStatusDraft)
	o.CompanyID = "otra"
	uc, _ := newLifecycleUC(newFakeOrderRepo(o), stockedInventory(), false)

	_, err := uc.Advance(context.Background(), companyID, o.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Advance(context.Background(), companyID, "MO-NOPE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
