package manufacturing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Perfumeria-api/internal/domain"
	"github.com/jhoicas/Perfumeria-api/internal/domain/entity"
)

func TestBatchSheet_Generate(t *testing.T) {
	o := storedOrder("MO-20261019-001", entity.OrderStatusInProgress)
	planning := NewPlanningUseCase(newFakeOrderRepo(o), catalog(), stockedInventory(), testSettings())
	branches := &fakeBranchRepo{branches: []*entity.Branch{{ID: "b1", CompanyID: companyID, Name: "Planta Shuwaikh"}}}
	gen := &fakeGenerator{}
	uc := NewBatchSheetUseCase(planning, branches, gen)
	uc.now = func() time.Time { return fixedNow }

	pdf, filename, err := uc.Generate(context.Background(), companyID, o.ID)

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), pdf)
	assert.Equal(t, "MO-20261019-001_BATCH-1.pdf", filename)
	assert.Equal(t, "Planta Shuwaikh", gen.got.BranchName)
	assert.Equal(t, fixedNow, gen.got.GeneratedAt)
	require.NotNil(t, gen.got.Plan)
	assert.Len(t, gen.got.Plan.Materials, 3)
	assert.Equal(t, o.ID, gen.got.Order.ID)
}

func TestBatchSheet_OrdenInexistente(t *testing.T) {
	planning := NewPlanningUseCase(newFakeOrderRepo(), catalog(), stockedInventory(), testSettings())
	uc := NewBatchSheetUseCase(planning, &fakeBranchRepo{}, &fakeGenerator{})

	_, _, err := uc.Generate(context.Background(), companyID, "MO-NOPE")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
