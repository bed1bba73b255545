package postgres

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Perfumeria-api/internal/domain/entity"
)

// fakeRow reproduce la fila que devolvería PostgreSQL para scanOrder.
type fakeRow struct{ values []any }

func (r fakeRow) Scan(dest ...any) error {
	for i, v := range r.values {
		switch p := dest[i].(type) {
		case *string:
			*p = v.(string)
		case *int:
			*p = v.(int)
		case *decimal.Decimal:
			*p = v.(decimal.Decimal)
		case **time.Time:
			if v != nil {
				t := v.(time.Time)
				*p = &t
			}
		case *time.Time:
			*p = v.(time.Time)
		case *[]byte:
			if v != nil {
				*p = v.([]byte)
			}
		}
	}
	return nil
}

func TestEncodeOrderDocs_ColumnasOpcionalesNulas(t *testing.T) {
	o := &entity.ManufacturingOrder{ID: "MO-20261019-001"}

	doc, err := encodeOrderDocs(o)

	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(doc.formula), "fórmula nil se guarda como arreglo vacío")
	assert.JSONEq(t, `[]`, string(doc.distribution))
	assert.Nil(t, doc.chilling)
	assert.Nil(t, doc.filtration)
	assert.Nil(t, doc.qc)
}

func TestScanOrder_DecodificaDocumentos(t *testing.T) {
	created := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	formula, _ := json.Marshal([]entity.FormulaLine{{ID: "l1", MaterialID: "oil", Percentage: decimal.NewFromInt(20)}})
	qc := []byte(`{"appearance":"ok","clarity":"Clear","odor_match":"Pass","result":"APPROVED"}`)
	row := fakeRow{values: []any{
		"MO-20261019-001", "c1", "BATCH-1", "Oud", "CONTRACT", "EDP_20",
		"emp-1", decimal.NewFromInt(50), 100, "b1",
		created, nil, nil,
		formula, []byte(`{"mixing_loss_pct":"2"}`), 14, nil, nil, qc,
		[]byte(`[]`), []byte(`[{"id":"d1","location_name":"Mall","units":100}]`), []byte(`{}`), []byte(`{"expected_units":96}`),
		"QC", created, created,
	}}

	o, err := scanOrder(row)

	require.NoError(t, err)
	assert.Equal(t, entity.ManufacturingTypeContract, o.ManufacturingType)
	assert.Equal(t, entity.OrderStatusQC, o.Status)
	require.NotNil(t, o.ManufacturingDate)
	assert.Nil(t, o.ExpiryDate)
	require.Len(t, o.Formula, 1)
	assert.True(t, decimal.NewFromInt(20).Equal(o.Formula[0].Percentage))
	assert.True(t, decimal.NewFromInt(2).Equal(o.ProcessLoss.MixingLossPct))
	assert.Nil(t, o.Chilling)
	require.NotNil(t, o.QC)
	assert.Equal(t, entity.QCResultApproved, o.QC.Result)
	assert.Equal(t, 100, o.Distribution[0].Units)
	assert.Equal(t, 96, o.Yield.ExpectedUnits)
	assert.Equal(t, 14, o.MacerationDays)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "", likePattern("   "))
	assert.Equal(t, "%oud%", likePattern(" oud "))
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_off"))
	assert.Equal(t, `%a\\b%`, likePattern(`a\b`))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("ERROR: duplicate key (SQLSTATE 23505)")))
}
