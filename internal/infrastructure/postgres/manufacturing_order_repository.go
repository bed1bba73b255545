package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Perfumeria-api/internal/domain"
	"github.com/jhoicas/Perfumeria-api/internal/domain/entity"
	"github.com/jhoicas/Perfumeria-api/internal/domain/repository"
)

var _ repository.ManufacturingOrderRepository = (*ManufacturingOrderRepo)(nil)

// Las partes anidadas (fórmula, pérdidas, empaque, distribución, costos, rendimiento, QC)
// se guardan como JSONB; se leen y escriben siempre completas junto con la orden.
const orderColumns = `
	id, company_id, batch_code, product_name, manufacturing_type, concentration,
	responsible_employee_id, bottle_size_ml, units_requested, branch_id,
	manufacturing_date, expiry_date, due_at,
	formula, process_loss, maceration_days, chilling, filtration, qc,
	packaging_items, distribution, costs, yield, status, created_at, updated_at`

// ManufacturingOrderRepo implementación de ManufacturingOrderRepository sobre PostgreSQL (pool o tx).
type ManufacturingOrderRepo struct {
	q Querier
}

// NewManufacturingOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewManufacturingOrderRepository(q Querier) *ManufacturingOrderRepo {
	return &ManufacturingOrderRepo{q: q}
}

// Create persiste una nueva orden. Un ID repetido devuelve domain.ErrDuplicate.
func (r *ManufacturingOrderRepo) Create(o *entity.ManufacturingOrder) error {
	doc, err := encodeOrderDocs(o)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO manufacturing_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19,
		        $20, $21, $22, $23, $24, $25, $26)`
	_, err = r.q.Exec(context.Background(), query,
		o.ID, o.CompanyID, o.BatchCode, o.ProductName, string(o.ManufacturingType), string(o.Concentration),
		o.ResponsibleEmployeeID, o.BottleSizeMl, o.UnitsRequested, o.BranchID,
		o.ManufacturingDate, o.ExpiryDate, o.DueAt,
		doc.formula, doc.processLoss, o.MacerationDays, doc.chilling, doc.filtration, doc.qc,
		doc.packaging, doc.distribution, doc.costs, doc.yield, string(o.Status), o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert manufacturing order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *ManufacturingOrderRepo) GetByID(id string) (*entity.ManufacturingOrder, error) {
	o, err := scanOrder(r.q.QueryRow(context.Background(),
		`SELECT `+orderColumns+` FROM manufacturing_orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get manufacturing order: %w", err)
	}
	return o, nil
}

// GetForUpdate obtiene la orden y bloquea la fila para update (SELECT FOR UPDATE).
func (r *ManufacturingOrderRepo) GetForUpdate(id string) (*entity.ManufacturingOrder, error) {
	o, err := scanOrder(r.q.QueryRow(context.Background(),
		`SELECT `+orderColumns+` FROM manufacturing_orders WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get manufacturing order for update: %w", err)
	}
	return o, nil
}

// Update reescribe la orden completa (salvo id, company_id y created_at).
func (r *ManufacturingOrderRepo) Update(o *entity.ManufacturingOrder) error {
	doc, err := encodeOrderDocs(o)
	if err != nil {
		return err
	}
	query := `
		UPDATE manufacturing_orders SET
			batch_code = $2, product_name = $3, manufacturing_type = $4, concentration = $5,
			responsible_employee_id = $6, bottle_size_ml = $7, units_requested = $8, branch_id = $9,
			manufacturing_date = $10, expiry_date = $11, due_at = $12,
			formula = $13, process_loss = $14, maceration_days = $15, chilling = $16, filtration = $17, qc = $18,
			packaging_items = $19, distribution = $20, costs = $21, yield = $22, status = $23, updated_at = $24
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		o.ID, o.BatchCode, o.ProductName, string(o.ManufacturingType), string(o.Concentration),
		o.ResponsibleEmployeeID, o.BottleSizeMl, o.UnitsRequested, o.BranchID,
		o.ManufacturingDate, o.ExpiryDate, o.DueAt,
		doc.formula, doc.processLoss, o.MacerationDays, doc.chilling, doc.filtration, doc.qc,
		doc.packaging, doc.distribution, doc.costs, doc.yield, string(o.Status), o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update manufacturing order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista órdenes por empresa, más recientes primero.
func (r *ManufacturingOrderRepo) ListByCompany(companyID string, filter repository.OrderFilter, limit, offset int) ([]*entity.ManufacturingOrder, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM manufacturing_orders
		WHERE company_id = $1
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR id ILIKE $3 OR product_name ILIKE $3 OR batch_code ILIKE $3)
		ORDER BY created_at DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, companyID, string(filter.Status), likePattern(filter.Search), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list manufacturing orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.ManufacturingOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan manufacturing order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Delete elimina una orden por ID.
func (r *ManufacturingOrderRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM manufacturing_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete manufacturing order: %w", err)
	}
	return nil
}

// LastIDWithPrefix devuelve el mayor ID con el prefijo; por longitud primero para que -1000 supere a -999.
func (r *ManufacturingOrderRepo) LastIDWithPrefix(prefix string) (string, error) {
	var id string
	err := r.q.QueryRow(context.Background(), `
		SELECT id FROM manufacturing_orders
		WHERE id LIKE $1 || '%'
		ORDER BY length(id) DESC, id DESC
		LIMIT 1`, prefix).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last manufacturing order id: %w", err)
	}
	return id, nil
}

type orderDocs struct {
	formula, processLoss, packaging, distribution, costs, yield []byte
	chilling, filtration, qc                                    []byte // nil = NULL
}

func encodeOrderDocs(o *entity.ManufacturingOrder) (orderDocs, error) {
	var d orderDocs
	var err error
	enc := func(v any) []byte {
		if err != nil {
			return nil
		}
		var b []byte
		b, err = json.Marshal(v)
		return b
	}
	d.formula = enc(nonNil(o.Formula))
	d.processLoss = enc(o.ProcessLoss)
	d.packaging = enc(nonNil(o.PackagingItems))
	d.distribution = enc(nonNil(o.Distribution))
	d.costs = enc(o.Costs)
	d.yield = enc(o.Yield)
	if o.Chilling != nil {
		d.chilling = enc(o.Chilling)
	}
	if o.Filtration != nil {
		d.filtration = enc(o.Filtration)
	}
	if o.QC != nil {
		d.qc = enc(o.QC)
	}
	if err != nil {
		return orderDocs{}, fmt.Errorf("encode manufacturing order: %w", err)
	}
	return d, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func scanOrder(row pgx.Row) (*entity.ManufacturingOrder, error) {
	var (
		o                   entity.ManufacturingOrder
		mType, conc, status string
		doc                 orderDocs
	)
	err := row.Scan(
		&o.ID, &o.CompanyID, &o.BatchCode, &o.ProductName, &mType, &conc,
		&o.ResponsibleEmployeeID, &o.BottleSizeMl, &o.UnitsRequested, &o.BranchID,
		&o.ManufacturingDate, &o.ExpiryDate, &o.DueAt,
		&doc.formula, &doc.processLoss, &o.MacerationDays, &doc.chilling, &doc.filtration, &doc.qc,
		&doc.packaging, &doc.distribution, &doc.costs, &doc.yield, &status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.ManufacturingType = entity.ManufacturingType(mType)
	o.Concentration = entity.Concentration(conc)
	o.Status = entity.OrderStatus(status)

	parts := []struct {
		raw []byte
		dst any
	}{
		{doc.formula, &o.Formula},
		{doc.processLoss, &o.ProcessLoss},
		{doc.packaging, &o.PackagingItems},
		{doc.distribution, &o.Distribution},
		{doc.costs, &o.Costs},
		{doc.yield, &o.Yield},
		{doc.chilling, &o.Chilling},
		{doc.filtration, &o.Filtration},
		{doc.qc, &o.QC},
	}
	for _, p := range parts {
		if len(p.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(p.raw, p.dst); err != nil {
			return nil, fmt.Errorf("decode manufacturing order %s: %w", o.ID, err)
		}
	}
	return &o, nil
}
