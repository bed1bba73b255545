package repository

import "github.com/jhoicas/Perfumeria-api/internal/domain/entity"

// OrderFilter filtros opcionales del listado de órdenes. Status vacío = todos.
type OrderFilter struct {
	Status entity.OrderStatus
	Search string // coincidencia parcial sobre producto o lote
}

// ManufacturingOrderRepository define el puerto de persistencia para órdenes de fabricación (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si la orden no existe.
type ManufacturingOrderRepository interface {
	Create(order *entity.ManufacturingOrder) error
	GetByID(id string) (*entity.ManufacturingOrder, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); usar dentro de una transacción.
	GetForUpdate(id string) (*entity.ManufacturingOrder, error)
	Update(order *entity.ManufacturingOrder) error
	ListByCompany(companyID string, filter OrderFilter, limit, offset int) ([]*entity.ManufacturingOrder, error)
	Delete(id string) error
	// LastIDWithPrefix último ID emitido con el prefijo dado (ej. MO-20260101-); vacío si no hay.
	LastIDWithPrefix(prefix string) (string, error)
}
