package entity

import "time"

// Branch representa una sucursal o planta donde se almacena inventario y se fabrica.
type Branch struct {
	ID        string
	CompanyID string
	Name      string
	Code      string
	Address   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
