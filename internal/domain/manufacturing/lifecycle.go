package manufacturing

import (
	"fmt"
	"time"

	"github.com/jhoicas/Perfumeria-api/internal/domain"
	"github.com/jhoicas/Perfumeria-api/internal/domain/entity"
)

// Cada estado tiene un único siguiente; CLOSED no aparece porque es terminal.
var nextStatus = map[entity.OrderStatus]entity.OrderStatus{
	entity.OrderStatusDraft:      entity.OrderStatusInProgress,
	entity.OrderStatusInProgress: entity.OrderStatusMacerating,
	entity.OrderStatusMacerating: entity.OrderStatusQC,
	entity.OrderStatusQC:         entity.OrderStatusPackaging,
	entity.OrderStatusPackaging:  entity.OrderStatusDone,
	entity.OrderStatusDone:       entity.OrderStatusClosed,
}

// NextStatus devuelve el estado siguiente; false si s es terminal o desconocido.
func NextStatus(s entity.OrderStatus) (entity.OrderStatus, bool) {
	next, ok := nextStatus[s]
	return next, ok
}

// Transition resultado de un avance aceptado.
type Transition struct {
	From  entity.OrderStatus
	To    entity.OrderStatus
	Order entity.ManufacturingOrder
	// StampedManufacturingDate true si el avance a IN_PROGRESS fijó la fecha de fabricación.
	StampedManufacturingDate bool
}

// TransitionError avance rechazado. Reason es domain.ErrIllegalTransition o domain.ErrValidation;
// en el segundo caso Errors trae el detalle por campo.
type TransitionError struct {
	From   entity.OrderStatus
	Reason error
	Errors ErrorMap
}

func (e *TransitionError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("avance desde %s rechazado: %v (%d campos)", e.From, e.Reason, len(e.Errors))
	}
	return fmt.Sprintf("avance desde %s rechazado: %v", e.From, e.Reason)
}

func (e *TransitionError) Unwrap() error { return e.Reason }

// Advance mueve la orden a su siguiente estado. No modifica la orden recibida: devuelve
// una copia avanzada o un *TransitionError, dejando el estado intacto.
//
// La validación se ejecuta aquí mismo sobre la orden candidata, no se confía en un flag
// del llamador. En DRAFT → IN_PROGRESS la fecha de fabricación vacía se fija al día UTC de
// now antes de validar.
func Advance(order entity.ManufacturingOrder, now time.Time) (Transition, error) {
	from := order.Status
	to, ok := NextStatus(from)
	if !ok {
		return Transition{}, &TransitionError{From: from, Reason: domain.ErrIllegalTransition}
	}

	candidate := order.Clone()
	stamped := false
	if from == entity.OrderStatusDraft && (candidate.ManufacturingDate == nil || candidate.ManufacturingDate.IsZero()) {
		day := truncateToDay(now)
		candidate.ManufacturingDate = &day
		stamped = true
	}

	if errs := Validate(&candidate); !errs.Valid() {
		return Transition{}, &TransitionError{From: from, Reason: domain.ErrValidation, Errors: errs}
	}

	candidate.Status = to
	return Transition{From: from, To: to, Order: candidate, StampedManufacturingDate: stamped}, nil
}

// truncateToDay fecha calendario UTC de t, a medianoche UTC.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
