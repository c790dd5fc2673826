package appointments

import (
	"errors"
	"fmt"
)

var ErrInvalidTransition = errors.New("invalid status transition")

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

func ParseStatus(s string) (Status, error) {
	st := Status(normalize(s))
	switch st {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return st, nil
	}
	return "", fmt.Errorf("unknown appointment status %q", s)
}

// Terminal: no hay transición posible desde este estado.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// CanTransition valida scheduled -> {completed, cancelled, no_show}.
// Quedarse en el mismo estado siempre es válido (idempotente).
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	if from != StatusScheduled {
		return false
	}
	return to == StatusCompleted || to == StatusCancelled || to == StatusNoShow
}

// Transition devuelve la cita con el nuevo estado o ErrInvalidTransition.
func (a Appointment) Transition(to Status) (Appointment, error) {
	if !CanTransition(a.Status, to) {
		return a, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, to)
	}
	a.Status = to
	return a, nil
}
