package appointments

import (
	"fmt"
	"strings"
	"time"
)

type Type string

const (
	TypeConsultation Type = "consultation"
	TypeVaccination  Type = "vaccination"
	TypeHealthCheck  Type = "health_check"
	TypeSurgery      Type = "surgery"
	TypeFollowUp     Type = "follow_up"
	TypeEmergency    Type = "emergency"
)

var AllTypes = []Type{
	TypeConsultation,
	TypeVaccination,
	TypeHealthCheck,
	TypeSurgery,
	TypeFollowUp,
	TypeEmergency,
}

func ParseType(s string) (Type, error) {
	t := Type(normalize(s))
	for _, v := range AllTypes {
		if t == v {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown appointment type %q", s)
}

// Appointment referencia mascota y clínica por id. PetName y ClinicName se copian
// al reservar y no se actualizan si luego cambia el nombre de la mascota.
type Appointment struct {
	ID string

	PetID   string
	PetName string

	ClinicID   string
	ClinicName string

	Type     Type
	DateTime time.Time
	Duration int // minutos
	Status   Status

	Notes        *string
	Veterinarian *string
}

// IsUpcoming: programada y estrictamente en el futuro.
func (a Appointment) IsUpcoming(now time.Time) bool {
	return a.Status == StatusScheduled && a.DateTime.After(now)
}

// IsPast: estrictamente en el pasado, sin mirar el estado.
// Una cita "scheduled" vencida aparece aquí aunque nadie la haya cerrado.
func (a Appointment) IsPast(now time.Time) bool {
	return a.DateTime.Before(now)
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}
