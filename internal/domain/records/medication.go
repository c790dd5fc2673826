package records

import (
	"strings"
	"time"
)

type MedicationStatus string

const (
	MedicationActive    MedicationStatus = "active"
	MedicationCompleted MedicationStatus = "completed"
	MedicationStopped   MedicationStatus = "stopped"
)

type Medication struct {
	ID    string
	PetID string

	Name      string
	Dosage    string // "2 ml"
	Frequency string // texto libre: "every 12h"

	StartDate time.Time
	EndDate   *time.Time

	Status MedicationStatus
	Notes  *string
}

// IsActive: estado activo y sin fecha de fin, o con fin todavía no alcanzado.
func (m Medication) IsActive(now time.Time) bool {
	if MedicationStatus(strings.ToLower(string(m.Status))) != MedicationActive {
		return false
	}
	return m.EndDate == nil || !m.EndDate.Before(now)
}
