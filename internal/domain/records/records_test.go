package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMedication_IsActive(t *testing.T) {
	now := time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	assert.True(t, Medication{Status: MedicationActive}.IsActive(now))
	assert.True(t, Medication{Status: "Active", EndDate: &tomorrow}.IsActive(now))
	assert.True(t, Medication{Status: MedicationActive, EndDate: &now}.IsActive(now))
	assert.False(t, Medication{Status: MedicationActive, EndDate: &yesterday}.IsActive(now))
	assert.False(t, Medication{Status: MedicationCompleted}.IsActive(now))
}

func TestVaccination_Overdue(t *testing.T) {
	now := time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC)
	due := now.Add(-time.Hour)

	assert.True(t, Vaccination{NextDueDate: &due}.Overdue(now))
	assert.False(t, Vaccination{}.Overdue(now))
}
