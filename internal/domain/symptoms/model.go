package symptoms

import "pet-health-uk/internal/domain/pets"

type Severity string

const (
	SeverityMild      Severity = "mild"
	SeverityModerate  Severity = "moderate"
	SeveritySevere    Severity = "severe"
	SeverityEmergency Severity = "emergency"
)

// Symptom es contenido de referencia, inmutable.
type Symptom struct {
	ID          string
	Name        string
	Description string

	PossibleCauses []string
	HomeAdvice     string
	Severity       Severity
	SeekVetIf      []string

	// Vacío = aplica a todas las especies.
	ApplicableSpecies []pets.Species
}

type Category struct {
	ID       string
	Name     string
	Icon     string
	Symptoms []Symptom
}

func (s Symptom) AppliesTo(sp pets.Species) bool {
	if len(s.ApplicableSpecies) == 0 {
		return true
	}
	for _, v := range s.ApplicableSpecies {
		if v == sp {
			return true
		}
	}
	return false
}
