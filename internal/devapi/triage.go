package devapi

import (
	"strings"

	"pet-health-uk/internal/domain/symptoms"
)

// Palabras que por sí solas justifican ir al veterinario ya.
var redFlags = []string{
	"breathing", "breathe", "collapse", "seizure", "fit", "unconscious",
	"bleeding", "blood", "poison", "toxic", "chocolate", "bloat", "blue gums",
}

var moderateSigns = []string{
	"vomit", "diarrh", "limp", "letharg", "not eating", "off food", "cough", "swelling", "hair loss",
}

type triageResult struct {
	Severity        symptoms.Severity
	SeekVet         bool
	Recommendations []string
}

// triage clasifica texto libre por palabras clave. Es orientativo: no reemplaza al veterinario.
func triage(text string) triageResult {
	t := " " + strings.ToLower(text) + " "

	if containsAny(t, redFlags) {
		return triageResult{
			Severity: symptoms.SeverityEmergency,
			SeekVet:  true,
			Recommendations: []string{
				"Contact your nearest emergency vet now",
				"Keep your pet calm and warm while you travel",
				"Do not give human medication",
			},
		}
	}
	if containsAny(t, moderateSigns) {
		return triageResult{
			Severity: symptoms.SeverityModerate,
			Recommendations: []string{
				"Monitor your pet closely for the next 24 hours",
				"Make sure fresh water is always available",
				"Book a consultation if things do not improve",
			},
		}
	}
	return triageResult{
		Severity: symptoms.SeverityMild,
		Recommendations: []string{
			"Keep an eye on your pet and note any changes",
		},
	}
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		// "fit" suelto, no dentro de "benefit"
		if len(w) <= 3 {
			if strings.Contains(text, " "+w+" ") {
				return true
			}
			continue
		}
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
