package devapi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pet-health-uk/internal/domain/symptoms"
)

func TestTriage(t *testing.T) {
	cases := []struct {
		text string
		sev  symptoms.Severity
		seek bool
	}{
		{"She had a fit this morning", symptoms.SeverityEmergency, true},
		{"Ate a whole bar of CHOCOLATE", symptoms.SeverityEmergency, true},
		{"struggling to breathe", symptoms.SeverityEmergency, true},
		{"vomiting twice today", symptoms.SeverityModerate, false},
		{"limping on the back leg", symptoms.SeverityModerate, false},
		{"the new food is a real benefit", symptoms.SeverityMild, false},
		{"scratching a bit", symptoms.SeverityMild, false},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			got := triage(tc.text)
			assert.Equal(t, tc.sev, got.Severity)
			assert.Equal(t, tc.seek, got.SeekVet)
			assert.NotEmpty(t, got.Recommendations)
		})
	}
}
