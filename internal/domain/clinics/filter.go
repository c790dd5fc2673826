package clinics

import (
	"sort"
	"strings"
)

type Filter struct {
	EmergencyOnly bool
	// Query busca (sin distinguir mayúsculas) en nombre, código postal y dirección.
	Query string
}

// Apply filtra y ordena por distancia ascendente. Sin distancia cuenta como 0.
func Apply(items []Clinic, f Filter) []Clinic {
	q := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]Clinic, 0, len(items))
	for _, c := range items {
		if f.EmergencyOnly && !c.IsEmergency {
			continue
		}
		if q != "" && !matches(c, q) {
			continue
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return distanceOf(out[i]) < distanceOf(out[j])
	})
	return out
}

func matches(c Clinic, q string) bool {
	return strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(strings.ToLower(c.Postcode), q) ||
		strings.Contains(strings.ToLower(c.Address), q)
}

func distanceOf(c Clinic) float64 {
	if c.Distance == nil {
		return 0
	}
	return *c.Distance
}
