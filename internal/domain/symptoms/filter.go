package symptoms

import (
	"strings"

	"pet-health-uk/internal/domain/pets"
)

// FilterBySpecies deja solo los síntomas aplicables y descarta categorías vacías.
func FilterBySpecies(cats []Category, sp pets.Species) []Category {
	return filter(cats, func(s Symptom) bool { return s.AppliesTo(sp) })
}

// Search busca por nombre o descripción sin distinguir mayúsculas.
// Query vacía devuelve todo.
func Search(cats []Category, query string) []Category {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return cats
	}
	return filter(cats, func(s Symptom) bool {
		return strings.Contains(strings.ToLower(s.Name), q) ||
			strings.Contains(strings.ToLower(s.Description), q)
	})
}

func filter(cats []Category, keep func(Symptom) bool) []Category {
	out := make([]Category, 0, len(cats))
	for _, c := range cats {
		var kept []Symptom
		for _, s := range c.Symptoms {
			if keep(s) {
				kept = append(kept, s)
			}
		}
		if len(kept) == 0 {
			continue
		}
		c.Symptoms = kept
		out = append(out, c)
	}
	return out
}
