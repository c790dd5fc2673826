package pets

import (
	"fmt"
	"strings"
	"time"
)

// Species define las especies soportadas (enum cerrado).
type Species string

const (
	SpeciesDog       Species = "dog"
	SpeciesCat       Species = "cat"
	SpeciesRabbit    Species = "rabbit"
	SpeciesGuineaPig Species = "guinea_pig"
	SpeciesHamster   Species = "hamster"
	SpeciesBird      Species = "bird"
	SpeciesReptile   Species = "reptile"
	SpeciesOther     Species = "other"
)

// AllSpecies en orden de presentación.
var AllSpecies = []Species{
	SpeciesDog,
	SpeciesCat,
	SpeciesRabbit,
	SpeciesGuineaPig,
	SpeciesHamster,
	SpeciesBird,
	SpeciesReptile,
	SpeciesOther,
}

func (s Species) Valid() bool {
	for _, v := range AllSpecies {
		if s == v {
			return true
		}
	}
	return false
}

// ParseSpecies acepta el valor canónico o el nombre de pantalla ("Guinea Pig").
func ParseSpecies(s string) (Species, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	sp := Species(norm)
	if !sp.Valid() {
		return "", fmt.Errorf("unknown species %q", s)
	}
	return sp, nil
}

// Pet representa el perfil de una mascota guardado en la sesión local.
type Pet struct {
	ID string

	Name    string
	Species Species
	Breed   string

	DateOfBirth time.Time

	Weight          *float64 // kg
	MicrochipNumber *string
	Notes           *string
	ImageData       []byte
}

// Age devuelve la edad para mostrar: "3 years", "5 months" o "< 1 month".
func (p Pet) Age(now time.Time) string {
	years, months := elapsed(p.DateOfBirth, now)
	switch {
	case years > 0:
		return plural(years, "year")
	case months > 0:
		return plural(months, "month")
	default:
		return "< 1 month"
	}
}

// elapsed cuenta años y meses completos entre from y to.
func elapsed(from, to time.Time) (years, months int) {
	if !to.After(from) {
		return 0, 0
	}
	total := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		total--
	}
	if total < 0 {
		total = 0
	}
	return total / 12, total % 12
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
