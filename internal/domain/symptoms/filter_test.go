package symptoms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-health-uk/internal/domain/pets"
)

var catalog = []Category{
	{
		Name: "Digestive",
		Symptoms: []Symptom{
			{Name: "Vomiting", Description: "Throwing up food", ApplicableSpecies: []pets.Species{pets.SpeciesDog, pets.SpeciesCat}},
			{Name: "Loss of Appetite", Description: "Refusing to eat"},
		},
	},
	{
		Name: "Mobility",
		Symptoms: []Symptom{
			{Name: "Limping", Description: "Favouring one leg", ApplicableSpecies: []pets.Species{pets.SpeciesDog, pets.SpeciesCat, pets.SpeciesRabbit}},
		},
	},
}

func TestFilterBySpecies_DropsEmptyCategories(t *testing.T) {
	got := FilterBySpecies(catalog, pets.SpeciesHamster)
	require.Len(t, got, 1)
	assert.Equal(t, "Digestive", got[0].Name)
	require.Len(t, got[0].Symptoms, 1)
	assert.Equal(t, "Loss of Appetite", got[0].Symptoms[0].Name)

	// el catálogo original no se toca
	assert.Len(t, catalog[0].Symptoms, 2)
}

func TestFilterBySpecies_KeepsAllForDog(t *testing.T) {
	got := FilterBySpecies(catalog, pets.SpeciesDog)
	require.Len(t, got, 2)
	assert.Len(t, got[0].Symptoms, 2)
}

func TestSearch(t *testing.T) {
	got := Search(catalog, "LEG")
	require.Len(t, got, 1)
	assert.Equal(t, "Limping", got[0].Symptoms[0].Name)

	assert.Len(t, Search(catalog, "  "), 2)
	assert.Empty(t, Search(catalog, "sneezing"))
}
