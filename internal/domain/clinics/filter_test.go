package clinics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func dist(v float64) *float64 { return &v }

func names(items []Clinic) []string {
	out := make([]string, 0, len(items))
	for _, c := range items {
		out = append(out, c.Name)
	}
	return out
}

var sample = []Clinic{
	{Name: "Central", Address: "123 High Street", Postcode: "SW1A 1AA", IsEmergency: true, Distance: dist(0.5)},
	{Name: "North", Address: "45 Park Lane", Postcode: "N1 9AB", Distance: dist(2.3)},
	{Name: "South", Address: "78 Bridge Road", Postcode: "SE1 2BN", IsEmergency: true, Distance: dist(1.8)},
	{Name: "Unknown distance", Address: "1 Nowhere", Postcode: "E1 1AA"},
}

func TestApply_SortsByDistance_MissingFirst(t *testing.T) {
	assert.Equal(t, []string{"Unknown distance", "Central", "South", "North"}, names(Apply(sample, Filter{})))
}

func TestApply_EmergencyOnly(t *testing.T) {
	assert.Equal(t, []string{"Central", "South"}, names(Apply(sample, Filter{EmergencyOnly: true})))
}

func TestApply_QueryMatchesNamePostcodeOrAddress(t *testing.T) {
	assert.Equal(t, []string{"North"}, names(Apply(sample, Filter{Query: "n1 9"})))
	assert.Equal(t, []string{"South"}, names(Apply(sample, Filter{Query: "bridge"})))
	assert.Equal(t, []string{"Central"}, names(Apply(sample, Filter{Query: "CENT", EmergencyOnly: true})))
	assert.Empty(t, Apply(sample, Filter{Query: "zzz"}))
}
