package appointments

import (
	"sort"
	"time"
)

// Upcoming filtra las próximas y ordena por fecha ascendente.
func Upcoming(items []Appointment, now time.Time) []Appointment {
	out := make([]Appointment, 0, len(items))
	for _, a := range items {
		if a.IsUpcoming(now) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DateTime.Before(out[j].DateTime)
	})
	return out
}

// Past filtra las pasadas y ordena por fecha descendente (más reciente primero).
func Past(items []Appointment, now time.Time) []Appointment {
	out := make([]Appointment, 0, len(items))
	for _, a := range items {
		if a.IsPast(now) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DateTime.After(out[j].DateTime)
	})
	return out
}
