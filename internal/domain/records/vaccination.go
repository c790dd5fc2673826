package records

import "time"

type Vaccination struct {
	ID    string
	PetID string

	Name        string
	DateGiven   time.Time
	NextDueDate *time.Time

	Veterinarian *string
	Notes        *string
}

// Overdue: tiene próxima dosis y ya pasó.
func (v Vaccination) Overdue(now time.Time) bool {
	return v.NextDueDate != nil && v.NextDueDate.Before(now)
}
