package users

import (
	"strings"
	"time"
)

// User es el dueño logueado. Solo existe uno (o ninguno) por sesión.
type User struct {
	ID          string
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Postcode    string

	MemberSince        time.Time
	SubscriptionActive bool
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
