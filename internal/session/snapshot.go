package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"pet-health-uk/internal/domain/appointments"
	"pet-health-uk/internal/domain/pets"
	"pet-health-uk/internal/domain/users"
)

// Aggregate es todo lo que se persiste como una unidad: usuario + mascotas + citas.
type Aggregate struct {
	IsLoggedIn             bool
	HasCompletedOnboarding bool
	CurrentUser            *users.User
	Pets                   []pets.Pet
	Appointments           []appointments.Appointment
}

// Formato del blob. Keys en camelCase; opcionales omitidos cuando faltan.
type aggregateJSON struct {
	IsLoggedIn             bool              `json:"isLoggedIn"`
	HasCompletedOnboarding bool              `json:"hasCompletedOnboarding"`
	CurrentUser            *userJSON         `json:"currentUser,omitempty"`
	Pets                   []petJSON         `json:"pets"`
	Appointments           []appointmentJSON `json:"appointments"`
}

type userJSON struct {
	ID                 string    `json:"id"`
	FirstName          string    `json:"firstName"`
	LastName           string    `json:"lastName"`
	Email              string    `json:"email"`
	PhoneNumber        string    `json:"phoneNumber"`
	Postcode           string    `json:"postcode"`
	MemberSince        time.Time `json:"memberSince"`
	SubscriptionActive bool      `json:"subscriptionActive"`
}

type petJSON struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Species         pets.Species `json:"species"`
	Breed           string       `json:"breed"`
	DateOfBirth     time.Time    `json:"dateOfBirth"`
	Weight          *float64     `json:"weight,omitempty"`
	MicrochipNumber *string      `json:"microchipNumber,omitempty"`
	Notes           *string      `json:"notes,omitempty"`
	ImageData       []byte       `json:"imageData"` // null y "" vuelven distintos (nil / vacío)
}

type appointmentJSON struct {
	ID           string              `json:"id"`
	PetID        string              `json:"petId"`
	PetName      string              `json:"petName"`
	ClinicID     string              `json:"clinicId"`
	ClinicName   string              `json:"clinicName"`
	Type         appointments.Type   `json:"type"`
	DateTime     time.Time           `json:"dateTime"`
	Duration     int                 `json:"duration"`
	Status       appointments.Status `json:"status"`
	Notes        *string             `json:"notes,omitempty"`
	Veterinarian *string             `json:"veterinarian,omitempty"`
}

// EncodeAggregate serializa el agregado completo.
func EncodeAggregate(a Aggregate) ([]byte, error) {
	out := aggregateJSON{
		IsLoggedIn:             a.IsLoggedIn,
		HasCompletedOnboarding: a.HasCompletedOnboarding,
	}
	if a.CurrentUser != nil {
		u := a.CurrentUser
		out.CurrentUser = &userJSON{
			ID:                 u.ID,
			FirstName:          u.FirstName,
			LastName:           u.LastName,
			Email:              u.Email,
			PhoneNumber:        u.PhoneNumber,
			Postcode:           u.Postcode,
			MemberSince:        u.MemberSince,
			SubscriptionActive: u.SubscriptionActive,
		}
	}
	// nil se mantiene nil (=> null) para que el round-trip sea exacto.
	if a.Pets != nil {
		out.Pets = make([]petJSON, 0, len(a.Pets))
		for _, p := range a.Pets {
			out.Pets = append(out.Pets, petJSON{
				ID:              p.ID,
				Name:            p.Name,
				Species:         p.Species,
				Breed:           p.Breed,
				DateOfBirth:     p.DateOfBirth,
				Weight:          p.Weight,
				MicrochipNumber: p.MicrochipNumber,
				Notes:           p.Notes,
				ImageData:       p.ImageData,
			})
		}
	}
	if a.Appointments != nil {
		out.Appointments = make([]appointmentJSON, 0, len(a.Appointments))
		for _, ap := range a.Appointments {
			out.Appointments = append(out.Appointments, appointmentJSON{
				ID:           ap.ID,
				PetID:        ap.PetID,
				PetName:      ap.PetName,
				ClinicID:     ap.ClinicID,
				ClinicName:   ap.ClinicName,
				Type:         ap.Type,
				DateTime:     ap.DateTime,
				Duration:     ap.Duration,
				Status:       ap.Status,
				Notes:        ap.Notes,
				Veterinarian: ap.Veterinarian,
			})
		}
	}

	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode aggregate: %w", err)
	}
	return b, nil
}

// DecodeAggregate es la inversa de EncodeAggregate.
func DecodeAggregate(b []byte) (Aggregate, error) {
	var in aggregateJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return Aggregate{}, fmt.Errorf("decode aggregate: %w", err)
	}

	a := Aggregate{
		IsLoggedIn:             in.IsLoggedIn,
		HasCompletedOnboarding: in.HasCompletedOnboarding,
	}
	if in.CurrentUser != nil {
		u := in.CurrentUser
		a.CurrentUser = &users.User{
			ID:                 u.ID,
			FirstName:          u.FirstName,
			LastName:           u.LastName,
			Email:              u.Email,
			PhoneNumber:        u.PhoneNumber,
			Postcode:           u.Postcode,
			MemberSince:        u.MemberSince,
			SubscriptionActive: u.SubscriptionActive,
		}
	}
	if in.Pets != nil {
		a.Pets = make([]pets.Pet, 0, len(in.Pets))
		for _, p := range in.Pets {
			a.Pets = append(a.Pets, pets.Pet{
				ID:              p.ID,
				Name:            p.Name,
				Species:         p.Species,
				Breed:           p.Breed,
				DateOfBirth:     p.DateOfBirth,
				Weight:          p.Weight,
				MicrochipNumber: p.MicrochipNumber,
				Notes:           p.Notes,
				ImageData:       p.ImageData,
			})
		}
	}
	if in.Appointments != nil {
		a.Appointments = make([]appointments.Appointment, 0, len(in.Appointments))
		for _, ap := range in.Appointments {
			a.Appointments = append(a.Appointments, appointments.Appointment{
				ID:           ap.ID,
				PetID:        ap.PetID,
				PetName:      ap.PetName,
				ClinicID:     ap.ClinicID,
				ClinicName:   ap.ClinicName,
				Type:         ap.Type,
				DateTime:     ap.DateTime,
				Duration:     ap.Duration,
				Status:       ap.Status,
				Notes:        ap.Notes,
				Veterinarian: ap.Veterinarian,
			})
		}
	}
	return a, nil
}

func clonePet(p pets.Pet) pets.Pet {
	if p.Weight != nil {
		w := *p.Weight
		p.Weight = &w
	}
	p.MicrochipNumber = cloneString(p.MicrochipNumber)
	p.Notes = cloneString(p.Notes)
	p.ImageData = bytes.Clone(p.ImageData) // conserva nil vs vacío
	return p
}

func cloneAppointment(a appointments.Appointment) appointments.Appointment {
	a.Notes = cloneString(a.Notes)
	a.Veterinarian = cloneString(a.Veterinarian)
	return a
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneAggregate(a Aggregate) Aggregate {
	out := Aggregate{
		IsLoggedIn:             a.IsLoggedIn,
		HasCompletedOnboarding: a.HasCompletedOnboarding,
	}
	if a.CurrentUser != nil {
		u := *a.CurrentUser
		out.CurrentUser = &u
	}
	if a.Pets != nil {
		out.Pets = make([]pets.Pet, 0, len(a.Pets))
		for _, p := range a.Pets {
			out.Pets = append(out.Pets, clonePet(p))
		}
	}
	if a.Appointments != nil {
		out.Appointments = make([]appointments.Appointment, 0, len(a.Appointments))
		for _, ap := range a.Appointments {
			out.Appointments = append(out.Appointments, cloneAppointment(ap))
		}
	}
	return out
}
