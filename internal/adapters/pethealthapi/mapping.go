package pethealthapi

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"pet-health-uk/internal/domain/appointments"
	"pet-health-uk/internal/domain/clinics"
	"pet-health-uk/internal/domain/pets"
	"pet-health-uk/internal/domain/records"
	"pet-health-uk/internal/domain/symptoms"
	"pet-health-uk/internal/domain/users"
	"pet-health-uk/internal/platform/httpclient"
)

// decodingError: un valor del wire que no se puede mapear es KindDecoding,
// igual que un json mal formado.
func decodingError(format string, args ...any) error {
	return &httpclient.Error{Kind: httpclient.KindDecoding, Err: fmt.Errorf(format, args...)}
}

// Los ids remotos son enteros; en el dominio se guardan como string.

func FormatID(id int64) string { return strconv.FormatInt(id, 10) }

// ParseID convierte un id de dominio en id remoto.
func ParseID(id string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid remote id %q", id)
	}
	return n, nil
}

// parseWireTime acepta fecha sola o fecha+hora.
func parseWireTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse(DateLayout, s)
}

func parseOptTime(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := parseWireTime(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (u UserResponse) ToDomain() users.User {
	out := users.User{
		ID:        FormatID(u.ID),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
	if u.PhoneNumber != nil {
		out.PhoneNumber = *u.PhoneNumber
	}
	if u.Postcode != nil {
		out.Postcode = *u.Postcode
	}
	if u.MemberSince != nil {
		// fecha ilegible => se deja en cero; no es motivo para rechazar el perfil
		if t, err := parseWireTime(*u.MemberSince); err == nil {
			out.MemberSince = t
		}
	}
	if u.SubscriptionActive != nil {
		out.SubscriptionActive = *u.SubscriptionActive
	}
	return out
}

func (p PetResponse) ToDomain() (pets.Pet, error) {
	sp, err := pets.ParseSpecies(p.Species)
	if err != nil {
		sp = pets.SpeciesOther
	}
	out := pets.Pet{
		ID:              FormatID(p.ID),
		Name:            p.Name,
		Species:         sp,
		Breed:           p.Breed,
		Weight:          p.Weight,
		MicrochipNumber: p.MicrochipNumber,
	}
	dob, err := parseOptTime(p.DateOfBirth)
	if err != nil {
		return pets.Pet{}, decodingError("pet %d: date_of_birth: %w", p.ID, err)
	}
	if dob != nil {
		out.DateOfBirth = *dob
	}
	return out, nil
}

// NewPetRequest arma el body de create/update desde el registro local.
func NewPetRequest(p pets.Pet) PetRequest {
	req := PetRequest{
		Name:            p.Name,
		Species:         string(p.Species),
		Breed:           p.Breed,
		Weight:          p.Weight,
		MicrochipNumber: p.MicrochipNumber,
	}
	if !p.DateOfBirth.IsZero() {
		d := p.DateOfBirth.Format(DateLayout)
		req.DateOfBirth = &d
	}
	return req
}

func (c ClinicResponse) ToDomain() clinics.Clinic {
	return clinics.Clinic{
		ID:          FormatID(c.ID),
		Name:        c.Name,
		Address:     c.Address,
		Postcode:    c.Postcode,
		PhoneNumber: c.PhoneNumber,
		Email:       c.Email,
		Latitude:    c.Latitude,
		Longitude:   c.Longitude,
		IsEmergency: c.IsEmergency,
		Is24Hours:   c.Is24Hours,
		Services:    c.Services,
		Distance:    c.Distance,
	}
}

func (s TimeSlotResponse) ToDomain() clinics.TimeSlot {
	return clinics.TimeSlot{Time: s.Time, Available: s.Available}
}

func (a AppointmentResponse) ToDomain() (appointments.Appointment, error) {
	dt, err := parseWireTime(a.DateTime)
	if err != nil {
		return appointments.Appointment{}, decodingError("appointment %d: date_time: %w", a.ID, err)
	}
	typ, err := appointments.ParseType(a.Type)
	if err != nil {
		typ = appointments.TypeConsultation
	}
	st, err := appointments.ParseStatus(a.Status)
	if err != nil {
		return appointments.Appointment{}, decodingError("appointment %d: %w", a.ID, err)
	}
	return appointments.Appointment{
		ID:           FormatID(a.ID),
		PetID:        FormatID(a.PetID),
		PetName:      a.PetName,
		ClinicID:     FormatID(a.ClinicID),
		ClinicName:   a.ClinicName,
		Type:         typ,
		DateTime:     dt,
		Duration:     a.Duration,
		Status:       st,
		Notes:        a.Notes,
		Veterinarian: a.Veterinarian,
	}, nil
}

func (c SymptomCategoryResponse) ToDomain() symptoms.Category {
	out := symptoms.Category{
		ID:       FormatID(c.ID),
		Name:     c.Name,
		Icon:     c.Icon,
		Symptoms: make([]symptoms.Symptom, 0, len(c.Symptoms)),
	}
	for _, s := range c.Symptoms {
		out.Symptoms = append(out.Symptoms, symptoms.Symptom{
			ID:          FormatID(s.ID),
			Name:        s.Name,
			Description: s.Description,
			Severity:    symptoms.Severity(strings.ToLower(s.Severity)),
		})
	}
	return out
}

func (v VaccinationResponse) ToDomain() (records.Vaccination, error) {
	given, err := parseWireTime(v.DateGiven)
	if err != nil {
		return records.Vaccination{}, decodingError("vaccination %d: date_given: %w", v.ID, err)
	}
	next, err := parseOptTime(v.NextDueDate)
	if err != nil {
		return records.Vaccination{}, decodingError("vaccination %d: next_due_date: %w", v.ID, err)
	}
	return records.Vaccination{
		ID:           FormatID(v.ID),
		PetID:        FormatID(v.PetID),
		Name:         v.Name,
		DateGiven:    given,
		NextDueDate:  next,
		Veterinarian: v.Veterinarian,
		Notes:        v.Notes,
	}, nil
}

func (m MedicationResponse) ToDomain() (records.Medication, error) {
	start, err := parseWireTime(m.StartDate)
	if err != nil {
		return records.Medication{}, decodingError("medication %d: start_date: %w", m.ID, err)
	}
	end, err := parseOptTime(m.EndDate)
	if err != nil {
		return records.Medication{}, decodingError("medication %d: end_date: %w", m.ID, err)
	}
	return records.Medication{
		ID:        FormatID(m.ID),
		PetID:     FormatID(m.PetID),
		Name:      m.Name,
		Dosage:    m.Dosage,
		Frequency: m.Frequency,
		StartDate: start,
		EndDate:   end,
		Status:    records.MedicationStatus(strings.ToLower(m.Status)),
		Notes:     m.Notes,
	}, nil
}
