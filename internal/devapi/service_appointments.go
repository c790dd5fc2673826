package devapi

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"pet-health-uk/internal/adapters/pethealthapi"
	"pet-health-uk/internal/domain/appointments"
	"pet-health-uk/internal/domain/clinics"
)

// Agenda de cada clínica: huecos de 30 minutos de 09:00 a 17:00 (el último empieza 16:30).
const (
	slotOpenHour  = 9
	slotCloseHour = 17
	slotLength    = 30 * time.Minute
)

// -------------------------
// Clínicas
// -------------------------

func (s *Service) Clinics(ctx context.Context) []pethealthapi.ClinicResponse {
	return toClinicResponses(clinics.Apply(s.clinics, clinics.Filter{}))
}

// SearchClinics busca por código postal (o parte: "SW1A").
func (s *Service) SearchClinics(ctx context.Context, postcode string) ([]pethealthapi.ClinicResponse, error) {
	q := strings.TrimSpace(postcode)
	if q == "" {
		return nil, invalid("postcode required")
	}
	return toClinicResponses(clinics.Apply(s.clinics, clinics.Filter{Query: q})), nil
}

func (s *Service) clinicByID(id int64) (clinics.Clinic, bool) {
	want := pethealthapi.FormatID(id)
	for _, c := range s.clinics {
		if c.ID == want {
			return c, true
		}
	}
	return clinics.Clinic{}, false
}

// AvailableSlots: date en YYYY-MM-DD. Un hueco está ocupado si hay una cita no cancelada
// en esa clínica a esa hora exacta.
func (s *Service) AvailableSlots(ctx context.Context, clinicID int64, date string) ([]pethealthapi.TimeSlotResponse, error) {
	day, err := time.Parse(pethealthapi.DateLayout, strings.TrimSpace(date))
	if err != nil {
		return nil, invalid("date must be YYYY-MM-DD")
	}
	if _, ok := s.clinicByID(clinicID); !ok {
		return nil, ErrNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]pethealthapi.TimeSlotResponse, 0)
	for _, at := range daySlots(day) {
		out = append(out, pethealthapi.TimeSlotResponse{
			Time:      at.Format("15:04"),
			Available: !s.slotTakenLocked(clinicID, at),
		})
	}
	return out, nil
}

func daySlots(day time.Time) []time.Time {
	start := time.Date(day.Year(), day.Month(), day.Day(), slotOpenHour, 0, 0, 0, time.UTC)
	end := time.Date(day.Year(), day.Month(), day.Day(), slotCloseHour, 0, 0, 0, time.UTC)

	var out []time.Time
	for t := start; t.Before(end); t = t.Add(slotLength) {
		out = append(out, t)
	}
	return out
}

func (s *Service) slotTakenLocked(clinicID int64, at time.Time) bool {
	for _, a := range s.appointments {
		if a.Appt.ClinicID == clinicID && a.At.Equal(at) && a.Appt.Status != string(appointments.StatusCancelled) {
			return true
		}
	}
	return false
}

// -------------------------
// Citas
// -------------------------

func (s *Service) ListAppointments(ctx context.Context, userID int64) ([]pethealthapi.AppointmentResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]*appointmentRecord, 0)
	for _, a := range s.appointments {
		if a.OwnerID == userID {
			recs = append(recs, a)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].At.Before(recs[j].At) })

	out := make([]pethealthapi.AppointmentResponse, 0, len(recs))
	for _, a := range recs {
		out = append(out, a.Appt)
	}
	return out, nil
}

// CreateAppointment copia el nombre de la mascota y de la clínica al reservar.
func (s *Service) CreateAppointment(ctx context.Context, userID int64, in pethealthapi.CreateAppointmentRequest) (pethealthapi.AppointmentResponse, error) {
	typ, err := appointments.ParseType(in.Type)
	if err != nil {
		return pethealthapi.AppointmentResponse{}, invalid("%v", err)
	}
	at, err := time.Parse(time.RFC3339, strings.TrimSpace(in.DateTime))
	if err != nil {
		return pethealthapi.AppointmentResponse{}, invalid("date_time must be RFC3339")
	}
	at = at.UTC()
	if !at.After(s.now()) {
		return pethealthapi.AppointmentResponse{}, invalid("date_time must be in the future")
	}
	if !isSlotStart(at) {
		return pethealthapi.AppointmentResponse{}, invalid("date_time must match an available slot")
	}
	clinic, ok := s.clinicByID(in.ClinicID)
	if !ok {
		return pethealthapi.AppointmentResponse{}, fmt.Errorf("%w: clinic", ErrNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pet, err := s.ownedPetLocked(userID, in.PetID)
	if err != nil {
		return pethealthapi.AppointmentResponse{}, fmt.Errorf("%w: pet", err)
	}
	if s.slotTakenLocked(in.ClinicID, at) {
		return pethealthapi.AppointmentResponse{}, fmt.Errorf("%w: slot not available", ErrConflict)
	}

	a := pethealthapi.AppointmentResponse{
		ID:         s.nextIDLocked("appointment"),
		PetID:      in.PetID,
		PetName:    pet.Pet.Name,
		ClinicID:   in.ClinicID,
		ClinicName: clinic.Name,
		Type:       string(typ),
		DateTime:   at.Format(pethealthapi.DateTimeLayout),
		Duration:   int(slotLength / time.Minute),
		Status:     string(appointments.StatusScheduled),
		Notes:      optString(in.Notes),
	}
	s.appointments[a.ID] = &appointmentRecord{OwnerID: userID, At: at, Appt: a}
	return a, nil
}

func isSlotStart(at time.Time) bool {
	if at.Second() != 0 || at.Nanosecond() != 0 || at.Minute()%30 != 0 {
		return false
	}
	return at.Hour() >= slotOpenHour && at.Hour() < slotCloseHour
}

// CancelAppointment marca la cita como cancelada (no la borra).
// Cancelar dos veces es no-op; cancelar una cita cerrada => appointments.ErrInvalidTransition.
func (s *Service) CancelAppointment(ctx context.Context, userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.appointments[id]
	if !ok || rec.OwnerID != userID {
		return ErrNotFound
	}
	from, err := appointments.ParseStatus(rec.Appt.Status)
	if err != nil {
		return err
	}
	if !appointments.CanTransition(from, appointments.StatusCancelled) {
		return fmt.Errorf("%w: %s -> %s", appointments.ErrInvalidTransition, from, appointments.StatusCancelled)
	}
	rec.Appt.Status = string(appointments.StatusCancelled)
	return nil
}

// CloseAppointment es la acción de la clínica (completed / no_show); no tiene endpoint en la API del cliente.
func (s *Service) CloseAppointment(ctx context.Context, id int64, to appointments.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.appointments[id]
	if !ok {
		return ErrNotFound
	}
	from, err := appointments.ParseStatus(rec.Appt.Status)
	if err != nil {
		return err
	}
	if !appointments.CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", appointments.ErrInvalidTransition, from, to)
	}
	rec.Appt.Status = string(to)
	return nil
}

func toClinicResponses(items []clinics.Clinic) []pethealthapi.ClinicResponse {
	out := make([]pethealthapi.ClinicResponse, 0, len(items))
	for _, c := range items {
		id, _ := pethealthapi.ParseID(c.ID)
		out = append(out, pethealthapi.ClinicResponse{
			ID:          id,
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
		})
	}
	return out
}
