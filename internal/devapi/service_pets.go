package devapi

import (
	"context"
	"sort"
	"strings"
	"time"

	"pet-health-uk/internal/adapters/pethealthapi"
	"pet-health-uk/internal/domain/pets"
	"pet-health-uk/internal/domain/records"
)

// -------------------------
// Mascotas
// -------------------------

func validatePet(in pethealthapi.PetRequest) (pethealthapi.PetRequest, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, invalid("name required")
	}
	sp, err := pets.ParseSpecies(in.Species)
	if err != nil {
		return in, invalid("%v", err)
	}
	in.Species = string(sp)
	in.Breed = strings.TrimSpace(in.Breed)
	if in.DateOfBirth != nil {
		if _, err := time.Parse(pethealthapi.DateLayout, *in.DateOfBirth); err != nil {
			return in, invalid("date_of_birth must be YYYY-MM-DD")
		}
	}
	if in.Weight != nil && *in.Weight < 0 {
		return in, invalid("weight must be positive")
	}
	in.MicrochipNumber = optString(in.MicrochipNumber)
	return in, nil
}

func (s *Service) ListPets(ctx context.Context, userID int64) ([]pethealthapi.PetResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.petsOfLocked(userID), nil
}

func (s *Service) CreatePet(ctx context.Context, userID int64, in pethealthapi.PetRequest) (pethealthapi.PetResponse, error) {
	in, err := validatePet(in)
	if err != nil {
		return pethealthapi.PetResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return pethealthapi.PetResponse{}, ErrNotFound
	}
	p := pethealthapi.PetResponse{
		ID:              s.nextIDLocked("pet"),
		Name:            in.Name,
		Species:         in.Species,
		Breed:           in.Breed,
		DateOfBirth:     in.DateOfBirth,
		Weight:          in.Weight,
		MicrochipNumber: in.MicrochipNumber,
	}
	s.pets[p.ID] = &petRecord{OwnerID: userID, Pet: p}
	return p, nil
}

// UpdatePet reemplaza el registro completo.
func (s *Service) UpdatePet(ctx context.Context, userID, petID int64, in pethealthapi.PetRequest) (pethealthapi.PetResponse, error) {
	in, err := validatePet(in)
	if err != nil {
		return pethealthapi.PetResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.ownedPetLocked(userID, petID)
	if err != nil {
		return pethealthapi.PetResponse{}, err
	}
	rec.Pet = pethealthapi.PetResponse{
		ID:              petID,
		Name:            in.Name,
		Species:         in.Species,
		Breed:           in.Breed,
		DateOfBirth:     in.DateOfBirth,
		Weight:          in.Weight,
		MicrochipNumber: in.MicrochipNumber,
	}
	return rec.Pet, nil
}

// DeletePet borra la mascota con sus vacunas y medicación. Las citas quedan.
func (s *Service) DeletePet(ctx context.Context, userID, petID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ownedPetLocked(userID, petID); err != nil {
		return err
	}
	delete(s.pets, petID)
	for id, v := range s.vaccinations {
		if v.PetID == petID {
			delete(s.vaccinations, id)
		}
	}
	for id, m := range s.medications {
		if m.PetID == petID {
			delete(s.medications, id)
		}
	}
	return nil
}

// ownedPetLocked: mascota de otro usuario => ErrNotFound (no se filtra su existencia).
func (s *Service) ownedPetLocked(userID, petID int64) (*petRecord, error) {
	rec, ok := s.pets[petID]
	if !ok || rec.OwnerID != userID {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (s *Service) petsOfLocked(userID int64) []pethealthapi.PetResponse {
	out := make([]pethealthapi.PetResponse, 0)
	for _, rec := range s.pets {
		if rec.OwnerID == userID {
			out = append(out, rec.Pet)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// -------------------------
// Vacunas
// -------------------------

func (s *Service) ListVaccinations(ctx context.Context, userID, petID int64) ([]pethealthapi.VaccinationResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.ownedPetLocked(userID, petID); err != nil {
		return nil, err
	}
	return s.vaccinationsOfLocked(petID), nil
}

func (s *Service) CreateVaccination(ctx context.Context, userID, petID int64, in pethealthapi.CreateVaccinationRequest) (pethealthapi.VaccinationResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return pethealthapi.VaccinationResponse{}, invalid("name required")
	}
	given, err := time.Parse(pethealthapi.DateLayout, in.DateGiven)
	if err != nil {
		return pethealthapi.VaccinationResponse{}, invalid("date_given must be YYYY-MM-DD")
	}
	if in.NextDueDate != nil {
		next, err := time.Parse(pethealthapi.DateLayout, *in.NextDueDate)
		if err != nil {
			return pethealthapi.VaccinationResponse{}, invalid("next_due_date must be YYYY-MM-DD")
		}
		if next.Before(given) {
			return pethealthapi.VaccinationResponse{}, invalid("next_due_date before date_given")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ownedPetLocked(userID, petID); err != nil {
		return pethealthapi.VaccinationResponse{}, err
	}
	v := pethealthapi.VaccinationResponse{
		ID:           s.nextIDLocked("vaccination"),
		PetID:        petID,
		Name:         name,
		DateGiven:    in.DateGiven,
		NextDueDate:  in.NextDueDate,
		Veterinarian: optString(in.Veterinarian),
		Notes:        optString(in.Notes),
	}
	s.vaccinations[v.ID] = v
	return v, nil
}

func (s *Service) vaccinationsOfLocked(petID int64) []pethealthapi.VaccinationResponse {
	out := make([]pethealthapi.VaccinationResponse, 0)
	for _, v := range s.vaccinations {
		if v.PetID == petID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateGiven > out[j].DateGiven })
	return out
}

// -------------------------
// Medicación
// -------------------------

// ListMedications; activeOnly aplica records.Medication.IsActive.
// Las fechas del wire no tienen hora: se compara contra el inicio del día (end_date inclusivo).
func (s *Service) ListMedications(ctx context.Context, userID, petID int64, activeOnly bool) ([]pethealthapi.MedicationResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.ownedPetLocked(userID, petID); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	out := make([]pethealthapi.MedicationResponse, 0)
	for _, m := range s.medications {
		if m.PetID != petID {
			continue
		}
		if activeOnly {
			dm, err := m.ToDomain()
			if err != nil || !dm.IsActive(today) {
				continue
			}
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// AddMedication no tiene endpoint (la pauta la carga la clínica); se usa desde el seed.
func (s *Service) AddMedication(ctx context.Context, userID, petID int64, m records.Medication) (pethealthapi.MedicationResponse, error) {
	if strings.TrimSpace(m.Name) == "" || m.StartDate.IsZero() {
		return pethealthapi.MedicationResponse{}, invalid("name and start_date required")
	}
	if m.Status == "" {
		m.Status = records.MedicationActive
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ownedPetLocked(userID, petID); err != nil {
		return pethealthapi.MedicationResponse{}, err
	}
	out := pethealthapi.MedicationResponse{
		ID:        s.nextIDLocked("medication"),
		PetID:     petID,
		Name:      m.Name,
		Dosage:    m.Dosage,
		Frequency: m.Frequency,
		StartDate: m.StartDate.Format(pethealthapi.DateLayout),
		Status:    string(m.Status),
		Notes:     m.Notes,
	}
	if m.EndDate != nil {
		end := m.EndDate.Format(pethealthapi.DateLayout)
		out.EndDate = &end
	}
	s.medications[out.ID] = out
	return out, nil
}
