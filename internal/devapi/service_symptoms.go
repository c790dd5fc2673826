package devapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"pet-health-uk/internal/adapters/pethealthapi"
	"pet-health-uk/internal/domain/clinics"
	"pet-health-uk/internal/domain/pets"
	"pet-health-uk/internal/domain/symptoms"
)

const emergencyNumber = "0800 000 1111"

var firstAidTips = []string{
	"Stay calm: your pet can sense your stress. Speak softly and move slowly.",
	"Keep safe: injured pets may bite. Approach carefully and consider a muzzle if needed.",
	"Don't give medication: never give human medications without veterinary advice.",
	"Keep warm: cover your pet with a blanket to prevent shock.",
	"Transport safely: use a carrier or support the body when moving to prevent further injury.",
}

// SymptomCategories; species opcional filtra por especie (vacío => todas).
func (s *Service) SymptomCategories(ctx context.Context, species string) ([]pethealthapi.SymptomCategoryResponse, error) {
	cats := s.categories
	if strings.TrimSpace(species) != "" {
		sp, err := pets.ParseSpecies(species)
		if err != nil {
			return nil, invalid("%v", err)
		}
		cats = symptoms.FilterBySpecies(cats, sp)
	}

	out := make([]pethealthapi.SymptomCategoryResponse, 0, len(cats))
	for _, c := range cats {
		cid, _ := pethealthapi.ParseID(c.ID)
		cr := pethealthapi.SymptomCategoryResponse{
			ID:       cid,
			Name:     c.Name,
			Icon:     c.Icon,
			Symptoms: make([]pethealthapi.SymptomResponse, 0, len(c.Symptoms)),
		}
		for _, sy := range c.Symptoms {
			sid, _ := pethealthapi.ParseID(sy.ID)
			cr.Symptoms = append(cr.Symptoms, pethealthapi.SymptomResponse{
				ID:          sid,
				Name:        sy.Name,
				Description: sy.Description,
				Severity:    string(sy.Severity),
			})
		}
		out = append(out, cr)
	}
	return out, nil
}

func (s *Service) StartSymptomSession(ctx context.Context, userID int64, in pethealthapi.StartSymptomSessionRequest) (pethealthapi.SymptomSessionResponse, error) {
	names := make([]string, 0, len(in.Symptoms))
	for _, n := range in.Symptoms {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return pethealthapi.SymptomSessionResponse{}, invalid("at least one symptom required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pet, err := s.ownedPetLocked(userID, in.PetID)
	if err != nil {
		return pethealthapi.SymptomSessionResponse{}, err
	}

	id := uuid.NewString()
	s.sessions[id] = &symptomSession{OwnerID: userID, PetID: in.PetID, Symptoms: names}

	tr := triage(strings.Join(names, " "))
	msg := fmt.Sprintf("Thanks. I've noted %s for %s. Tell me more: when did it start, and is %s eating and drinking normally?",
		strings.Join(names, ", "), pet.Pet.Name, pet.Pet.Name)
	if tr.SeekVet {
		msg = fmt.Sprintf("%s may need urgent care. %s", pet.Pet.Name, msg)
	}
	return pethealthapi.SymptomSessionResponse{
		SessionID:       id,
		Message:         msg,
		Recommendations: tr.Recommendations,
	}, nil
}

func (s *Service) SymptomMessage(ctx context.Context, userID int64, in pethealthapi.SymptomMessageRequest) (pethealthapi.SymptomMessageResponse, error) {
	text := strings.TrimSpace(in.Message)
	if text == "" {
		return pethealthapi.SymptomMessageResponse{}, invalid("message required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[in.SessionID]
	if !ok || sess.OwnerID != userID {
		return pethealthapi.SymptomMessageResponse{}, fmt.Errorf("%w: session", ErrNotFound)
	}
	sess.Messages++

	// El historial de la sesión cuenta: un síntoma grave inicial no se "olvida".
	tr := triage(strings.Join(sess.Symptoms, " ") + " " + text)
	sev := string(tr.Severity)
	seek := tr.SeekVet

	var msg string
	switch tr.Severity {
	case symptoms.SeverityEmergency:
		msg = fmt.Sprintf("This sounds like an emergency. Call %s or go to your nearest emergency clinic now.", emergencyNumber)
	case symptoms.SeverityModerate:
		msg = "Thanks for the detail. Keep monitoring and book a consultation if there's no improvement within 24 hours."
	default:
		msg = "That doesn't sound urgent. Keep an eye on things and let me know if anything changes."
	}

	return pethealthapi.SymptomMessageResponse{
		Message:            msg,
		Severity:           &sev,
		Recommendations:    tr.Recommendations,
		SeekVetImmediately: &seek,
	}, nil
}

func (s *Service) EmergencyInfo(ctx context.Context) pethealthapi.EmergencyInfoResponse {
	return pethealthapi.EmergencyInfoResponse{
		EmergencyNumber:  emergencyNumber,
		EmergencyClinics: toClinicResponses(clinics.Apply(s.clinics, clinics.Filter{EmergencyOnly: true})),
		FirstAidTips:     append([]string(nil), firstAidTips...),
	}
}
