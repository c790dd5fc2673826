package devapi

import (
	"context"
	"time"

	"pet-health-uk/internal/adapters/pethealthapi"
	"pet-health-uk/internal/domain/clinics"
	"pet-health-uk/internal/domain/pets"
	"pet-health-uk/internal/domain/records"
	"pet-health-uk/internal/domain/symptoms"
)

func ptr[T any](v T) *T { return &v }

func seedClinics() []clinics.Clinic {
	return []clinics.Clinic{
		{
			ID:          "1",
			Name:        "Pet_NHS Central Clinic",
			Address:     "123 High Street",
			Postcode:    "SW1A 1AA",
			PhoneNumber: "020 1234 5678",
			Email:       ptr("central@pethealthuk.co.uk"),
			Latitude:    51.5074,
			Longitude:   -0.1278,
			IsEmergency: true,
			Is24Hours:   true,
			Services:    []string{"Consultations", "Vaccinations", "Surgery", "Emergency Care"},
			Distance:    ptr(0.5),
		},
		{
			ID:          "2",
			Name:        "Pet_NHS North Clinic",
			Address:     "45 Park Lane",
			Postcode:    "N1 9AB",
			PhoneNumber: "020 9876 5432",
			Email:       ptr("north@pethealthuk.co.uk"),
			Latitude:    51.5344,
			Longitude:   -0.1053,
			Services:    []string{"Consultations", "Vaccinations", "Health Checks"},
			Distance:    ptr(2.3),
		},
		{
			ID:          "3",
			Name:        "Pet_NHS South Clinic",
			Address:     "78 Bridge Road",
			Postcode:    "SE1 2BN",
			PhoneNumber: "020 5555 1234",
			Email:       ptr("south@pethealthuk.co.uk"),
			Latitude:    51.4975,
			Longitude:   -0.1357,
			IsEmergency: true,
			Services:    []string{"Consultations", "Vaccinations", "Microchipping", "Flea Treatment"},
			Distance:    ptr(1.8),
		},
	}
}

func seedCategories() []symptoms.Category {
	small := []pets.Species{pets.SpeciesDog, pets.SpeciesCat, pets.SpeciesRabbit, pets.SpeciesGuineaPig}
	return []symptoms.Category{
		{
			ID:   "1",
			Name: "Digestive",
			Icon: "stomach",
			Symptoms: []symptoms.Symptom{
				{
					ID:                "1",
					Name:              "Vomiting",
					Description:       "Your pet is throwing up food, liquid, or bile",
					PossibleCauses:    []string{"Eating too fast", "Dietary changes", "Infection", "Poisoning", "Blockage"},
					HomeAdvice:        "Withhold food for 12-24 hours, provide small amounts of water. Introduce bland diet gradually.",
					Severity:          symptoms.SeverityModerate,
					SeekVetIf:         []string{"Vomiting persists more than 24 hours", "Blood in vomit", "Lethargy or weakness", "Suspected poisoning"},
					ApplicableSpecies: small,
				},
				{
					ID:                "2",
					Name:              "Diarrhoea",
					Description:       "Loose or watery stools",
					PossibleCauses:    []string{"Dietary changes", "Stress", "Parasites", "Infection", "Food intolerance"},
					HomeAdvice:        "Ensure hydration, feed bland diet. Monitor closely.",
					Severity:          symptoms.SeverityModerate,
					SeekVetIf:         []string{"Blood in stool", "Lasts more than 48 hours", "Accompanied by vomiting", "Signs of dehydration"},
					ApplicableSpecies: append(append([]pets.Species(nil), small...), pets.SpeciesHamster),
				},
				{
					ID:          "3",
					Name:        "Loss of Appetite",
					Description: "Reduced interest in food or refusing to eat",
					Severity:    symptoms.SeverityMild,
					SeekVetIf:   []string{"No eating for 24+ hours (cats) or 48+ hours (dogs)", "Weight loss"},
				},
			},
		},
		{
			ID:   "2",
			Name: "Respiratory",
			Icon: "lungs.fill",
			Symptoms: []symptoms.Symptom{
				{
					ID:                "4",
					Name:              "Coughing",
					Description:       "Repeated coughing or hacking sounds",
					PossibleCauses:    []string{"Kennel cough", "Allergies", "Heart disease", "Respiratory infection", "Foreign object"},
					HomeAdvice:        "Keep pet calm and in well-ventilated area. Avoid irritants like smoke.",
					Severity:          symptoms.SeverityModerate,
					SeekVetIf:         []string{"Coughing persists more than a few days", "Difficulty breathing", "Blue gums", "Coughing up blood"},
					ApplicableSpecies: []pets.Species{pets.SpeciesDog, pets.SpeciesCat},
				},
				{
					ID:          "5",
					Name:        "Difficulty Breathing",
					Description: "Laboured breathing, gasping, or unusual breathing sounds",
					HomeAdvice:  "Keep pet cool and calm. This requires immediate veterinary attention.",
					Severity:    symptoms.SeverityEmergency,
					SeekVetIf:   []string{"Any difficulty breathing should be seen immediately"},
				},
			},
		},
	}
}

// Credenciales de la cuenta demo que crea SeedDemo.
const (
	DemoEmail    = "demo@pethealthuk.co.uk"
	DemoPassword = "password123"
)

// SeedDemo crea una cuenta con una mascota, una vacuna vencida y una medicación activa.
func (s *Service) SeedDemo(ctx context.Context) error {
	u, err := s.Register(ctx, pethealthapi.RegisterRequest{
		FirstName: "Demo",
		LastName:  "Owner",
		Email:     DemoEmail,
		Password:  DemoPassword,
		Postcode:  "SW1A 1AA",
	})
	if err != nil {
		return err
	}

	now := s.now().UTC()
	p, err := s.CreatePet(ctx, u.ID, pethealthapi.PetRequest{
		Name:        "Biscuit",
		Species:     string(pets.SpeciesDog),
		Breed:       "Cocker Spaniel",
		DateOfBirth: ptr(now.AddDate(-3, 0, 0).Format(pethealthapi.DateLayout)),
		Weight:      ptr(14.2),
	})
	if err != nil {
		return err
	}

	given := now.AddDate(-1, -1, 0)
	if _, err := s.CreateVaccination(ctx, u.ID, p.ID, pethealthapi.CreateVaccinationRequest{
		Name:        "DHPPi booster",
		DateGiven:   given.Format(pethealthapi.DateLayout),
		NextDueDate: ptr(given.AddDate(1, 0, 0).Format(pethealthapi.DateLayout)),
	}); err != nil {
		return err
	}

	_, err = s.AddMedication(ctx, u.ID, p.ID, records.Medication{
		Name:      "Apoquel",
		Dosage:    "5.4 mg",
		Frequency: "once daily",
		StartDate: now.AddDate(0, 0, -7),
		EndDate:   ptr(now.Add(14 * 24 * time.Hour)),
	})
	return err
}
