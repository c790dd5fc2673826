package devapi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"pet-health-uk/internal/adapters/pethealthapi"
	"pet-health-uk/internal/domain/appointments"
	"pet-health-uk/internal/domain/records"
	"pet-health-uk/internal/domain/symptoms"
)

var testNow = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(ServiceOptions{
		Now:        func() time.Time { return testNow },
		BcryptCost: bcrypt.MinCost,
	})
}

func mustRegister(t *testing.T, s *Service, email string) pethealthapi.UserResponse {
	t.Helper()
	u, err := s.Register(context.Background(), pethealthapi.RegisterRequest{
		FirstName: "Jane", LastName: "Smith", Email: email, Password: "password123", Postcode: "n1 9ab",
	})
	require.NoError(t, err)
	return u
}

func mustPet(t *testing.T, s *Service, userID int64, name string) pethealthapi.PetResponse {
	t.Helper()
	p, err := s.CreatePet(context.Background(), userID, pethealthapi.PetRequest{Name: name, Species: "dog", Breed: "Beagle"})
	require.NoError(t, err)
	return p
}

func TestRegister_ValidatesAndRejectsDuplicateEmail(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   pethealthapi.RegisterRequest
	}{
		{"missing names", pethealthapi.RegisterRequest{Email: "a@b.co", Password: "password123", Postcode: "N1"}},
		{"bad email", pethealthapi.RegisterRequest{FirstName: "A", LastName: "B", Email: "nope", Password: "password123", Postcode: "N1"}},
		{"short password", pethealthapi.RegisterRequest{FirstName: "A", LastName: "B", Email: "a@b.co", Password: "short", Postcode: "N1"}},
		{"missing postcode", pethealthapi.RegisterRequest{FirstName: "A", LastName: "B", Email: "a@b.co", Password: "password123"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Register(ctx, tc.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	u := mustRegister(t, s, "Jane@Example.com")
	assert.Equal(t, "jane@example.com", u.Email)
	require.NotNil(t, u.Postcode)
	assert.Equal(t, "N1 9AB", *u.Postcode)
	require.NotNil(t, u.MemberSince)
	assert.Equal(t, "2026-03-02", *u.MemberSince)

	_, err := s.Register(ctx, pethealthapi.RegisterRequest{
		FirstName: "J", LastName: "S", Email: "jane@example.com", Password: "password123", Postcode: "N1",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthenticate(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	u := mustRegister(t, s, "jane@example.com")

	got, err := s.Authenticate(ctx, " JANE@example.com ", "password123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.Authenticate(ctx, "jane@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Authenticate(ctx, "ghost@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile_KeepsOmittedOptionals(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	u := mustRegister(t, s, "jane@example.com")

	phone := "07700 900123"
	got, err := s.UpdateProfile(ctx, u.ID, pethealthapi.UpdateProfileRequest{FirstName: "Janet", LastName: "Smith", PhoneNumber: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Janet", got.FirstName)
	require.NotNil(t, got.PhoneNumber)
	assert.Equal(t, phone, *got.PhoneNumber)
	require.NotNil(t, got.Postcode)
	assert.Equal(t, "N1 9AB", *got.Postcode)

	_, err = s.UpdateProfile(ctx, u.ID, pethealthapi.UpdateProfileRequest{FirstName: " "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreatePet_NormalizesSpecies(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	u := mustRegister(t, s, "jane@example.com")

	p, err := s.CreatePet(ctx, u.ID, pethealthapi.PetRequest{Name: " Pip ", Species: "Guinea Pig", Breed: "Abyssinian"})
	require.NoError(t, err)
	assert.Equal(t, "Pip", p.Name)
	assert.Equal(t, "guinea_pig", p.Species)

	_, err = s.CreatePet(ctx, u.ID, pethealthapi.PetRequest{Name: "X", Species: "dragon"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad := "01/02/2020"
	_, err = s.CreatePet(ctx, u.ID, pethealthapi.PetRequest{Name: "X", Species: "cat", DateOfBirth: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeletePet_CascadesRecordsButKeepsAppointments(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	u := mustRegister(t, s, "jane@example.com")
	p := mustPet(t, s, u.ID, "Biscuit")

	_, err := s.CreateVaccination(ctx, u.ID, p.ID, pethealthapi.CreateVaccinationRequest{Name: "Rabies", DateGiven: "2025-05-01"})
	require.NoError(t, err)
	_, err = s.AddMedication(ctx, u.ID, p.ID, records.Medication{Name: "Apoquel", StartDate: testNow})
	require.NoError(t, err)
	a, err := s.CreateAppointment(ctx, u.ID, pethealthapi.CreateAppointmentRequest{
		PetID: p.ID, ClinicID: 1, Type: "consultation", DateTime: "2026-03-04T09:30:00Z",
	})
	require.NoError(t, err)

	require.NoError(t, s.DeletePet(ctx, u.ID, p.ID))

	_, err = s.ListVaccinations(ctx, u.ID, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, s.vaccinations)
	assert.Empty(t, s.medications)

	list, err := s.ListAppointments(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, "Biscuit", list[0].PetName)
}

func TestCreateVaccination_RejectsDueBeforeGiven(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	u := mustRegister(t, s, "jane@example.com")
	p := mustPet(t, s, u.ID, "Biscuit")

	due := "2025-01-01"
	_, err := s.CreateVaccination(ctx, u.ID, p.ID, pethealthapi.CreateVaccinationRequest{Name: "Rabies", DateGiven: "2025-05-01", NextDueDate: &due})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.CreateVaccination(ctx, u.ID, p.ID, pethealthapi.CreateVaccinationRequest{Name: "Rabies", DateGiven: "yesterday"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListMedications_ActiveOnly(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	u := mustRegister(t, s, "jane@example.com")
	p := mustPet(t, s, u.ID, "Biscuit")

	endsToday := testNow
	finished := testNow.AddDate(0, 0, -3)
	_, err := s.AddMedication(ctx, u.ID, p.ID, records.Medication{Name: "Ends today", StartDate: testNow.AddDate(0, 0, -10), EndDate: &endsToday})
	require.NoError(t, err)
	_, err = s.AddMedication(ctx, u.ID, p.ID, records.Medication{Name: "Finished", StartDate: testNow.AddDate(0, 0, -10), EndDate: &finished})
	require.NoError(t, err)
	_, err = s.AddMedication(ctx, u.ID, p.ID, records.Medication{Name: "Stopped", StartDate: testNow.AddDate(0, 0, -1), Status: records.MedicationStopped})
	require.NoError(t, err)

	all, err := s.ListMedications(ctx, u.ID, p.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	active, err := s.ListMedications(ctx, u.ID, p.ID, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Ends today", active[0].Name)
}

func TestCreateAppointment_Validation(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	u := mustRegister(t, s, "jane@example.com")
	p := mustPet(t, s, u.ID, "Biscuit")

	cases := []struct {
		name string
		in   pethealthapi.CreateAppointmentRequest
		want error
	}{
		{"past", pethealthapi.CreateAppointmentRequest{PetID: p.ID, ClinicID: 1, Type: "consultation", DateTime: "2026-03-01T10:00:00Z"}, ErrInvalidInput},
		{"not a slot", pethealthapi.CreateAppointmentRequest{PetID: p.ID, ClinicID: 1, Type: "consultation", DateTime: "2026-03-03T10:15:00Z"}, ErrInvalidInput},
		{"after hours", pethealthapi.CreateAppointmentRequest{PetID: p.ID, ClinicID: 1, Type: "consultation", DateTime: "2026-03-03T17:00:00Z"}, ErrInvalidInput},
		{"bad type", pethealthapi.CreateAppointmentRequest{PetID: p.ID, ClinicID: 1, Type: "grooming", DateTime: "2026-03-03T10:00:00Z"}, ErrInvalidInput},
		{"unknown clinic", pethealthapi.CreateAppointmentRequest{PetID: p.ID, ClinicID: 99, Type: "consultation", DateTime: "2026-03-03T10:00:00Z"}, ErrNotFound},
		{"unknown pet", pethealthapi.CreateAppointmentRequest{PetID: 99, ClinicID: 1, Type: "consultation", DateTime: "2026-03-03T10:00:00Z"}, ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.CreateAppointment(ctx, u.ID, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCancelAppointment_Transitions(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	u := mustRegister(t, s, "jane@example.com")
	other := mustRegister(t, s, "bob@example.com")
	p := mustPet(t, s, u.ID, "Biscuit")

	book := func(at string) pethealthapi.AppointmentResponse {
		a, err := s.CreateAppointment(ctx, u.ID, pethealthapi.CreateAppointmentRequest{PetID: p.ID, ClinicID: 2, Type: "health_check", DateTime: at})
		require.NoError(t, err)
		return a
	}

	a := book("2026-03-03T11:00:00Z")
	assert.ErrorIs(t, s.CancelAppointment(ctx, other.ID, a.ID), ErrNotFound)
	require.NoError(t, s.CancelAppointment(ctx, u.ID, a.ID))
	require.NoError(t, s.CancelAppointment(ctx, u.ID, a.ID))

	// el hueco cancelado se puede volver a reservar
	again := book("2026-03-03T11:00:00Z")

	require.NoError(t, s.CloseAppointment(ctx, again.ID, appointments.StatusCompleted))
	assert.ErrorIs(t, s.CancelAppointment(ctx, u.ID, again.ID), appointments.ErrInvalidTransition)
}

func TestAvailableSlots(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	slots, err := s.AvailableSlots(ctx, 1, "2026-03-03")
	require.NoError(t, err)
	require.Len(t, slots, 16)
	assert.Equal(t, "09:00", slots[0].Time)
	assert.Equal(t, "16:30", slots[15].Time)

	_, err = s.AvailableSlots(ctx, 1, "03/03/2026")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = s.AvailableSlots(ctx, 42, "2026-03-03")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSeedDemo_DashboardShowsOverdueVaccination(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	require.NoError(t, s.SeedDemo(ctx))

	u, err := s.Authenticate(ctx, DemoEmail, DemoPassword)
	require.NoError(t, err)

	d, err := s.Dashboard(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, d.Pets, 1)
	assert.Equal(t, "Biscuit", d.Pets[0].Name)
	assert.Empty(t, d.UpcomingAppointments)
	require.Len(t, d.Notifications, 1)
	assert.Equal(t, "vaccination", d.Notifications[0].Type)

	meds, err := s.ListMedications(ctx, u.ID, d.Pets[0].ID, true)
	require.NoError(t, err)
	assert.Len(t, meds, 1)
}

func TestSymptoms_CategoriesAndSessions(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	u := mustRegister(t, s, "jane@example.com")
	other := mustRegister(t, s, "bob@example.com")
	p := mustPet(t, s, u.ID, "Biscuit")

	all, err := s.SymptomCategories(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	_, err = s.SymptomCategories(ctx, "unicorn")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.StartSymptomSession(ctx, u.ID, pethealthapi.StartSymptomSessionRequest{PetID: p.ID})
	assert.ErrorIs(t, err, ErrInvalidInput)

	sess, err := s.StartSymptomSession(ctx, u.ID, pethealthapi.StartSymptomSessionRequest{PetID: p.ID, Symptoms: []string{"Vomiting"}})
	require.NoError(t, err)
	assert.Contains(t, sess.Message, "Biscuit")

	_, err = s.SymptomMessage(ctx, other.ID, pethealthapi.SymptomMessageRequest{SessionID: sess.SessionID, Message: "hello"})
	assert.ErrorIs(t, err, ErrNotFound)

	reply, err := s.SymptomMessage(ctx, u.ID, pethealthapi.SymptomMessageRequest{SessionID: sess.SessionID, Message: "since last night"})
	require.NoError(t, err)
	require.NotNil(t, reply.Severity)
	assert.Equal(t, string(symptoms.SeverityModerate), *reply.Severity)
	require.NotNil(t, reply.SeekVetImmediately)
	assert.False(t, *reply.SeekVetImmediately)
}

func TestEmergencyInfo_OnlyEmergencyClinics(t *testing.T) {
	s := newTestService(t)
	info := s.EmergencyInfo(context.Background())

	assert.Equal(t, emergencyNumber, info.EmergencyNumber)
	require.NotEmpty(t, info.EmergencyClinics)
	for _, c := range info.EmergencyClinics {
		assert.True(t, c.IsEmergency, c.Name)
	}
}
