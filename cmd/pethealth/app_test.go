package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"pet-health-uk/internal/adapters/pethealthapi"
	"pet-health-uk/internal/adapters/storage/memory"
	"pet-health-uk/internal/devapi"
	"pet-health-uk/internal/router"
	"pet-health-uk/internal/session"
)

type harness struct {
	app *app
	out *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	svc := devapi.NewService(devapi.ServiceOptions{BcryptCost: bcrypt.MinCost})
	ts := httptest.NewServer(router.NewRouter(router.Options{Service: svc}))
	t.Cleanup(ts.Close)

	blobs := memory.NewBlobStore()
	store := session.New(blobs, session.Options{})
	_, err := store.Load(context.Background())
	require.NoError(t, err)

	client, err := pethealthapi.New(pethealthapi.Config{BaseURL: ts.URL + "/api", Timeout: 5 * time.Second, Tokens: blobs})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	return &harness{app: newApp(store, client, out, nil), out: out}
}

func (h *harness) run(t *testing.T, args ...string) string {
	t.Helper()
	h.out.Reset()
	require.NoError(t, h.app.dispatch(context.Background(), args), h.out.String())
	return h.out.String()
}

func TestCLI_RegisterAddPetBookAndCancel(t *testing.T) {
	h := newHarness(t)

	h.run(t, "register", "-first", "Jane", "-last", "Smith", "-email", "jane@example.com", "-password", "password123", "-postcode", "SW1A 1AA")
	assert.Contains(t, h.run(t, "status"), "signed in as Jane Smith <jane@example.com>")

	assert.Contains(t, h.run(t, "add-pet", "-name", "Biscuit", "-species", "Guinea Pig", "-dob", "2024-01-15"), "added Biscuit (1)")
	pets := h.app.store.Pets()
	require.Len(t, pets, 1)
	assert.Equal(t, "1", pets[0].ID)

	at := time.Now().UTC().AddDate(0, 0, 2)
	at = time.Date(at.Year(), at.Month(), at.Day(), 10, 30, 0, 0, time.UTC)
	out := h.run(t, "book", "-pet", "1", "-clinic", "1", "-at", at.Format(time.RFC3339), "-type", "vaccination")
	assert.Contains(t, out, "booked vaccination")
	require.Len(t, h.app.store.UpcomingAppointments(), 1)

	apptID := h.app.store.UpcomingAppointments()[0].ID
	h.run(t, "cancel", "-id", apptID)
	assert.Empty(t, h.app.store.UpcomingAppointments())
	require.Len(t, h.app.store.Appointments(), 1)

	h.run(t, "logout")
	assert.False(t, h.app.store.IsLoggedIn())
	assert.Empty(t, h.app.store.Pets())
	assert.Contains(t, h.run(t, "status"), "signed out")
}

func TestCLI_OfflinePetStaysLocal(t *testing.T) {
	h := newHarness(t)

	assert.Contains(t, h.run(t, "add-pet", "-name", "Milo", "-species", "cat"), "local only")
	require.Len(t, h.app.store.Pets(), 1)

	err := h.app.dispatch(context.Background(), []string{"book", "-pet", "1", "-clinic", "1", "-at", "2030-01-01T10:00:00Z"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not signed in")
}

func TestCLI_ClinicsAndEmergency(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "clinics", "-emergency")
	assert.Contains(t, out, "EMERGENCY")
	assert.NotContains(t, out, "false")

	assert.Contains(t, h.run(t, "emergency"), "emergency line:")
	assert.Contains(t, h.run(t, "symptoms", "-q", "vomit"), "Digestive")
}

func TestCLI_UnknownCommand(t *testing.T) {
	h := newHarness(t)

	err := h.app.dispatch(context.Background(), []string{"fly"})
	require.ErrorIs(t, err, errUsage)
	assert.Contains(t, h.out.String(), "usage: pethealth")
}
