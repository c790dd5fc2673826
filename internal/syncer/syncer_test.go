package syncer_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"pet-health-uk/internal/adapters/pethealthapi"
	"pet-health-uk/internal/adapters/storage/memory"
	"pet-health-uk/internal/devapi"
	"pet-health-uk/internal/domain/pets"
	"pet-health-uk/internal/platform/httpclient"
	"pet-health-uk/internal/router"
	"pet-health-uk/internal/session"
	"pet-health-uk/internal/syncer"
)

type fakeRemote struct {
	user      pethealthapi.UserResponse
	pets      []pethealthapi.PetResponse
	appts     []pethealthapi.AppointmentResponse
	loginErr  error
	logoutErr error
	loggedOut bool
}

func (f *fakeRemote) Login(ctx context.Context, email, password string) (pethealthapi.AuthResponse, error) {
	if f.loginErr != nil {
		return pethealthapi.AuthResponse{}, f.loginErr
	}
	return pethealthapi.AuthResponse{Token: "abc123", User: f.user}, nil
}

func (f *fakeRemote) Register(ctx context.Context, in pethealthapi.RegisterRequest) (pethealthapi.AuthResponse, error) {
	return f.Login(ctx, in.Email, in.Password)
}

func (f *fakeRemote) Logout(ctx context.Context) error {
	f.loggedOut = true
	return f.logoutErr
}

func (f *fakeRemote) GetProfile(ctx context.Context) (pethealthapi.UserResponse, error) {
	return f.user, nil
}

func (f *fakeRemote) GetPets(ctx context.Context) ([]pethealthapi.PetResponse, error) {
	return f.pets, nil
}

func (f *fakeRemote) GetAppointments(ctx context.Context) ([]pethealthapi.AppointmentResponse, error) {
	return f.appts, nil
}

func newStore(t *testing.T) *session.Store {
	t.Helper()
	st := session.New(memory.NewBlobStore(), session.Options{})
	_, err := st.Load(context.Background())
	require.NoError(t, err)
	return st
}

func TestSignIn_PullsAndOverwritesLocalState(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	// algo local que el servidor no conoce
	_, err := st.AddPet(ctx, pets.Pet{Name: "Local only", Species: pets.SpeciesCat})
	require.NoError(t, err)

	remote := &fakeRemote{
		user: pethealthapi.UserResponse{ID: 7, FirstName: "Jane", LastName: "Smith", Email: "jane@example.com"},
		pets: []pethealthapi.PetResponse{{ID: 3, Name: "Biscuit", Species: "dog", Breed: "Beagle"}},
		appts: []pethealthapi.AppointmentResponse{{
			ID: 9, PetID: 3, PetName: "Biscuit", ClinicID: 1, ClinicName: "Riverside",
			Type: "consultation", DateTime: "2026-03-03T10:00:00Z", Duration: 30, Status: "scheduled",
		}},
	}

	s := syncer.New(remote, st, nil)
	require.NoError(t, s.SignIn(ctx, "jane@example.com", "password123"))

	assert.True(t, st.IsLoggedIn())
	u, ok := st.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "7", u.ID)

	ps := st.Pets()
	require.Len(t, ps, 1)
	assert.Equal(t, "3", ps[0].ID)
	assert.Equal(t, "Biscuit", ps[0].Name)

	as := st.Appointments()
	require.Len(t, as, 1)
	assert.Equal(t, "9", as[0].ID)
	assert.Equal(t, "3", as[0].PetID)
}

func TestSignIn_FailureLeavesStoreUntouched(t *testing.T) {
	st := newStore(t)
	s := syncer.New(&fakeRemote{loginErr: errors.New("boom")}, st, nil)

	require.Error(t, s.SignIn(context.Background(), "a@b.co", "x"))
	assert.False(t, st.IsLoggedIn())
}

func TestPull_RejectsBadRemoteRecord(t *testing.T) {
	badDate := "someday"
	ctx := context.Background()
	st := newStore(t)
	remote := &fakeRemote{
		user:  pethealthapi.UserResponse{ID: 1, FirstName: "J", LastName: "S", Email: "j@s.co"},
		appts: []pethealthapi.AppointmentResponse{{ID: 1, Type: "consultation", DateTime: "2026-03-03T10:00:00Z", Status: "lost"}},
	}

	err := syncer.New(remote, st, nil).Pull(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpclient.ErrDecoding))
	assert.Equal(t, httpclient.KindDecoding, httpclient.KindOf(err))
	assert.Empty(t, st.Appointments())

	remote.appts = nil
	remote.pets = []pethealthapi.PetResponse{{ID: 4, Name: "Milo", Species: "cat", DateOfBirth: &badDate}}
	err = syncer.New(remote, st, nil).Pull(ctx)
	assert.True(t, errors.Is(err, httpclient.ErrDecoding))
	assert.Empty(t, st.Pets())
}

func TestSignOut_WipesLocalEvenIfRemoteFails(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	remote := &fakeRemote{
		user:      pethealthapi.UserResponse{ID: 1, FirstName: "J", LastName: "S", Email: "j@s.co"},
		pets:      []pethealthapi.PetResponse{{ID: 2, Name: "Milo", Species: "cat"}},
		logoutErr: errors.New("network down"),
	}
	s := syncer.New(remote, st, nil)
	require.NoError(t, s.SignIn(ctx, "j@s.co", "password123"))
	require.Len(t, st.Pets(), 1)

	err := s.SignOut(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network down")
	assert.True(t, remote.loggedOut)
	assert.False(t, st.IsLoggedIn())
	assert.Empty(t, st.Pets())
}

func TestSignUp_AgainstDevAPI(t *testing.T) {
	ctx := context.Background()
	svc := devapi.NewService(devapi.ServiceOptions{BcryptCost: bcrypt.MinCost})
	ts := httptest.NewServer(router.NewRouter(router.Options{Service: svc}))
	defer ts.Close()

	client, err := pethealthapi.New(pethealthapi.Config{BaseURL: ts.URL + "/api", Timeout: 5 * time.Second})
	require.NoError(t, err)

	st := newStore(t)
	s := syncer.New(client, st, nil)

	require.NoError(t, s.SignUp(ctx, pethealthapi.RegisterRequest{
		FirstName: "Jane", LastName: "Smith", Email: "jane@example.com", Password: "password123", Postcode: "SE1 2BN",
	}))
	_, err = client.CreatePet(ctx, pethealthapi.PetRequest{Name: "Biscuit", Species: "dog", Breed: "Beagle"})
	require.NoError(t, err)

	require.NoError(t, s.Pull(ctx))
	require.Len(t, st.Pets(), 1)
	assert.Equal(t, pets.SpeciesDog, st.Pets()[0].Species)

	require.NoError(t, s.SignOut(ctx))
	assert.False(t, st.IsLoggedIn())
	assert.Empty(t, client.AuthToken())
}
