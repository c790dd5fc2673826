package syncer

import (
	"context"
	"errors"
	"fmt"

	"pet-health-uk/internal/adapters/pethealthapi"
	"pet-health-uk/internal/domain/appointments"
	"pet-health-uk/internal/domain/pets"
	"pet-health-uk/internal/platform/logger"
	"pet-health-uk/internal/session"
)

// Remote es lo que el syncer usa del cliente remoto.
type Remote interface {
	Login(ctx context.Context, email, password string) (pethealthapi.AuthResponse, error)
	Register(ctx context.Context, in pethealthapi.RegisterRequest) (pethealthapi.AuthResponse, error)
	Logout(ctx context.Context) error
	GetProfile(ctx context.Context) (pethealthapi.UserResponse, error)
	GetPets(ctx context.Context) ([]pethealthapi.PetResponse, error)
	GetAppointments(ctx context.Context) ([]pethealthapi.AppointmentResponse, error)
}

// Syncer reconcilia la sesión local con el servidor.
// El servidor manda: Pull reemplaza lo local sin merge.
type Syncer struct {
	remote Remote
	store  *session.Store
	log    logger.Logger
}

func New(remote Remote, store *session.Store, log logger.Logger) *Syncer {
	return &Syncer{
		remote: remote,
		store:  store,
		log:    logger.OrNop(log).With(map[string]any{"component": "syncer"}),
	}
}

func (s *Syncer) SignIn(ctx context.Context, email, password string) error {
	res, err := s.remote.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.afterAuth(ctx, res)
}

func (s *Syncer) SignUp(ctx context.Context, in pethealthapi.RegisterRequest) error {
	res, err := s.remote.Register(ctx, in)
	if err != nil {
		return err
	}
	return s.afterAuth(ctx, res)
}

func (s *Syncer) afterAuth(ctx context.Context, res pethealthapi.AuthResponse) error {
	if err := s.store.Login(ctx, res.User.ToDomain()); err != nil {
		return err
	}
	return s.Pull(ctx)
}

// Pull trae perfil, mascotas y citas y sobrescribe la sesión local.
func (s *Syncer) Pull(ctx context.Context) error {
	profile, err := s.remote.GetProfile(ctx)
	if err != nil {
		return fmt.Errorf("pull profile: %w", err)
	}
	remotePets, err := s.remote.GetPets(ctx)
	if err != nil {
		return fmt.Errorf("pull pets: %w", err)
	}
	remoteAppts, err := s.remote.GetAppointments(ctx)
	if err != nil {
		return fmt.Errorf("pull appointments: %w", err)
	}

	ps := make([]pets.Pet, 0, len(remotePets))
	for _, rp := range remotePets {
		p, err := rp.ToDomain()
		if err != nil {
			return fmt.Errorf("pull pets: id %d: %w", rp.ID, err)
		}
		ps = append(ps, p)
	}
	as := make([]appointments.Appointment, 0, len(remoteAppts))
	for _, ra := range remoteAppts {
		a, err := ra.ToDomain()
		if err != nil {
			return fmt.Errorf("pull appointments: id %d: %w", ra.ID, err)
		}
		as = append(as, a)
	}

	u := profile.ToDomain()
	if err := s.store.ReplaceAll(ctx, &u, ps, as); err != nil {
		return err
	}
	s.log.Info("session pulled", map[string]any{"pets": len(ps), "appointments": len(as)})
	return nil
}

// SignOut borra la sesión local aunque el logout remoto falle; devuelve ambos errores.
func (s *Syncer) SignOut(ctx context.Context) error {
	remoteErr := s.remote.Logout(ctx)
	if remoteErr != nil {
		s.log.Warn("remote logout failed", map[string]any{"error": remoteErr.Error()})
		remoteErr = fmt.Errorf("remote logout: %w", remoteErr)
	}
	return errors.Join(remoteErr, s.store.Logout(ctx))
}
