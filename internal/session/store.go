package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"pet-health-uk/internal/domain/appointments"
	"pet-health-uk/internal/domain/pets"
	"pet-health-uk/internal/domain/users"
	"pet-health-uk/internal/platform/logger"
	"pet-health-uk/internal/ports/storage"
)

// DefaultKey es la key fija bajo la que se guarda el agregado.
const DefaultKey = "pethealthuk_data"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrCorruptSnapshot = errors.New("saved session data is corrupt")
)

// LoadStatus distingue "no había nada" de "había algo pero no se pudo leer".
type LoadStatus int

const (
	LoadEmpty LoadStatus = iota
	LoadRestored
	LoadCorrupt
	LoadUnreadable
)

func (s LoadStatus) String() string {
	switch s {
	case LoadEmpty:
		return "empty"
	case LoadRestored:
		return "restored"
	case LoadCorrupt:
		return "corrupt"
	case LoadUnreadable:
		return "unreadable"
	default:
		return "unknown"
	}
}

type Options struct {
	Key    string
	Logger logger.Logger
	Now    func() time.Time
}

// Store es la fuente de verdad local: sesión + datos cacheados.
// Cada mutación reescribe el agregado completo en el BlobStore.
//
// Si la escritura falla, la mutación en memoria se mantiene y se devuelve el error
// de persistencia; quien quiera el comportamiento "fire and forget" lo ignora.
type Store struct {
	mu    sync.RWMutex
	blobs storage.BlobStore
	key   string
	log   logger.Logger
	now   func() time.Time

	state Aggregate
}

func New(blobs storage.BlobStore, opts Options) *Store {
	key := strings.TrimSpace(opts.Key)
	if key == "" {
		key = DefaultKey
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		blobs: blobs,
		key:   key,
		log:   logger.OrNop(opts.Logger).With(map[string]any{"component": "session"}),
		now:   now,
	}
}

// Load restaura el agregado guardado. Con datos corruptos o ilegibles el estado
// queda en defaults y el llamador decide qué hacer con el error.
func (s *Store) Load(ctx context.Context) (LoadStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Aggregate{}

	raw, err := s.blobs.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return LoadEmpty, nil
	}
	if err != nil {
		s.log.Warn("session load failed", map[string]any{"error": err.Error()})
		return LoadUnreadable, fmt.Errorf("session: read %s: %w", s.key, err)
	}

	agg, err := DecodeAggregate(raw)
	if err != nil {
		s.log.Warn("session data corrupt, using defaults", map[string]any{"error": err.Error()})
		return LoadCorrupt, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	s.state = agg
	return LoadRestored, nil
}

// persistLocked requiere s.mu tomado en escritura.
func (s *Store) persistLocked(ctx context.Context) error {
	b, err := EncodeAggregate(s.state)
	if err != nil {
		s.log.Error("session encode failed", map[string]any{"error": err.Error()})
		return err
	}
	if err := s.blobs.Put(ctx, s.key, b); err != nil {
		s.log.Warn("session persist failed", map[string]any{"error": err.Error()})
		return fmt.Errorf("session: persist: %w", err)
	}
	return nil
}

// -------------------------
// Usuario
// -------------------------

// Login marca la sesión como iniciada. No verifica credenciales.
func (s *Store) Login(ctx context.Context, u users.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.CurrentUser = &u
	s.state.IsLoggedIn = true
	return s.persistLocked(ctx)
}

// Logout borra todo: usuario, mascotas, citas y onboarding.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Aggregate{}
	return s.persistLocked(ctx)
}

func (s *Store) CompleteOnboarding(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.HasCompletedOnboarding = true
	return s.persistLocked(ctx)
}

func (s *Store) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsLoggedIn
}

func (s *Store) HasCompletedOnboarding() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.HasCompletedOnboarding
}

func (s *Store) CurrentUser() (users.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.CurrentUser == nil {
		return users.User{}, false
	}
	return *s.state.CurrentUser, true
}

// Snapshot devuelve una copia profunda del agregado.
func (s *Store) Snapshot() Aggregate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAggregate(s.state)
}

// ReplaceAll pisa mascotas, citas y (si viene) el usuario con datos remotos.
func (s *Store) ReplaceAll(ctx context.Context, u *users.User, ps []pets.Pet, as []appointments.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u != nil {
		cu := *u
		s.state.CurrentUser = &cu
	}

	s.state.Pets = make([]pets.Pet, 0, len(ps))
	for _, p := range ps {
		s.state.Pets = append(s.state.Pets, clonePet(p))
	}
	s.state.Appointments = make([]appointments.Appointment, 0, len(as))
	for _, a := range as {
		s.state.Appointments = append(s.state.Appointments, cloneAppointment(a))
	}
	return s.persistLocked(ctx)
}

// -------------------------
// Mascotas
// -------------------------

// AddPet asigna ID si viene vacío. Un ID ya usado se rechaza.
func (s *Store) AddPet(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" || !p.Species.Valid() {
		return pets.Pet{}, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		p.ID = uuid.NewString()
	}
	if s.petIndexLocked(p.ID) >= 0 {
		return pets.Pet{}, fmt.Errorf("%w: pet %s already exists", ErrInvalidInput, p.ID)
	}

	p = clonePet(p)
	s.state.Pets = append(s.state.Pets, p)
	return clonePet(p), s.persistLocked(ctx)
}

// UpdatePet reemplaza el registro completo (sin merge). ID desconocido => no-op.
// El reemplazo se valida igual que en AddPet. No actualiza PetName en citas ya reservadas.
func (s *Store) UpdatePet(ctx context.Context, p pets.Pet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.petIndexLocked(p.ID)
	if i < 0 {
		s.log.Debug("update pet: not found", map[string]any{"pet_id": p.ID})
		return nil
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" || !p.Species.Valid() {
		return ErrInvalidInput
	}
	s.state.Pets[i] = clonePet(p)
	return s.persistLocked(ctx)
}

// DeletePet borra la mascota. No borra sus citas. ID desconocido => no-op.
func (s *Store) DeletePet(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.petIndexLocked(id)
	if i < 0 {
		s.log.Debug("delete pet: not found", map[string]any{"pet_id": id})
		return nil
	}
	s.state.Pets = append(s.state.Pets[:i], s.state.Pets[i+1:]...)
	return s.persistLocked(ctx)
}

func (s *Store) Pet(id string) (pets.Pet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.petIndexLocked(id)
	if i < 0 {
		return pets.Pet{}, false
	}
	return clonePet(s.state.Pets[i]), true
}

func (s *Store) Pets() []pets.Pet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]pets.Pet, 0, len(s.state.Pets))
	for _, p := range s.state.Pets {
		out = append(out, clonePet(p))
	}
	return out
}

func (s *Store) petIndexLocked(id string) int {
	for i, p := range s.state.Pets {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// -------------------------
// Citas
// -------------------------

// AddAppointment asigna ID si viene vacío; estado vacío => scheduled.
func (s *Store) AddAppointment(ctx context.Context, a appointments.Appointment) (appointments.Appointment, error) {
	if strings.TrimSpace(a.PetID) == "" || a.DateTime.IsZero() {
		return appointments.Appointment{}, ErrInvalidInput
	}
	if a.Status == "" {
		a.Status = appointments.StatusScheduled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		a.ID = uuid.NewString()
	}
	if s.appointmentIndexLocked(a.ID) >= 0 {
		return appointments.Appointment{}, fmt.Errorf("%w: appointment %s already exists", ErrInvalidInput, a.ID)
	}

	a = cloneAppointment(a)
	s.state.Appointments = append(s.state.Appointments, a)
	return cloneAppointment(a), s.persistLocked(ctx)
}

// UpdateAppointment reemplaza el registro. Un cambio de estado tiene que ser una
// transición válida; si no, ErrInvalidTransition y nada cambia. ID desconocido => no-op.
func (s *Store) UpdateAppointment(ctx context.Context, a appointments.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.appointmentIndexLocked(a.ID)
	if i < 0 {
		s.log.Debug("update appointment: not found", map[string]any{"appointment_id": a.ID})
		return nil
	}
	current := s.state.Appointments[i]
	if _, err := current.Transition(a.Status); err != nil {
		return err
	}
	s.state.Appointments[i] = cloneAppointment(a)
	return s.persistLocked(ctx)
}

// CancelAppointment marca la cita como cancelled (no la borra).
func (s *Store) CancelAppointment(ctx context.Context, id string) error {
	return s.TransitionAppointment(ctx, id, appointments.StatusCancelled)
}

// TransitionAppointment aplica scheduled -> {completed, cancelled, no_show}.
// Mismo estado => no-op sin escribir. ID desconocido => no-op.
func (s *Store) TransitionAppointment(ctx context.Context, id string, to appointments.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.appointmentIndexLocked(id)
	if i < 0 {
		s.log.Debug("transition appointment: not found", map[string]any{"appointment_id": id})
		return nil
	}
	current := s.state.Appointments[i]
	if current.Status == to {
		return nil
	}
	next, err := current.Transition(to)
	if err != nil {
		return err
	}
	s.state.Appointments[i] = next
	return s.persistLocked(ctx)
}

func (s *Store) Appointment(id string) (appointments.Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.appointmentIndexLocked(id)
	if i < 0 {
		return appointments.Appointment{}, false
	}
	return cloneAppointment(s.state.Appointments[i]), true
}

func (s *Store) Appointments() []appointments.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.appointmentsLocked()
}

// UpcomingAppointments se recalcula en cada llamada (orden ascendente).
func (s *Store) UpcomingAppointments() []appointments.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return appointments.Upcoming(s.appointmentsLocked(), s.now())
}

// PastAppointments se recalcula en cada llamada (orden descendente).
func (s *Store) PastAppointments() []appointments.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return appointments.Past(s.appointmentsLocked(), s.now())
}

func (s *Store) appointmentsLocked() []appointments.Appointment {
	out := make([]appointments.Appointment, 0, len(s.state.Appointments))
	for _, a := range s.state.Appointments {
		out = append(out, cloneAppointment(a))
	}
	return out
}

func (s *Store) appointmentIndexLocked(id string) int {
	for i, a := range s.state.Appointments {
		if a.ID == id {
			return i
		}
	}
	return -1
}
