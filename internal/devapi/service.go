package devapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"pet-health-uk/internal/adapters/pethealthapi"
	"pet-health-uk/internal/domain/clinics"
	"pet-health-uk/internal/domain/symptoms"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
)

type userRecord struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PhoneNumber  *string
	Postcode     *string
	MemberSince  time.Time
	Subscription bool
	PasswordHash []byte
}

type petRecord struct {
	OwnerID int64
	Pet     pethealthapi.PetResponse
}

type appointmentRecord struct {
	OwnerID int64
	At      time.Time
	Appt    pethealthapi.AppointmentResponse
}

type symptomSession struct {
	OwnerID  int64
	PetID    int64
	Symptoms []string
	Messages int
}

// Service es el backend en memoria. Todo lo de un usuario queda aislado por OwnerID.
type Service struct {
	mu  sync.RWMutex
	now func() time.Time

	bcryptCost int

	seq map[string]int64

	users   map[int64]*userRecord
	byEmail map[string]int64

	pets         map[int64]*petRecord
	appointments map[int64]*appointmentRecord
	vaccinations map[int64]pethealthapi.VaccinationResponse
	medications  map[int64]pethealthapi.MedicationResponse
	sessions     map[string]*symptomSession

	clinics    []clinics.Clinic
	categories []symptoms.Category
}

type ServiceOptions struct {
	Now func() time.Time

	// BcryptCost; 0 => bcrypt.DefaultCost. En tests conviene bcrypt.MinCost.
	BcryptCost int
}

func NewService(opts ServiceOptions) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Service{
		now:          now,
		bcryptCost:   cost,
		seq:          make(map[string]int64),
		users:        make(map[int64]*userRecord),
		byEmail:      make(map[string]int64),
		pets:         make(map[int64]*petRecord),
		appointments: make(map[int64]*appointmentRecord),
		vaccinations: make(map[int64]pethealthapi.VaccinationResponse),
		medications:  make(map[int64]pethealthapi.MedicationResponse),
		sessions:     make(map[string]*symptomSession),
		clinics:      seedClinics(),
		categories:   seedCategories(),
	}
}

// nextIDLocked: secuencia por tipo de recurso, empieza en 1.
func (s *Service) nextIDLocked(kind string) int64 {
	s.seq[kind]++
	return s.seq[kind]
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

func optString(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// -------------------------
// Cuentas
// -------------------------

func (s *Service) Register(ctx context.Context, in pethealthapi.RegisterRequest) (pethealthapi.UserResponse, error) {
	email := normalizeEmail(in.Email)
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	postcode := strings.ToUpper(strings.TrimSpace(in.Postcode))

	switch {
	case first == "" || last == "":
		return pethealthapi.UserResponse{}, invalid("first_name and last_name required")
	case email == "" || !strings.Contains(email, "@"):
		return pethealthapi.UserResponse{}, invalid("valid email required")
	case len(in.Password) < 8:
		return pethealthapi.UserResponse{}, invalid("password must be at least 8 characters")
	case postcode == "":
		return pethealthapi.UserResponse{}, invalid("postcode required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return pethealthapi.UserResponse{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[email]; taken {
		return pethealthapi.UserResponse{}, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	u := &userRecord{
		ID:           s.nextIDLocked("user"),
		FirstName:    first,
		LastName:     last,
		Email:        email,
		PhoneNumber:  optString(in.PhoneNumber),
		Postcode:     &postcode,
		MemberSince:  s.now().UTC(),
		PasswordHash: hash,
	}
	s.users[u.ID] = u
	s.byEmail[email] = u.ID
	return toUserResponse(u), nil
}

// Authenticate no distingue "email desconocido" de "password incorrecto".
func (s *Service) Authenticate(ctx context.Context, email, password string) (pethealthapi.UserResponse, error) {
	s.mu.RLock()
	id, ok := s.byEmail[normalizeEmail(email)]
	var u userRecord
	if ok {
		u = *s.users[id]
	}
	s.mu.RUnlock()

	if !ok {
		return pethealthapi.UserResponse{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return pethealthapi.UserResponse{}, ErrInvalidCredentials
	}
	return toUserResponse(&u), nil
}

func (s *Service) Profile(ctx context.Context, userID int64) (pethealthapi.UserResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return pethealthapi.UserResponse{}, ErrNotFound
	}
	return toUserResponse(u), nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, in pethealthapi.UpdateProfileRequest) (pethealthapi.UserResponse, error) {
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	if first == "" || last == "" {
		return pethealthapi.UserResponse{}, invalid("first_name and last_name required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return pethealthapi.UserResponse{}, ErrNotFound
	}
	u.FirstName = first
	u.LastName = last
	// Opcionales: ausentes no pisan lo guardado.
	if p := optString(in.PhoneNumber); p != nil {
		u.PhoneNumber = p
	}
	if pc := optString(in.Postcode); pc != nil {
		up := strings.ToUpper(*pc)
		u.Postcode = &up
	}
	return toUserResponse(u), nil
}

// Dashboard: próximas citas, mascotas y avisos de vacunas vencidas.
func (s *Service) Dashboard(ctx context.Context, userID int64) (pethealthapi.DashboardResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.users[userID]; !ok {
		return pethealthapi.DashboardResponse{}, ErrNotFound
	}
	now := s.now()

	out := pethealthapi.DashboardResponse{
		UpcomingAppointments: []pethealthapi.AppointmentResponse{},
		Pets:                 s.petsOfLocked(userID),
	}

	upcoming := make([]*appointmentRecord, 0)
	for _, a := range s.appointments {
		if a.OwnerID == userID && a.Appt.Status == "scheduled" && a.At.After(now) {
			upcoming = append(upcoming, a)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool { return upcoming[i].At.Before(upcoming[j].At) })
	for _, a := range upcoming {
		out.UpcomingAppointments = append(out.UpcomingAppointments, a.Appt)
	}

	var nid int64
	for _, p := range out.Pets {
		for _, v := range s.vaccinationsOfLocked(p.ID) {
			dv, err := v.ToDomain()
			if err != nil || !dv.Overdue(now) {
				continue
			}
			nid++
			out.Notifications = append(out.Notifications, pethealthapi.NotificationResponse{
				ID:        nid,
				Title:     "Vaccination due",
				Message:   fmt.Sprintf("%s is due a %s booster", p.Name, v.Name),
				Type:      "vaccination",
				CreatedAt: now.UTC().Format(pethealthapi.DateTimeLayout),
			})
		}
	}
	return out, nil
}

func toUserResponse(u *userRecord) pethealthapi.UserResponse {
	since := u.MemberSince.Format(pethealthapi.DateLayout)
	sub := u.Subscription
	return pethealthapi.UserResponse{
		ID:                 u.ID,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Email:              u.Email,
		PhoneNumber:        u.PhoneNumber,
		Postcode:           u.Postcode,
		MemberSince:        &since,
		SubscriptionActive: &sub,
	}
}
