package pethealthapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"pet-health-uk/internal/platform/httpclient"
	"pet-health-uk/internal/platform/logger"
	"pet-health-uk/internal/ports/storage"
)

const (
	DefaultBaseURL = "https://api.pethealthuk.co.uk/api"

	// TokenKey es la key del token en el BlobStore, separada del agregado de sesión.
	TokenKey = "auth_token"
)

// Config del cliente remoto.
type Config struct {
	BaseURL string
	Timeout time.Duration

	// Opcional: para tests o proxies.
	Transport http.RoundTripper

	// Opcional: dónde persistir el token. Si es nil el token solo vive en memoria.
	Tokens storage.BlobStore

	Logger logger.Logger
}

// Client traduce cada operación remota a un request JSON autenticado.
// Un intento por llamada: sin reintentos ni backoff.
type Client struct {
	http   *httpclient.Client
	tokens storage.BlobStore
	log    logger.Logger

	mu    sync.RWMutex
	token string
}

func New(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	hc := httpclient.NewWithTransport(cfg.Timeout, cfg.Transport)
	if err := hc.SetBaseURL(base); err != nil {
		return nil, err
	}
	return &Client{
		http:   hc,
		tokens: cfg.Tokens,
		log:    logger.OrNop(cfg.Logger).With(map[string]any{"component": "pethealthapi"}),
	}, nil
}

// -------------------------
// Token
// -------------------------

// AuthToken devuelve el token actual ("" si no hay sesión remota).
func (c *Client) AuthToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetAuthToken guarda el token en memoria y, si hay BlobStore, lo persiste.
// Token vacío => lo borra.
func (c *Client) SetAuthToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)

	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	if c.tokens == nil {
		return nil
	}
	if token == "" {
		if err := c.tokens.Delete(ctx, TokenKey); err != nil {
			return fmt.Errorf("pethealthapi: delete token: %w", err)
		}
		return nil
	}
	if err := c.tokens.Put(ctx, TokenKey, []byte(token)); err != nil {
		return fmt.Errorf("pethealthapi: persist token: %w", err)
	}
	return nil
}

// LoadAuthToken restaura el token persistido. Si no hay nada queda sin token.
func (c *Client) LoadAuthToken(ctx context.Context) error {
	if c.tokens == nil {
		return nil
	}
	raw, err := c.tokens.Get(ctx, TokenKey)
	if errors.Is(err, storage.ErrNotFound) {
		raw = nil
	} else if err != nil {
		return fmt.Errorf("pethealthapi: load token: %w", err)
	}

	c.mu.Lock()
	c.token = strings.TrimSpace(string(raw))
	c.mu.Unlock()
	return nil
}

// rememberToken: si falla la persistencia el token igual queda en memoria.
func (c *Client) rememberToken(ctx context.Context, token string) {
	if err := c.SetAuthToken(ctx, token); err != nil {
		c.log.Warn("token not persisted", map[string]any{"error": err.Error()})
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var headers map[string]string
	if tok := c.AuthToken(); tok != "" {
		headers = map[string]string{"Authorization": "Bearer " + tok}
	}

	err := c.http.DoJSON(ctx, method, path, headers, in, out)
	if err != nil {
		c.log.Debug("remote call failed", map[string]any{
			"method": method,
			"path":   path,
			"kind":   httpclient.KindOf(err).String(),
		})
	}
	return err
}

// -------------------------
// Auth
// -------------------------

func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	var out AuthResponse
	body := LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return AuthResponse{}, err
	}
	c.rememberToken(ctx, out.Token)
	return out, nil
}

func (c *Client) Register(ctx context.Context, in RegisterRequest) (AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", in, &out); err != nil {
		return AuthResponse{}, err
	}
	c.rememberToken(ctx, out.Token)
	return out, nil
}

// Logout avisa al backend y limpia el token aunque la llamada falle.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", struct{}{}, nil)
	c.rememberToken(ctx, "")
	return err
}

// -------------------------
// Usuario
// -------------------------

func (c *Client) GetProfile(ctx context.Context) (UserResponse, error) {
	var out UserResponse
	err := c.do(ctx, http.MethodGet, "/user/profile", nil, &out)
	return out, err
}

func (c *Client) UpdateProfile(ctx context.Context, in UpdateProfileRequest) (UserResponse, error) {
	var out UserResponse
	err := c.do(ctx, http.MethodPut, "/user/profile", in, &out)
	return out, err
}

func (c *Client) GetDashboard(ctx context.Context) (DashboardResponse, error) {
	var out DashboardResponse
	err := c.do(ctx, http.MethodGet, "/user/dashboard", nil, &out)
	return out, err
}

// -------------------------
// Mascotas
// -------------------------

func (c *Client) GetPets(ctx context.Context) ([]PetResponse, error) {
	var out []PetResponse
	err := c.do(ctx, http.MethodGet, "/user/pets", nil, &out)
	return out, err
}

func (c *Client) CreatePet(ctx context.Context, in PetRequest) (PetResponse, error) {
	var out PetResponse
	err := c.do(ctx, http.MethodPost, "/pets", in, &out)
	return out, err
}

func (c *Client) UpdatePet(ctx context.Context, id int64, in PetRequest) (PetResponse, error) {
	var out PetResponse
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/pets/%d", id), in, &out)
	return out, err
}

func (c *Client) DeletePet(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/pets/%d", id), nil, nil)
}

// -------------------------
// Clínicas
// -------------------------

func (c *Client) GetClinics(ctx context.Context) ([]ClinicResponse, error) {
	var out []ClinicResponse
	err := c.do(ctx, http.MethodGet, "/clinics", nil, &out)
	return out, err
}

func (c *Client) SearchClinics(ctx context.Context, postcode string) ([]ClinicResponse, error) {
	q := url.Values{}
	q.Set("postcode", postcode)

	var out []ClinicResponse
	err := c.do(ctx, http.MethodGet, "/clinics/search?"+q.Encode(), nil, &out)
	return out, err
}

// GetAvailableSlots: date en formato YYYY-MM-DD.
func (c *Client) GetAvailableSlots(ctx context.Context, clinicID int64, date string) ([]TimeSlotResponse, error) {
	q := url.Values{}
	q.Set("date", date)

	var out []TimeSlotResponse
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/clinics/%d/available-slots?%s", clinicID, q.Encode()), nil, &out)
	return out, err
}

// -------------------------
// Citas
// -------------------------

func (c *Client) GetAppointments(ctx context.Context) ([]AppointmentResponse, error) {
	var out []AppointmentResponse
	err := c.do(ctx, http.MethodGet, "/user/appointments", nil, &out)
	return out, err
}

func (c *Client) CreateAppointment(ctx context.Context, in CreateAppointmentRequest) (AppointmentResponse, error) {
	var out AppointmentResponse
	err := c.do(ctx, http.MethodPost, "/appointments/request", in, &out)
	return out, err
}

func (c *Client) CancelAppointment(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/appointments/%d", id), nil, nil)
}

// -------------------------
// Síntomas
// -------------------------

func (c *Client) GetSymptomCategories(ctx context.Context) ([]SymptomCategoryResponse, error) {
	var out []SymptomCategoryResponse
	err := c.do(ctx, http.MethodGet, "/symptoms/categories", nil, &out)
	return out, err
}

func (c *Client) StartSymptomSession(ctx context.Context, petID int64, symptoms []string) (SymptomSessionResponse, error) {
	var out SymptomSessionResponse
	body := StartSymptomSessionRequest{PetID: petID, Symptoms: symptoms}
	err := c.do(ctx, http.MethodPost, "/symptoms/start", body, &out)
	return out, err
}

func (c *Client) SendSymptomMessage(ctx context.Context, sessionID, message string) (SymptomMessageResponse, error) {
	var out SymptomMessageResponse
	body := SymptomMessageRequest{SessionID: sessionID, Message: message}
	err := c.do(ctx, http.MethodPost, "/symptoms/message", body, &out)
	return out, err
}

func (c *Client) GetEmergencyInfo(ctx context.Context) (EmergencyInfoResponse, error) {
	var out EmergencyInfoResponse
	err := c.do(ctx, http.MethodGet, "/symptoms/emergency", nil, &out)
	return out, err
}

// -------------------------
// Vacunas / medicación
// -------------------------

func (c *Client) GetVaccinations(ctx context.Context, petID int64) ([]VaccinationResponse, error) {
	var out []VaccinationResponse
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/pets/%d/vaccinations", petID), nil, &out)
	return out, err
}

func (c *Client) CreateVaccination(ctx context.Context, petID int64, in CreateVaccinationRequest) (VaccinationResponse, error) {
	var out VaccinationResponse
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/pets/%d/vaccinations", petID), in, &out)
	return out, err
}

func (c *Client) GetMedications(ctx context.Context, petID int64) ([]MedicationResponse, error) {
	var out []MedicationResponse
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/pets/%d/medications", petID), nil, &out)
	return out, err
}

func (c *Client) GetActiveMedications(ctx context.Context, petID int64) ([]MedicationResponse, error) {
	var out []MedicationResponse
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/pets/%d/medications/active", petID), nil, &out)
	return out, err
}
