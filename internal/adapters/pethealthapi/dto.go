package pethealthapi

// Formato de fechas en el wire.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05Z07:00"
)

// -------------------------
// Auth / usuario
// -------------------------

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Postcode    string  `json:"postcode"`
}

// Las respuestas llevan tags `validate`: httpclient rechaza como KindDecoding
// un 2xx al que le falta un campo obligatorio.
type AuthResponse struct {
	Token string       `json:"token" validate:"required"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID                 int64   `json:"id" validate:"gt=0"`
	FirstName          string  `json:"first_name"`
	LastName           string  `json:"last_name"`
	Email              string  `json:"email"`
	PhoneNumber        *string `json:"phone_number,omitempty"`
	Postcode           *string `json:"postcode,omitempty"`
	MemberSince        *string `json:"member_since,omitempty"`
	SubscriptionActive *bool   `json:"subscription_active,omitempty"`
}

type UpdateProfileRequest struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Postcode    *string `json:"postcode,omitempty"`
}

type DashboardResponse struct {
	UpcomingAppointments []AppointmentResponse  `json:"upcoming_appointments" validate:"dive"`
	Pets                 []PetResponse          `json:"pets" validate:"dive"`
	Notifications        []NotificationResponse `json:"notifications,omitempty"`
}

type NotificationResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at"`
}

// -------------------------
// Mascotas
// -------------------------

type PetResponse struct {
	ID              int64    `json:"id" validate:"gt=0"`
	Name            string   `json:"name" validate:"required"`
	Species         string   `json:"species"`
	Breed           string   `json:"breed"`
	DateOfBirth     *string  `json:"date_of_birth,omitempty"`
	Weight          *float64 `json:"weight,omitempty"`
	MicrochipNumber *string  `json:"microchip_number,omitempty"`
}

// PetRequest sirve para crear y para actualizar (reemplazo completo).
type PetRequest struct {
	Name            string   `json:"name"`
	Species         string   `json:"species"`
	Breed           string   `json:"breed"`
	DateOfBirth     *string  `json:"date_of_birth,omitempty"`
	Weight          *float64 `json:"weight,omitempty"`
	MicrochipNumber *string  `json:"microchip_number,omitempty"`
}

// -------------------------
// Clínicas
// -------------------------

type ClinicResponse struct {
	ID          int64    `json:"id" validate:"gt=0"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Postcode    string   `json:"postcode"`
	PhoneNumber string   `json:"phone_number"`
	Email       *string  `json:"email,omitempty"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	IsEmergency bool     `json:"is_emergency"`
	Is24Hours   bool     `json:"is_24_hours"`
	Services    []string `json:"services,omitempty"`
	Distance    *float64 `json:"distance,omitempty"`
}

type TimeSlotResponse struct {
	Time      string `json:"time" validate:"required"`
	Available bool   `json:"available"`
}

// -------------------------
// Citas
// -------------------------

type AppointmentResponse struct {
	ID           int64   `json:"id" validate:"gt=0"`
	PetID        int64   `json:"pet_id"`
	PetName      string  `json:"pet_name"`
	ClinicID     int64   `json:"clinic_id"`
	ClinicName   string  `json:"clinic_name"`
	Type         string  `json:"type"`
	DateTime     string  `json:"date_time" validate:"required"`
	Duration     int     `json:"duration"`
	Status       string  `json:"status" validate:"required"`
	Notes        *string `json:"notes,omitempty"`
	Veterinarian *string `json:"veterinarian,omitempty"`
}

type CreateAppointmentRequest struct {
	PetID    int64   `json:"pet_id"`
	ClinicID int64   `json:"clinic_id"`
	Type     string  `json:"type"`
	DateTime string  `json:"date_time"`
	Notes    *string `json:"notes,omitempty"`
}

// -------------------------
// Síntomas
// -------------------------

type SymptomCategoryResponse struct {
	ID       int64             `json:"id" validate:"gt=0"`
	Name     string            `json:"name"`
	Icon     string            `json:"icon"`
	Symptoms []SymptomResponse `json:"symptoms" validate:"dive"`
}

type SymptomResponse struct {
	ID          int64  `json:"id" validate:"gt=0"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

type StartSymptomSessionRequest struct {
	PetID    int64    `json:"pet_id"`
	Symptoms []string `json:"symptoms"`
}

type SymptomSessionResponse struct {
	SessionID       string   `json:"session_id" validate:"required"`
	Message         string   `json:"message"`
	Recommendations []string `json:"recommendations,omitempty"`
}

type SymptomMessageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type SymptomMessageResponse struct {
	Message            string   `json:"message" validate:"required"`
	Severity           *string  `json:"severity,omitempty"`
	Recommendations    []string `json:"recommendations,omitempty"`
	SeekVetImmediately *bool    `json:"seek_vet_immediately,omitempty"`
}

type EmergencyInfoResponse struct {
	EmergencyNumber  string           `json:"emergency_number" validate:"required"`
	EmergencyClinics []ClinicResponse `json:"emergency_clinics" validate:"dive"`
	FirstAidTips     []string         `json:"first_aid_tips"`
}

// -------------------------
// Vacunas / medicación
// -------------------------

type VaccinationResponse struct {
	ID           int64   `json:"id" validate:"gt=0"`
	PetID        int64   `json:"pet_id"`
	Name         string  `json:"name"`
	DateGiven    string  `json:"date_given" validate:"required"`
	NextDueDate  *string `json:"next_due_date,omitempty"`
	Veterinarian *string `json:"veterinarian,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

type CreateVaccinationRequest struct {
	Name         string  `json:"name"`
	DateGiven    string  `json:"date_given"`
	NextDueDate  *string `json:"next_due_date,omitempty"`
	Veterinarian *string `json:"veterinarian,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

type MedicationResponse struct {
	ID        int64   `json:"id" validate:"gt=0"`
	PetID     int64   `json:"pet_id"`
	Name      string  `json:"name"`
	Dosage    string  `json:"dosage"`
	Frequency string  `json:"frequency"`
	StartDate string  `json:"start_date" validate:"required"`
	EndDate   *string `json:"end_date,omitempty"`
	Status    string  `json:"status"`
	Notes     *string `json:"notes,omitempty"`
}

// ErrorResponse es el cuerpo de error del backend.
type ErrorResponse struct {
	Message string `json:"message"`
}

// EmptyResponse para endpoints que devuelven {}.
type EmptyResponse struct{}
