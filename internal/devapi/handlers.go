package devapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pet-health-uk/internal/adapters/pethealthapi"
	"pet-health-uk/internal/domain/appointments"
	"pet-health-uk/internal/middleware"
	"pet-health-uk/internal/ports/auth"
)

const maxRequestBytes = 1 << 20

// RegisterRoutes monta la API bajo el router recibido (normalmente /api).
func RegisterRoutes(r chi.Router, svc *Service, issuer auth.TokenIssuer) {
	// Públicas
	r.Post("/auth/login", loginHandler(svc, issuer))
	r.Post("/auth/register", registerHandler(svc, issuer))
	r.Get("/clinics", listClinicsHandler(svc))
	r.Get("/clinics/search", searchClinicsHandler(svc))
	r.Get("/clinics/{clinicID}/available-slots", availableSlotsHandler(svc))
	r.Get("/symptoms/categories", symptomCategoriesHandler(svc))
	r.Get("/symptoms/emergency", emergencyInfoHandler(svc))

	// Requieren token
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireAuth)

		pr.Post("/auth/logout", logoutHandler(issuer))

		pr.Get("/user/profile", getProfileHandler(svc))
		pr.Put("/user/profile", updateProfileHandler(svc))
		pr.Get("/user/dashboard", dashboardHandler(svc))
		pr.Get("/user/pets", listPetsHandler(svc))
		pr.Get("/user/appointments", listAppointmentsHandler(svc))

		pr.Post("/pets", createPetHandler(svc))
		pr.Route("/pets/{petID}", func(pt chi.Router) {
			pt.Put("/", updatePetHandler(svc))
			pt.Delete("/", deletePetHandler(svc))
			pt.Get("/vaccinations", listVaccinationsHandler(svc))
			pt.Post("/vaccinations", createVaccinationHandler(svc))
			pt.Get("/medications", listMedicationsHandler(svc, false))
			pt.Get("/medications/active", listMedicationsHandler(svc, true))
		})

		pr.Post("/appointments/request", createAppointmentHandler(svc))
		pr.Delete("/appointments/{appointmentID}", cancelAppointmentHandler(svc))

		pr.Post("/symptoms/start", startSymptomSessionHandler(svc))
		pr.Post("/symptoms/message", symptomMessageHandler(svc))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, pethealthapi.ErrorResponse{Message: msg})
}

// writeError traduce errores del servicio a status + {"message": ...}.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrConflict), errors.Is(err, appointments.ErrInvalidTransition):
		writeMessage(w, http.StatusConflict, err.Error())
	default:
		writeMessage(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON: cuerpo vacío cuenta como {}.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		writeMessage(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// currentUserID lee el usuario de los claims; RequireAuth ya garantizó que existen.
func currentUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return 0, false
	}
	id, err := pethealthapi.ParseID(claims.UserID)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return 0, false
	}
	return id, true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := pethealthapi.ParseID(chi.URLParam(r, name))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "not found")
		return 0, false
	}
	return id, true
}

func queryParam(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}
