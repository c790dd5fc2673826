package devapi

import (
	"net/http"

	"pet-health-uk/internal/adapters/pethealthapi"
)

// @Summary Listar clínicas
// @Description Ordenadas por distancia.
// @Tags clinics
// @Produce json
// @Success 200 {array} pethealthapi.ClinicResponse
// @Router /clinics [get]
func listClinicsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Clinics(r.Context()))
	}
}

// @Summary Buscar clínicas por código postal
// @Tags clinics
// @Produce json
// @Param postcode query string true "Código postal o parte (SW1A)"
// @Success 200 {array} pethealthapi.ClinicResponse
// @Failure 400 {object} pethealthapi.ErrorResponse "postcode required"
// @Router /clinics/search [get]
func searchClinicsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.SearchClinics(r.Context(), queryParam(r, "postcode"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// @Summary Huecos libres
// @Description Huecos de 30 minutos entre 09:00 y 17:00 (UTC) para el día indicado.
// @Tags clinics
// @Produce json
// @Param clinicID path int true "ID de la clínica"
// @Param date query string true "Día en YYYY-MM-DD"
// @Success 200 {array} pethealthapi.TimeSlotResponse
// @Failure 400 {object} pethealthapi.ErrorResponse "date inválida"
// @Failure 404 {object} pethealthapi.ErrorResponse "clinic not found"
// @Router /clinics/{clinicID}/available-slots [get]
func availableSlotsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clinicID, ok := pathID(w, r, "clinicID")
		if !ok {
			return
		}
		items, err := svc.AvailableSlots(r.Context(), clinicID, queryParam(r, "date"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// @Summary Listar mis citas
// @Tags appointments
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} pethealthapi.AppointmentResponse
// @Failure 401 {object} pethealthapi.ErrorResponse "unauthorized"
// @Router /user/appointments [get]
func listAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := currentUserID(w, r)
		if !ok {
			return
		}
		items, err := svc.ListAppointments(r.Context(), uid)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// @Summary Pedir cita
// @Description date_time en RFC3339, futuro y alineado a un hueco. El nombre de la mascota y de la clínica se copian al reservar.
// @Tags appointments
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param payload body pethealthapi.CreateAppointmentRequest true "Cita"
// @Success 201 {object} pethealthapi.AppointmentResponse
// @Failure 400 {object} pethealthapi.ErrorResponse "validación"
// @Failure 404 {object} pethealthapi.ErrorResponse "pet / clinic not found"
// @Failure 409 {object} pethealthapi.ErrorResponse "slot not available"
// @Router /appointments/request [post]
func createAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := currentUserID(w, r)
		if !ok {
			return
		}
		var req pethealthapi.CreateAppointmentRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		a, err := svc.CreateAppointment(r.Context(), uid, req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, a)
	}
}

// @Summary Cancelar cita
// @Description Marca la cita como cancelled; no la borra. Una cita completada no se puede cancelar.
// @Tags appointments
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param appointmentID path int true "ID de la cita"
// @Success 200 {object} pethealthapi.EmptyResponse
// @Failure 404 {object} pethealthapi.ErrorResponse "not found"
// @Failure 409 {object} pethealthapi.ErrorResponse "invalid status transition"
// @Router /appointments/{appointmentID} [delete]
func cancelAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := currentUserID(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r, "appointmentID")
		if !ok {
			return
		}
		if err := svc.CancelAppointment(r.Context(), uid, id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pethealthapi.EmptyResponse{})
	}
}
