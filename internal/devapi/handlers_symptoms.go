package devapi

import (
	"net/http"

	"pet-health-uk/internal/adapters/pethealthapi"
)

// @Summary Categorías de síntomas
// @Tags symptoms
// @Produce json
// @Param species query string false "Filtra por especie (dog, cat, ...)"
// @Success 200 {array} pethealthapi.SymptomCategoryResponse
// @Failure 400 {object} pethealthapi.ErrorResponse "unknown species"
// @Router /symptoms/categories [get]
func symptomCategoriesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.SymptomCategories(r.Context(), queryParam(r, "species"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// @Summary Empezar consulta de síntomas
// @Tags symptoms
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param payload body pethealthapi.StartSymptomSessionRequest true "Mascota y síntomas"
// @Success 200 {object} pethealthapi.SymptomSessionResponse
// @Failure 400 {object} pethealthapi.ErrorResponse "validación"
// @Failure 404 {object} pethealthapi.ErrorResponse "pet not found"
// @Router /symptoms/start [post]
func startSymptomSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := currentUserID(w, r)
		if !ok {
			return
		}
		var req pethealthapi.StartSymptomSessionRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		out, err := svc.StartSymptomSession(r.Context(), uid, req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// @Summary Mensaje en la consulta de síntomas
// @Description Devuelve severidad y si hay que ir al veterinario ya.
// @Tags symptoms
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param payload body pethealthapi.SymptomMessageRequest true "Mensaje"
// @Success 200 {object} pethealthapi.SymptomMessageResponse
// @Failure 400 {object} pethealthapi.ErrorResponse "validación"
// @Failure 404 {object} pethealthapi.ErrorResponse "session not found"
// @Router /symptoms/message [post]
func symptomMessageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := currentUserID(w, r)
		if !ok {
			return
		}
		var req pethealthapi.SymptomMessageRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		out, err := svc.SymptomMessage(r.Context(), uid, req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// @Summary Información de emergencia
// @Tags symptoms
// @Produce json
// @Success 200 {object} pethealthapi.EmergencyInfoResponse
// @Router /symptoms/emergency [get]
func emergencyInfoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.EmergencyInfo(r.Context()))
	}
}
