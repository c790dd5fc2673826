package devapi

import (
	"net/http"

	"pet-health-uk/internal/adapters/pethealthapi"
)

// @Summary Listar mis mascotas
// @Tags pets
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} pethealthapi.PetResponse
// @Failure 401 {object} pethealthapi.ErrorResponse "unauthorized"
// @Router /user/pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := currentUserID(w, r)
		if !ok {
			return
		}
		items, err := svc.ListPets(r.Context(), uid)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// @Summary Crear mascota
// @Description species acepta el valor canónico (guinea_pig) o el nombre ("Guinea Pig"). date_of_birth en YYYY-MM-DD.
// @Tags pets
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param payload body pethealthapi.PetRequest true "Mascota"
// @Success 201 {object} pethealthapi.PetResponse
// @Failure 400 {object} pethealthapi.ErrorResponse "validación"
// @Failure 401 {object} pethealthapi.ErrorResponse "unauthorized"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := currentUserID(w, r)
		if !ok {
			return
		}
		var req pethealthapi.PetRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		p, err := svc.CreatePet(r.Context(), uid, req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, p)
	}
}

// @Summary Reemplazar mascota
// @Description Reemplazo completo: los opcionales ausentes quedan vacíos.
// @Tags pets
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param petID path int true "ID de la mascota"
// @Param payload body pethealthapi.PetRequest true "Mascota"
// @Success 200 {object} pethealthapi.PetResponse
// @Failure 400 {object} pethealthapi.ErrorResponse "validación"
// @Failure 404 {object} pethealthapi.ErrorResponse "not found"
// @Router /pets/{petID} [put]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := currentUserID(w, r)
		if !ok {
			return
		}
		petID, ok := pathID(w, r, "petID")
		if !ok {
			return
		}
		var req pethealthapi.PetRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		p, err := svc.UpdatePet(r.Context(), uid, petID, req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// @Summary Borrar mascota
// @Description Borra la mascota con sus vacunas y medicación. Las citas no se tocan.
// @Tags pets
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param petID path int true "ID de la mascota"
// @Success 200 {object} pethealthapi.EmptyResponse
// @Failure 404 {object} pethealthapi.ErrorResponse "not found"
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := currentUserID(w, r)
		if !ok {
			return
		}
		petID, ok := pathID(w, r, "petID")
		if !ok {
			return
		}
		if err := svc.DeletePet(r.Context(), uid, petID); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pethealthapi.EmptyResponse{})
	}
}

// @Summary Listar vacunas
// @Tags records
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param petID path int true "ID de la mascota"
// @Success 200 {array} pethealthapi.VaccinationResponse
// @Failure 404 {object} pethealthapi.ErrorResponse "not found"
// @Router /pets/{petID}/vaccinations [get]
func listVaccinationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := currentUserID(w, r)
		if !ok {
			return
		}
		petID, ok := pathID(w, r, "petID")
		if !ok {
			return
		}
		items, err := svc.ListVaccinations(r.Context(), uid, petID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// @Summary Registrar vacuna
// @Description Fechas en YYYY-MM-DD; next_due_date no puede ser anterior a date_given.
// @Tags records
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param petID path int true "ID de la mascota"
// @Param payload body pethealthapi.CreateVaccinationRequest true "Vacuna"
// @Success 201 {object} pethealthapi.VaccinationResponse
// @Failure 400 {object} pethealthapi.ErrorResponse "validación"
// @Failure 404 {object} pethealthapi.ErrorResponse "not found"
// @Router /pets/{petID}/vaccinations [post]
func createVaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := currentUserID(w, r)
		if !ok {
			return
		}
		petID, ok := pathID(w, r, "petID")
		if !ok {
			return
		}
		var req pethealthapi.CreateVaccinationRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		v, err := svc.CreateVaccination(r.Context(), uid, petID, req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, v)
	}
}

// @Summary Listar medicación
// @Description /medications devuelve todo; /medications/active solo lo activo hoy.
// @Tags records
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param petID path int true "ID de la mascota"
// @Success 200 {array} pethealthapi.MedicationResponse
// @Failure 404 {object} pethealthapi.ErrorResponse "not found"
// @Router /pets/{petID}/medications [get]
// @Router /pets/{petID}/medications/active [get]
func listMedicationsHandler(svc *Service, activeOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := currentUserID(w, r)
		if !ok {
			return
		}
		petID, ok := pathID(w, r, "petID")
		if !ok {
			return
		}
		items, err := svc.ListMedications(r.Context(), uid, petID, activeOnly)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}
