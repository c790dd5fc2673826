package devapi

import (
	"net/http"

	"pet-health-uk/internal/adapters/pethealthapi"
	"pet-health-uk/internal/middleware"
	"pet-health-uk/internal/ports/auth"
)

// @Summary Iniciar sesión
// @Description Valida email y password y devuelve un token Bearer junto al perfil.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body pethealthapi.LoginRequest true "Credenciales"
// @Success 200 {object} pethealthapi.AuthResponse
// @Failure 400 {object} pethealthapi.ErrorResponse "invalid json"
// @Failure 401 {object} pethealthapi.ErrorResponse "invalid email or password"
// @Router /auth/login [post]
func loginHandler(svc *Service, issuer auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pethealthapi.LoginRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		u, err := svc.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}
		token, _, err := issuer.Issue(r.Context(), pethealthapi.FormatID(u.ID), u.Email)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pethealthapi.AuthResponse{Token: token, User: u})
	}
}

// @Summary Crear cuenta
// @Description Registra un dueño nuevo y devuelve un token Bearer. phone_number es opcional.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body pethealthapi.RegisterRequest true "Datos de la cuenta"
// @Success 201 {object} pethealthapi.AuthResponse
// @Failure 400 {object} pethealthapi.ErrorResponse "validación"
// @Failure 409 {object} pethealthapi.ErrorResponse "email already registered"
// @Router /auth/register [post]
func registerHandler(svc *Service, issuer auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pethealthapi.RegisterRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		u, err := svc.Register(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		token, _, err := issuer.Issue(r.Context(), pethealthapi.FormatID(u.ID), u.Email)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, pethealthapi.AuthResponse{Token: token, User: u})
	}
}

// @Summary Cerrar sesión
// @Description Revoca el token usado en la llamada.
// @Tags auth
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} pethealthapi.EmptyResponse
// @Failure 401 {object} pethealthapi.ErrorResponse "unauthorized"
// @Router /auth/logout [post]
func logoutHandler(issuer auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		if err := issuer.Revoke(r.Context(), claims); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pethealthapi.EmptyResponse{})
	}
}

// @Summary Ver perfil
// @Tags user
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} pethealthapi.UserResponse
// @Failure 401 {object} pethealthapi.ErrorResponse "unauthorized"
// @Router /user/profile [get]
func getProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := currentUserID(w, r)
		if !ok {
			return
		}
		u, err := svc.Profile(r.Context(), uid)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

// @Summary Actualizar perfil
// @Description first_name y last_name son obligatorios; phone_number y postcode ausentes no modifican lo guardado.
// @Tags user
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param payload body pethealthapi.UpdateProfileRequest true "Perfil"
// @Success 200 {object} pethealthapi.UserResponse
// @Failure 400 {object} pethealthapi.ErrorResponse "validación"
// @Failure 401 {object} pethealthapi.ErrorResponse "unauthorized"
// @Router /user/profile [put]
func updateProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := currentUserID(w, r)
		if !ok {
			return
		}
		var req pethealthapi.UpdateProfileRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		u, err := svc.UpdateProfile(r.Context(), uid, req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

// @Summary Dashboard
// @Description Próximas citas (ascendente), mascotas y avisos de vacunas vencidas.
// @Tags user
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} pethealthapi.DashboardResponse
// @Failure 401 {object} pethealthapi.ErrorResponse "unauthorized"
// @Router /user/dashboard [get]
func dashboardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := currentUserID(w, r)
		if !ok {
			return
		}
		d, err := svc.Dashboard(r.Context(), uid)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, d)
	}
}
