package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "pet-health-uk/docs"
	"pet-health-uk/internal/adapters/auth/jwt"
	"pet-health-uk/internal/devapi"
	"pet-health-uk/internal/middleware"
	"pet-health-uk/internal/platform/logger"
	"pet-health-uk/internal/ports/auth"
)

// TokenManager emite y verifica tokens; jwt.Manager cumple ambas.
type TokenManager interface {
	auth.AuthVerifier
	auth.TokenIssuer
}

type Options struct {
	// Si es nil se crea uno vacío con la semilla de clínicas y categorías.
	Service *devapi.Service

	// Si es nil se usa un jwt.Manager con secreto aleatorio (modo dev).
	Tokens TokenManager

	Logger      logger.Logger
	CORSOrigins []string
}

func NewRouter(opts Options) http.Handler {
	log := logger.OrNop(opts.Logger)

	svc := opts.Service
	if svc == nil {
		svc = devapi.NewService(devapi.ServiceOptions{})
	}

	tokens := opts.Tokens
	if tokens == nil {
		m, err := jwt.NewManager(jwt.Config{Secret: uuid.NewString(), Issuer: "pethealth-devapi"})
		if err != nil {
			// solo falla con secreto vacío
			panic(err)
		}
		log.Warn("jwt secret not configured, using ephemeral secret", nil)
		tokens = m
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))
	r.Use(middleware.CORS(opts.CORSOrigins))

	r.Use(middleware.AuthContext(tokens))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api", func(api chi.Router) {
		devapi.RegisterRoutes(api, svc, tokens)
	})

	return r
}
