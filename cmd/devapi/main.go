package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-health-uk/internal/adapters/auth/jwt"
	"pet-health-uk/internal/config"
	"pet-health-uk/internal/devapi"
	"pet-health-uk/internal/router"
)

func main() {
	demo := flag.Bool("demo", false, "crea la cuenta demo con una mascota y registros")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		// todavía sin logger configurado
		_, _ = os.Stderr.WriteString("configuration error: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := cfg.NewLogger("pethealth-devapi")

	svc := devapi.NewService(devapi.ServiceOptions{})
	if *demo {
		if err := svc.SeedDemo(context.Background()); err != nil {
			log.Error("demo seed failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		log.Info("demo account ready", map[string]any{"email": devapi.DemoEmail, "password": devapi.DemoPassword})
	}

	opts := router.Options{
		Service:     svc,
		Logger:      log,
		CORSOrigins: cfg.CORSOrigins,
	}
	// sin JWT_SECRET el router usa un secreto efímero (modo dev)
	if cfg.JWTSecret != "" {
		tokens, err := jwt.NewManager(jwt.Config{Secret: cfg.JWTSecret, Issuer: "pethealth-devapi"})
		if err != nil {
			log.Error("jwt manager", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		opts.Tokens = tokens
	}

	srv := &http.Server{
		Addr:         ":" + cfg.DevAPIPort,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}()

	<-stop
	log.Info("shutting down server", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	log.Info("server stopped", nil)
}
