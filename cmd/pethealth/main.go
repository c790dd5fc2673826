// Command pethealth es el front end de consola: sesión local más cliente remoto.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pet-health-uk/internal/adapters/pethealthapi"
	"pet-health-uk/internal/adapters/storage/file"
	"pet-health-uk/internal/adapters/storage/memory"
	"pet-health-uk/internal/adapters/storage/postgres"
	"pet-health-uk/internal/adapters/storage/redis"
	"pet-health-uk/internal/config"
	"pet-health-uk/internal/ports/storage"
	"pet-health-uk/internal/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}
	log := cfg.NewLogger("pethealth")

	blobs, closeBlobs, err := openBlobs(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeBlobs(); err != nil {
			log.Warn("closing state backend", map[string]any{"error": err.Error()})
		}
	}()

	store := session.New(blobs, session.Options{Logger: log})
	status, err := store.Load(ctx)
	switch {
	case errors.Is(err, session.ErrCorruptSnapshot):
		// se arranca con sesión vacía; el próximo guardado pisa el blob roto
		log.Warn("saved session was unreadable, starting fresh", map[string]any{"status": status.String()})
	case err != nil:
		return err
	}

	client, err := pethealthapi.New(pethealthapi.Config{
		BaseURL: cfg.APIURL,
		Timeout: cfg.HTTPTimeout,
		Tokens:  blobs,
		Logger:  log,
	})
	if err != nil {
		return err
	}
	if err := client.LoadAuthToken(ctx); err != nil {
		log.Warn("saved token unreadable", map[string]any{"error": err.Error()})
	}

	return newApp(store, client, os.Stdout, log).dispatch(ctx, args)
}

// openBlobs abre el backend configurado; el closer siempre es no-nil.
func openBlobs(ctx context.Context, cfg config.Config) (storage.BlobStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StateBackend {
	case config.BackendMemory:
		return memory.NewBlobStore(), noop, nil

	case config.BackendRedis:
		bs, err := redis.Open(ctx, redis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		return bs, bs.Close, nil

	case config.BackendPostgres:
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return postgres.NewBlobStore(db), db.Close, nil

	default:
		bs, err := file.NewBlobStore(cfg.StatePath)
		if err != nil {
			return nil, nil, err
		}
		return bs, noop, nil
	}
}
