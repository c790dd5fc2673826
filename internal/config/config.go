// Package config carga la configuración desde variables de entorno y un .env opcional.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"pet-health-uk/internal/platform/logger"
)

const (
	DefaultAPIURL      = "https://api.pethealthuk.co.uk/api"
	DefaultHTTPTimeout = 15 * time.Second
	DefaultStatePath   = ".pethealth"
	DefaultEnvFile     = ".env"
)

// Backend donde vive el blob de la sesión local.
type Backend string

const (
	BackendFile     Backend = "file"
	BackendMemory   Backend = "memory"
	BackendRedis    Backend = "redis"
	BackendPostgres Backend = "postgres"
)

func ParseBackend(s string) (Backend, error) {
	b := Backend(strings.ToLower(strings.TrimSpace(s)))
	switch b {
	case BackendFile, BackendMemory, BackendRedis, BackendPostgres:
		return b, nil
	}
	return "", fmt.Errorf("unknown state backend %q", s)
}

type Config struct {
	// Cliente remoto
	APIURL      string
	HTTPTimeout time.Duration

	// Sesión local
	StateBackend Backend
	StatePath    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DatabaseURL string

	LogLevel  string
	LogFormat string

	// Backend de desarrollo
	DevAPIPort  string
	JWTSecret   string
	CORSOrigins []string
}

// Load lee el entorno. Si existe un .env (o el archivo de PETHEALTH_ENV_FILE) sus valores
// se usan como fallback; el entorno real siempre gana.
// Devuelve un error que lista todas las variables faltantes o inválidas.
func Load() (Config, error) {
	envFile := os.Getenv("PETHEALTH_ENV_FILE")
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read %s: %w", envFile, err)
	}
	e := env{file: dotenv}

	cfg := Config{
		APIURL:        e.get("PETHEALTH_API_URL", DefaultAPIURL),
		StatePath:     e.get("PETHEALTH_STATE_PATH", DefaultStatePath),
		RedisAddr:     e.get("REDIS_ADDR", ""),
		RedisPassword: e.get("REDIS_PASSWORD", ""),
		DatabaseURL:   e.get("DATABASE_URL", ""),
		LogLevel:      e.get("LOG_LEVEL", "info"),
		LogFormat:     e.get("LOG_FORMAT", "text"),
		DevAPIPort:    e.get("DEVAPI_PORT", "8080"),
		JWTSecret:     e.get("JWT_SECRET", ""),
		CORSOrigins:   splitCSV(e.get("CORS_ORIGINS", "")),
	}

	var problems []string

	cfg.HTTPTimeout = DefaultHTTPTimeout
	if v := e.get("PETHEALTH_HTTP_TIMEOUT", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			problems = append(problems, "PETHEALTH_HTTP_TIMEOUT must be a positive duration")
		} else {
			cfg.HTTPTimeout = d
		}
	}

	if v := e.get("REDIS_DB", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			problems = append(problems, "REDIS_DB must be a non-negative integer")
		} else {
			cfg.RedisDB = n
		}
	}

	backend, err := ParseBackend(e.get("PETHEALTH_STATE_BACKEND", string(BackendFile)))
	if err != nil {
		problems = append(problems, "PETHEALTH_STATE_BACKEND must be one of file, memory, redis, postgres")
	}
	cfg.StateBackend = backend

	var missing []string
	switch backend {
	case BackendRedis:
		if cfg.RedisAddr == "" {
			missing = append(missing, "REDIS_ADDR")
		}
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	}
	if len(missing) > 0 {
		problems = append(problems, "required environment variables not set: "+strings.Join(missing, ", "))
	}

	if len(problems) > 0 {
		return Config{}, errors.New(strings.Join(problems, "; "))
	}
	return cfg, nil
}

// NewLogger arma el logger con el nivel y formato configurados.
func (c Config) NewLogger(app string) logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(c.LogLevel),
		Format: logger.ParseFormat(c.LogFormat),
		App:    app,
	})
}

type env struct {
	file map[string]string
}

// get: entorno, luego .env, luego fallback. Vacío cuenta como no seteado.
func (e env) get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	if v := strings.TrimSpace(e.file[key]); v != "" {
		return v
	}
	return fallback
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
