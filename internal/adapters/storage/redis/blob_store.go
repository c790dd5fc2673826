package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"pet-health-uk/internal/ports/storage"
)

type Config struct {
	Addr     string
	Password string
	DB       int

	// Prefix se antepone a cada key ("pethealth:" por defecto) para compartir instancia.
	Prefix string
	// TTL 0 = sin expiración.
	TTL time.Duration
}

type BlobStore struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

// Open crea el cliente y hace ping antes de devolverlo.
func Open(ctx context.Context, cfg Config) (*BlobStore, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, errors.New("redis blob store: addr required")
	}

	client := goredis.NewClient(&goredis.Options{
		Network:  "tcp",
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis blob store: ping: %w", err)
	}

	return NewBlobStore(client, cfg.Prefix, cfg.TTL), nil
}

func NewBlobStore(client *goredis.Client, prefix string, ttl time.Duration) *BlobStore {
	if prefix == "" {
		prefix = "pethealth:"
	}
	return &BlobStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis blob store: get %s: %w", key, err)
	}
	return b, nil
}

func (s *BlobStore) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis blob store: set %s: %w", key, err)
	}
	return nil
}

func (s *BlobStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis blob store: del %s: %w", key, err)
	}
	return nil
}

func (s *BlobStore) Close() error {
	return s.client.Close()
}
