package redis

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-health-uk/internal/ports/storage"
)

// Test de integración: requiere TEST_REDIS_ADDR (p.ej. localhost:6379).
func TestBlobStore_Integration(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	s, err := Open(ctx, Config{Addr: addr, Prefix: "pethealth-test:" + uuid.NewString() + ":"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.Get(ctx, "auth_token")
	assert.True(t, errors.Is(err, storage.ErrNotFound))

	require.NoError(t, s.Put(ctx, "auth_token", []byte("abc123")))
	got, err := s.Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.Equal(t, "abc123", string(got))

	require.NoError(t, s.Delete(ctx, "auth_token"))
	_, err = s.Get(ctx, "auth_token")
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestOpen_RequiresAddr(t *testing.T) {
	_, err := Open(context.Background(), Config{})
	assert.Error(t, err)
}
