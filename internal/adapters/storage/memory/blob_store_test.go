package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-health-uk/internal/ports/storage"
)

func TestBlobStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewBlobStore()

	_, err := s.Get(ctx, "k")
	assert.True(t, errors.Is(err, storage.ErrNotFound))

	v := []byte("hello")
	require.NoError(t, s.Put(ctx, "k", v))
	v[0] = 'j'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.True(t, errors.Is(err, storage.ErrNotFound))

	assert.Error(t, s.Put(ctx, " ", nil))
}
