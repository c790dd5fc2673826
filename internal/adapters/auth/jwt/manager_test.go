package jwt

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-health-uk/internal/ports/auth"
)

func TestManager_IssueVerifyRevoke(t *testing.T) {
	ctx := context.Background()
	m, err := NewManager(Config{Secret: "s3cret"})
	require.NoError(t, err)

	tok, issued, err := m.Issue(ctx, "1", "ann@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, issued.TokenID)

	c, err := m.Verify(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, "1", c.UserID)
	assert.Equal(t, "ann@example.com", c.Email)
	assert.Equal(t, issued.TokenID, c.TokenID)

	require.NoError(t, m.Revoke(ctx, c))
	_, err = m.Verify(ctx, tok)
	assert.True(t, errors.Is(err, auth.ErrInvalidToken))

	// otro token del mismo usuario sigue siendo válido
	tok2, _, err := m.Issue(ctx, "1", "ann@example.com")
	require.NoError(t, err)
	_, err = m.Verify(ctx, tok2)
	assert.NoError(t, err)
}

func TestManager_RejectsForeignExpiredAndGarbage(t *testing.T) {
	ctx := context.Background()
	a, err := NewManager(Config{Secret: "a"})
	require.NoError(t, err)
	b, err := NewManager(Config{Secret: "b"})
	require.NoError(t, err)

	tok, _, err := a.Issue(ctx, "1", "")
	require.NoError(t, err)

	_, err = b.Verify(ctx, tok)
	assert.True(t, errors.Is(err, auth.ErrInvalidToken))

	_, err = a.Verify(ctx, "not-a-jwt")
	assert.True(t, errors.Is(err, auth.ErrInvalidToken))

	_, err = a.Verify(ctx, "")
	assert.True(t, errors.Is(err, auth.ErrInvalidToken))

	a.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	_, err = a.Verify(ctx, tok)
	assert.True(t, errors.Is(err, auth.ErrInvalidToken))
}

func TestNewManager_RequiresSecret(t *testing.T) {
	_, err := NewManager(Config{Secret: "  "})
	assert.True(t, errors.Is(err, ErrSecretRequired))
}
