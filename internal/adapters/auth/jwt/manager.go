package jwt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"pet-health-uk/internal/ports/auth"
)

const DefaultTTL = 24 * time.Hour

var ErrSecretRequired = errors.New("jwt secret required")

type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type tokenClaims struct {
	Email string `json:"email"`
	gojwt.RegisteredClaims
}

// Manager firma y verifica tokens HS256.
// Implementa auth.AuthVerifier y auth.TokenIssuer.
// Los tokens revocados se recuerdan en memoria hasta que expiran.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time // jti -> exp
}

func NewManager(cfg Config) (*Manager, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, ErrSecretRequired
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	issuer := strings.TrimSpace(cfg.Issuer)
	if issuer == "" {
		issuer = "pet-health-uk"
	}
	return &Manager{
		secret:  []byte(secret),
		issuer:  issuer,
		ttl:     ttl,
		now:     time.Now,
		revoked: make(map[string]time.Time),
	}, nil
}

func (m *Manager) Issue(ctx context.Context, userID, email string) (string, auth.Claims, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", auth.Claims{}, errors.New("user id required")
	}

	now := m.now()
	exp := now.Add(m.ttl)
	jti := uuid.NewString()

	claims := tokenClaims{
		Email: email,
		RegisteredClaims: gojwt.RegisteredClaims{
			ID:        jti,
			Subject:   userID,
			Issuer:    m.issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(exp),
		},
	}
	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", auth.Claims{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, auth.Claims{
		UserID:    userID,
		Email:     email,
		TokenID:   jti,
		ExpiresAt: exp.Truncate(time.Second),
	}, nil
}

func (m *Manager) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	var tc tokenClaims
	parsed, err := gojwt.ParseWithClaims(token, &tc, func(t *gojwt.Token) (any, error) {
		return m.secret, nil
	},
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithIssuer(m.issuer),
		gojwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}
	if strings.TrimSpace(tc.Subject) == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing subject", auth.ErrInvalidToken)
	}
	if m.isRevoked(tc.ID) {
		return auth.Claims{}, fmt.Errorf("%w: revoked", auth.ErrInvalidToken)
	}

	c := auth.Claims{
		UserID:  tc.Subject,
		Email:   tc.Email,
		TokenID: tc.ID,
	}
	if tc.ExpiresAt != nil {
		c.ExpiresAt = tc.ExpiresAt.Time
	}
	return c, nil
}

// Revoke invalida el token identificado por c.TokenID.
func (m *Manager) Revoke(ctx context.Context, c auth.Claims) error {
	if strings.TrimSpace(c.TokenID) == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.revoked[c.TokenID] = c.ExpiresAt
	m.pruneLocked()
	return nil
}

func (m *Manager) isRevoked(jti string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[jti]
	return ok
}

// pruneLocked olvida revocaciones de tokens ya expirados.
func (m *Manager) pruneLocked() {
	now := m.now()
	for id, exp := range m.revoked {
		if !exp.IsZero() && exp.Before(now) {
			delete(m.revoked, id)
		}
	}
}
