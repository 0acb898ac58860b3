package crypto

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const DefaultTokenTTL = 30 * time.Minute

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type tokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer signs HS256 bearer tokens with secret. ttl <= 0 selects
// DefaultTokenTTL.
func NewTokenIssuer(secret []byte, ttl time.Duration) *tokenIssuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &tokenIssuer{secret: secret, ttl: ttl, now: time.Now}
}

func (t *tokenIssuer) TTL() time.Duration { return t.ttl }

// Issue mints a token for subject valid for ttl, or the issuer's default
// when ttl <= 0.
func (t *tokenIssuer) Issue(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("token subject is empty")
	}
	if len(t.secret) == 0 {
		return "", errors.New("token signing secret is not configured")
	}
	if ttl <= 0 {
		ttl = t.ttl
	}

	now := t.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the token subject. It fails with ErrTokenInvalid for a bad
// signature, algorithm or shape and ErrTokenExpired once past exp.
func (t *tokenIssuer) Verify(token string) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var claims jwt.RegisteredClaims
	_, err := parser.ParseWithClaims(token, &claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return "", ErrTokenInvalid
	}

	// Expiry is checked here against the issuer clock, not jwt's global one.
	if claims.ExpiresAt == nil {
		return "", ErrTokenInvalid
	}
	if !claims.VerifyExpiresAt(t.now(), true) {
		return "", ErrTokenExpired
	}
	if claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}
