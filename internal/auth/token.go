package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"huddle/internal/apperr"
	"huddle/internal/models"
)

// Identity is what gets snapshotted into a token at login. Role and company
// scope are fixed at issuance and not re-derived until the token expires.
type Identity struct {
	ID    uuid.UUID
	Email string
	Role  models.Role
}

// Claims is the verified payload of a bearer token.
type Claims struct {
	ID    uuid.UUID   `json:"id"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Codec signs and verifies access tokens with a process-wide HS256 secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec builds a codec. An empty secret is a startup error, not something
// to discover per request.
func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("auth: signing secret must not be empty")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue serializes and signs the identity, valid for the configured TTL.
func (c *Codec) Issue(id Identity) (string, error) {
	now := c.now()
	claims := Claims{
		ID:    id.ID,
		Email: id.Email,
		Role:  id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", apperr.Unexpected(err)
	}
	return signed, nil
}

// Verify checks signature and expiry. Malformed, forged and expired tokens
// all map to the same rejection; callers learn nothing about which it was.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	if !claims.Role.Valid() || claims.ID == uuid.Nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	return claims, nil
}
