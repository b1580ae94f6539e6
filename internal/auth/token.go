// Package auth implements the token service: issuing and verifying the
// signed credentials that every protected endpoint requires, plus the
// role checks derived from a verified token.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eventengine/eventengine/internal/model"
)

// DefaultTTLMinutes is the token lifetime used when configuration does
// not override it.
const DefaultTTLMinutes = 60

// ErrInvalidToken is the single failure value for verification. A
// malformed token, a wrong signature, an expired token, a missing
// user_id claim and a deleted subject all collapse into it; callers
// never learn which check failed.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the identity carried inside a token.
type Claims struct {
	UserID uint64
	Email  string
	Role   string
}

// UserLookup is the slice of the user repository the token service
// needs for its subject-liveness check.
type UserLookup interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// TokenService signs and verifies HS256 tokens with a single shared
// secret. The secret and TTL are fixed at construction and never
// change for the life of the process.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	users  UserLookup
}

func NewTokenService(secret string, ttlMin int, users UserLookup) *TokenService {
	if ttlMin <= 0 {
		ttlMin = DefaultTTLMinutes
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    time.Duration(ttlMin) * time.Minute,
		users:  users,
	}
}

// Issue builds and signs a token embedding the claims and an absolute
// expiry of now + TTL.
func (s *TokenService) Issue(c Claims) (string, error) {
	now := time.Now().UTC()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": c.UserID,
		"email":   c.Email,
		"role":    c.Role,
		"exp":     now.Add(s.ttl).Unix(),
		"iat":     now.Unix(),
	})
	return t.SignedString(s.secret)
}

// Verify parses and validates a token and then checks that the subject
// still exists in the store. Tokens do not outlive their subject: a
// cryptographically valid token for a deleted user is invalid. The
// store round-trip on every verification is a deliberate policy.
func (s *TokenService) Verify(ctx context.Context, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	c := Claims{}
	switch id := mc["user_id"].(type) {
	case float64:
		c.UserID = uint64(id)
	default:
		return Claims{}, ErrInvalidToken
	}
	if c.UserID == 0 {
		return Claims{}, ErrInvalidToken
	}
	c.Email, _ = mc["email"].(string)
	c.Role, _ = mc["role"].(string)

	if _, err := s.users.GetByID(ctx, c.UserID); err != nil {
		return Claims{}, ErrInvalidToken
	}
	return c, nil
}
