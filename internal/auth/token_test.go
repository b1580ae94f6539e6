package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eventengine/eventengine/internal/model"
)

// fakeUsers satisfies UserLookup with a fixed set of live user ids.
type fakeUsers struct{ live map[uint64]bool }

func (f *fakeUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	if f.live[id] {
		return model.User{ID: id}, nil
	}
	return model.User{}, errors.New("user not found")
}

func newService(t *testing.T, live ...uint64) *TokenService {
	t.Helper()
	m := make(map[uint64]bool, len(live))
	for _, id := range live {
		m[id] = true
	}
	return NewTokenService("test-secret", 60, &fakeUsers{live: m})
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := newService(t, 1)
	in := Claims{UserID: 1, Email: "a@x.com", Role: "admin"}

	tok, err := svc.Issue(in)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	got, err := svc.Verify(context.Background(), tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if got != in {
		t.Fatalf("claims mismatch: got %+v want %+v", got, in)
	}
	if !IsAdmin(got) {
		t.Fatalf("expected IsAdmin for role %q", got.Role)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenService("right-secret", 60, &fakeUsers{live: map[uint64]bool{1: true}})
	verifier := newService(t, 1)

	tok, err := issuer.Issue(Claims{UserID: 1, Email: "a@x.com", Role: "user"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := verifier.Verify(context.Background(), tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	svc := newService(t, 1)
	expired := signedToken(t, "test-secret", jwt.MapClaims{
		"user_id": 1,
		"email":   "a@x.com",
		"role":    "user",
		"exp":     time.Now().UTC().Add(-time.Minute).Unix(),
	})
	if _, err := svc.Verify(context.Background(), expired); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerify_MissingUserID(t *testing.T) {
	t.Parallel()

	svc := newService(t, 1)
	tok := signedToken(t, "test-secret", jwt.MapClaims{
		"email": "a@x.com",
		"role":  "user",
		"exp":   time.Now().UTC().Add(time.Hour).Unix(),
	})
	if _, err := svc.Verify(context.Background(), tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for missing user_id, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	svc := newService(t, 1)
	if _, err := svc.Verify(context.Background(), "not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}

func TestVerify_SubjectGone(t *testing.T) {
	t.Parallel()

	// Token is cryptographically valid but the subject row no longer
	// exists, so it must be rejected.
	svc := newService(t) // no live users
	tok, err := svc.Issue(Claims{UserID: 7, Email: "gone@x.com", Role: "user"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := svc.Verify(context.Background(), tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for deleted subject, got %v", err)
	}
}

func TestIsAdmin_NonAdminRoles(t *testing.T) {
	t.Parallel()

	for _, role := range []string{"user", "", "ADMIN", "owner"} {
		if IsAdmin(Claims{UserID: 1, Role: role}) {
			t.Fatalf("role %q must not be admin", role)
		}
	}
}

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}
