package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"

	"github.com/sportsdesk/teamhub/internal/domain/admin"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(4)
	hash, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secret1" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("unexpected hash format: %q", hash)
	}
	if !hasher.Compare(hash, "secret1") {
		t.Fatalf("expected password to match")
	}
	if hasher.Compare(hash, "secret2") {
		t.Fatalf("expected mismatch for wrong password")
	}
	if hasher.Compare("not-a-hash", "secret1") {
		t.Fatalf("expected mismatch for malformed hash")
	}
}

func TestNewBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	t.Parallel()

	if got := NewBcryptHasher(99).cost; got != DefaultBcryptCost {
		t.Fatalf("unexpected cost: got=%d want=%d", got, DefaultBcryptCost)
	}
}

func TestJWTIssuer_RoundTrip(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	issuer, err := NewJWTIssuer("test-secret", time.Hour, "teamhub", clock)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}

	token, err := issuer.Issue(admin.Principal{ID: "65f1a2b3c4d5e6f708192a3b", Email: "root@example.com", Role: admin.RoleSuperAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if want := clock.Now().Add(time.Hour); !token.ExpiresAt.Equal(want) {
		t.Fatalf("unexpected expiry: got=%s want=%s", token.ExpiresAt, want)
	}

	got, err := issuer.Parse(token.Value)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Subject != "65f1a2b3c4d5e6f708192a3b" || got.Email != "root@example.com" || got.Role != admin.RoleSuperAdmin {
		t.Fatalf("unexpected claims: %+v", got)
	}
}

func TestJWTIssuer_RejectsExpiredToken(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	issuer, err := NewJWTIssuer("test-secret", time.Hour, "teamhub", clock)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	token, err := issuer.Issue(admin.Principal{ID: "65f1a2b3c4d5e6f708192a3b", Role: admin.RoleSubAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	clock.Advance(time.Hour + time.Second)
	_, err = issuer.Parse(token.Value)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after expiry, got %v", err)
	}
	if !strings.Contains(err.Error(), "token expired") {
		t.Fatalf("expected expiry to be named in the error, got %v", err)
	}
}

func TestJWTIssuer_RejectsForeignTokens(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	issuer, err := NewJWTIssuer("test-secret", time.Hour, "teamhub", clock)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	other, err := NewJWTIssuer("other-secret", time.Hour, "teamhub", clock)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	foreign, err := other.Issue(admin.Principal{ID: "65f1a2b3c4d5e6f708192a3b", Role: admin.RoleSuperAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "65f1a2b3c4d5e6f708192a3b",
		Issuer:    "teamhub",
		ExpiresAt: jwt.NewNumericDate(clock.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "wrong secret", token: foreign.Value},
		{name: "none algorithm", token: noneToken},
		{name: "garbage", token: "not.a.token"},
		{name: "empty", token: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := issuer.Parse(tc.token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestNewJWTIssuer_RequiresSecret(t *testing.T) {
	t.Parallel()

	if _, err := NewJWTIssuer("  ", time.Hour, "teamhub", nil); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
