package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"

	"github.com/sportsdesk/teamhub/internal/domain/admin"
	"github.com/sportsdesk/teamhub/internal/usecase"
)

var ErrInvalidToken = errors.New("invalid access token")

const DefaultTokenTTL = 7 * 24 * time.Hour

type claims struct {
	jwt.RegisteredClaims
	Email string     `json:"email"`
	Role  admin.Role `json:"role"`
}

// JWTIssuer signs HS256 access tokens for admins.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	clock  clockwork.Clock
}

func NewJWTIssuer(secret string, ttl time.Duration, issuer string, clock clockwork.Clock) (*JWTIssuer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &JWTIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		clock:  clock,
	}, nil
}

func (j *JWTIssuer) Issue(principal admin.Principal) (usecase.AccessToken, error) {
	if principal.ID == "" {
		return usecase.AccessToken{}, fmt.Errorf("issue token: principal id is required")
	}

	now := j.clock.Now().UTC()
	expiresAt := now.Add(j.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.ID,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: principal.Email,
		Role:  principal.Role,
	})

	signed, err := token.SignedString(j.secret)
	if err != nil {
		return usecase.AccessToken{}, fmt.Errorf("sign token: %w", err)
	}
	return usecase.AccessToken{Value: signed, ExpiresAt: expiresAt}, nil
}

func (j *JWTIssuer) Parse(raw string) (usecase.TokenClaims, error) {
	parsed := claims{}
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.clock.Now),
		jwt.WithExpirationRequired(),
	}
	if j.issuer != "" {
		options = append(options, jwt.WithIssuer(j.issuer))
	}

	token, err := jwt.ParseWithClaims(raw, &parsed, func(*jwt.Token) (any, error) {
		return j.secret, nil
	}, options...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return usecase.TokenClaims{}, fmt.Errorf("%w: token expired", ErrInvalidToken)
		}
		return usecase.TokenClaims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || parsed.Subject == "" {
		return usecase.TokenClaims{}, ErrInvalidToken
	}

	return usecase.TokenClaims{
		Subject: parsed.Subject,
		Email:   parsed.Email,
		Role:    parsed.Role,
	}, nil
}
