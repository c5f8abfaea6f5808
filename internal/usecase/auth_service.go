package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/sportsdesk/teamhub/internal/domain/admin"
	idgen "github.com/sportsdesk/teamhub/internal/platform/id"
	"github.com/sportsdesk/teamhub/internal/platform/logging"
)

const (
	minNameLength     = 2
	maxNameLength     = 120
	maxEmailLength    = 254
	minPasswordLength = 6
	// bcrypt ignores bytes past 72.
	maxPasswordBytes = 72
)

const invalidCredentialsMessage = "invalid email or password"

// PasswordHasher hashes and checks admin passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type AccessToken struct {
	Value     string
	ExpiresAt time.Time
}

type TokenClaims struct {
	Subject string
	Email   string
	Role    admin.Role
}

// TokenIssuer signs and verifies access tokens.
type TokenIssuer interface {
	Issue(principal admin.Principal) (AccessToken, error)
	Parse(token string) (TokenClaims, error)
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type SubAdminLoginInput struct {
	Email    string
	Password string
	Sport    string
}

type Session struct {
	Token     AccessToken
	Principal admin.Principal
}

// Profile is the caller's own account view.
type Profile struct {
	Principal      admin.Principal
	Specialization admin.Specialization
	IsActive       bool
	LastLoginAt    *time.Time
	CreatedAt      time.Time
}

type AuthService struct {
	superRepo admin.SuperAdminRepository
	subRepo   admin.SubAdminRepository
	hasher    PasswordHasher
	tokens    TokenIssuer
	idGen     idgen.Generator
	validate  *validator.Validate
	logger    *logging.Logger
	now       func() time.Time
}

func NewAuthService(
	superRepo admin.SuperAdminRepository,
	subRepo admin.SubAdminRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	idGen idgen.Generator,
	logger *logging.Logger,
) *AuthService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AuthService{
		superRepo: superRepo,
		subRepo:   subRepo,
		hasher:    hasher,
		tokens:    tokens,
		idGen:     idGen,
		validate:  validator.New(),
		logger:    logger,
		now:       time.Now,
	}
}

// Register creates a super admin. Anyone may register the first account;
// after that the caller must be a signed-in super admin. A zero caller is
// anonymous.
func (s *AuthService) Register(ctx context.Context, caller admin.Principal, input RegisterInput) (admin.SuperAdmin, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Register")
	defer span.End()

	if err := s.authorizeRegistration(ctx, caller); err != nil {
		return admin.SuperAdmin{}, err
	}

	name := strings.TrimSpace(input.Name)
	email := admin.NormalizeEmail(input.Email)
	if err := validateCredentials(s.validate, name, email, input.Password); err != nil {
		return admin.SuperAdmin{}, err
	}

	if _, exists, err := s.superRepo.GetByEmail(ctx, email); err != nil {
		return admin.SuperAdmin{}, fmt.Errorf("get super admin by email: %w", err)
	} else if exists {
		return admin.SuperAdmin{}, fmt.Errorf("%w: email %s is already registered", ErrConflict, email)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return admin.SuperAdmin{}, fmt.Errorf("hash password: %w", err)
	}
	adminID, err := s.idGen.NewID()
	if err != nil {
		return admin.SuperAdmin{}, fmt.Errorf("generate admin id: %w", err)
	}

	now := s.now().UTC()
	account := admin.SuperAdmin{
		ID:           adminID,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.superRepo.Create(ctx, account); err != nil {
		if errors.Is(err, admin.ErrDuplicateEmail) {
			return admin.SuperAdmin{}, fmt.Errorf("%w: email %s is already registered", ErrConflict, email)
		}
		return admin.SuperAdmin{}, fmt.Errorf("create super admin: %w", err)
	}

	s.logger.InfoContext(ctx, "super admin registered", "admin_id", account.ID, "registered_by", caller.ID)
	return account, nil
}

func (s *AuthService) authorizeRegistration(ctx context.Context, caller admin.Principal) error {
	if caller.IsSuperAdmin() {
		return nil
	}

	count, err := s.superRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count super admins: %w", err)
	}
	if count == 0 {
		return nil
	}
	if caller.ID == "" {
		return fmt.Errorf("%w: registration is closed, sign in as a super admin", ErrUnauthorized)
	}
	return fmt.Errorf("%w: only a super admin can register another super admin", ErrForbidden)
}

func validateCredentials(v *validator.Validate, name, email, password string) error {
	if err := validateAdminName(name); err != nil {
		return err
	}
	if utf8.RuneCountInString(email) > maxEmailLength {
		return fmt.Errorf("%w: email must be at most %d characters", ErrInvalidInput, maxEmailLength)
	}
	if err := v.Var(email, "required,email"); err != nil {
		return fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}
	return validatePassword(password)
}

func validateAdminName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < minNameLength {
		return fmt.Errorf("%w: name must be at least %d characters", ErrInvalidInput, minNameLength)
	}
	if n > maxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, maxNameLength)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, maxPasswordBytes)
	}
	return nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	email := admin.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return Session{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	account, exists, err := s.superRepo.GetByEmail(ctx, email)
	if err != nil {
		return Session{}, fmt.Errorf("get super admin by email: %w", err)
	}
	if !exists || !s.hasher.Compare(account.PasswordHash, input.Password) {
		s.logger.WarnContext(ctx, "super admin login rejected", "email", email)
		return Session{}, fmt.Errorf("%w: %s", ErrUnauthorized, invalidCredentialsMessage)
	}

	principal := account.Principal()
	token, err := s.tokens.Issue(principal)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}

	if err := s.superRepo.TouchLogin(ctx, account.ID, s.now().UTC()); err != nil {
		s.logger.WarnContext(ctx, "record super admin login failed", "admin_id", account.ID, "error", err)
	}
	return Session{Token: token, Principal: principal}, nil
}

func (s *AuthService) LoginSubAdmin(ctx context.Context, input SubAdminLoginInput) (Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.LoginSubAdmin")
	defer span.End()

	email := admin.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return Session{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}
	sport, err := parseSport(input.Sport)
	if err != nil {
		return Session{}, err
	}

	account, exists, err := s.subRepo.GetByEmail(ctx, email, sport)
	if err != nil {
		return Session{}, fmt.Errorf("get sub admin by email: %w", err)
	}
	if !exists || !s.hasher.Compare(account.PasswordHash, input.Password) {
		s.logger.WarnContext(ctx, "sub admin login rejected", "email", email, "sport", sport)
		return Session{}, fmt.Errorf("%w: %s", ErrUnauthorized, invalidCredentialsMessage)
	}
	if !account.IsActive {
		return Session{}, fmt.Errorf("%w: account is deactivated", ErrForbidden)
	}

	principal := account.Principal()
	token, err := s.tokens.Issue(principal)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}

	if err := s.subRepo.TouchLogin(ctx, account.ID, s.now().UTC()); err != nil {
		s.logger.WarnContext(ctx, "record sub admin login failed", "admin_id", account.ID, "error", err)
	}
	return Session{Token: token, Principal: principal}, nil
}

// Authenticate verifies an access token and resolves the current principal.
// Tokens of deleted or deactivated accounts are rejected.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (admin.Principal, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Authenticate")
	defer span.End()

	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return admin.Principal{}, fmt.Errorf("%w: missing access token", ErrUnauthorized)
	}

	claims, err := s.tokens.Parse(rawToken)
	if err != nil {
		return admin.Principal{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	switch claims.Role {
	case admin.RoleSuperAdmin:
		account, exists, err := s.superRepo.GetByID(ctx, claims.Subject)
		if err != nil {
			return admin.Principal{}, fmt.Errorf("get super admin: %w", err)
		}
		if !exists {
			return admin.Principal{}, fmt.Errorf("%w: account no longer exists", ErrUnauthorized)
		}
		return account.Principal(), nil
	case admin.RoleSubAdmin:
		account, exists, err := s.subRepo.GetByID(ctx, claims.Subject)
		if err != nil {
			return admin.Principal{}, fmt.Errorf("get sub admin: %w", err)
		}
		if !exists || !account.IsActive {
			return admin.Principal{}, fmt.Errorf("%w: account is not active", ErrUnauthorized)
		}
		return account.Principal(), nil
	default:
		return admin.Principal{}, fmt.Errorf("%w: unknown role %q", ErrUnauthorized, claims.Role)
	}
}

func (s *AuthService) Profile(ctx context.Context, principal admin.Principal) (Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Profile")
	defer span.End()

	switch principal.Role {
	case admin.RoleSuperAdmin:
		account, exists, err := s.superRepo.GetByID(ctx, principal.ID)
		if err != nil {
			return Profile{}, fmt.Errorf("get super admin: %w", err)
		}
		if !exists {
			return Profile{}, fmt.Errorf("%w: admin=%s", ErrNotFound, principal.ID)
		}
		return Profile{
			Principal:   account.Principal(),
			IsActive:    true,
			LastLoginAt: account.LastLoginAt,
			CreatedAt:   account.CreatedAt,
		}, nil
	case admin.RoleSubAdmin:
		account, exists, err := s.subRepo.GetByID(ctx, principal.ID)
		if err != nil {
			return Profile{}, fmt.Errorf("get sub admin: %w", err)
		}
		if !exists {
			return Profile{}, fmt.Errorf("%w: admin=%s", ErrNotFound, principal.ID)
		}
		return Profile{
			Principal:      account.Principal(),
			Specialization: account.Specialization,
			IsActive:       account.IsActive,
			LastLoginAt:    account.LastLoginAt,
			CreatedAt:      account.CreatedAt,
		}, nil
	default:
		return Profile{}, fmt.Errorf("%w: unknown role", ErrUnauthorized)
	}
}

func parseSport(raw string) (admin.Sport, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return admin.SportCricket, nil
	}
	sport := admin.Sport(raw)
	if _, ok := admin.AllSports[sport]; !ok {
		return "", fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, raw)
	}
	return sport, nil
}
