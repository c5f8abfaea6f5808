package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/sportsdesk/teamhub/internal/domain/admin"
	idgen "github.com/sportsdesk/teamhub/internal/platform/id"
	"github.com/sportsdesk/teamhub/internal/platform/logging"
)

type CreateSubAdminInput struct {
	Name           string
	Email          string
	Password       string
	Sport          string
	Specialization string
	Permissions    *admin.Permissions
}

type UpdateSubAdminInput struct {
	Name           *string
	Password       *string
	Specialization *string
	Permissions    *admin.Permissions
	IsActive       *bool
}

// SubAdminService lets super admins manage sport-scoped operators.
type SubAdminService struct {
	repo     admin.SubAdminRepository
	hasher   PasswordHasher
	idGen    idgen.Generator
	validate *validator.Validate
	logger   *logging.Logger
	now      func() time.Time
}

func NewSubAdminService(repo admin.SubAdminRepository, hasher PasswordHasher, idGen idgen.Generator, logger *logging.Logger) *SubAdminService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SubAdminService{
		repo:     repo,
		hasher:   hasher,
		idGen:    idGen,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

func requireSuperAdmin(principal admin.Principal) error {
	if !principal.IsSuperAdmin() {
		return fmt.Errorf("%w: only super admins can manage sub-admins", ErrForbidden)
	}
	return nil
}

func parseSpecialization(raw string) (admin.Specialization, error) {
	spec := admin.Specialization(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := admin.AllSpecializations[spec]; !ok {
		return "", fmt.Errorf("%w: unknown specialization %q", ErrInvalidInput, raw)
	}
	return spec, nil
}

func (s *SubAdminService) Create(ctx context.Context, input CreateSubAdminInput, principal admin.Principal) (admin.SubAdmin, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubAdminService.Create")
	defer span.End()

	if err := requireSuperAdmin(principal); err != nil {
		return admin.SubAdmin{}, err
	}

	name := strings.TrimSpace(input.Name)
	email := admin.NormalizeEmail(input.Email)
	if err := validateCredentials(s.validate, name, email, input.Password); err != nil {
		return admin.SubAdmin{}, err
	}
	sport, err := parseSport(input.Sport)
	if err != nil {
		return admin.SubAdmin{}, err
	}
	spec, err := parseSpecialization(input.Specialization)
	if err != nil {
		return admin.SubAdmin{}, err
	}
	perms := admin.DefaultPermissions()
	if input.Permissions != nil {
		perms = *input.Permissions
	}

	if _, exists, err := s.repo.GetByEmail(ctx, email, sport); err != nil {
		return admin.SubAdmin{}, fmt.Errorf("get sub admin by email: %w", err)
	} else if exists {
		return admin.SubAdmin{}, fmt.Errorf("%w: %s already has a %s sub-admin account", ErrConflict, email, sport)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return admin.SubAdmin{}, fmt.Errorf("hash password: %w", err)
	}
	adminID, err := s.idGen.NewID()
	if err != nil {
		return admin.SubAdmin{}, fmt.Errorf("generate admin id: %w", err)
	}

	now := s.now().UTC()
	account := admin.SubAdmin{
		ID:             adminID,
		Name:           name,
		Email:          email,
		PasswordHash:   hash,
		Sport:          sport,
		Specialization: spec,
		Permissions:    perms,
		IsActive:       true,
		CreatedBy:      principal.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		if errors.Is(err, admin.ErrDuplicateEmail) {
			return admin.SubAdmin{}, fmt.Errorf("%w: %s already has a %s sub-admin account", ErrConflict, email, sport)
		}
		return admin.SubAdmin{}, fmt.Errorf("create sub admin: %w", err)
	}

	s.logger.InfoContext(ctx, "sub admin created", "admin_id", account.ID, "sport", sport, "created_by", principal.ID)
	return account, nil
}

func (s *SubAdminService) List(ctx context.Context, sport string, principal admin.Principal) ([]admin.SubAdmin, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubAdminService.List")
	defer span.End()

	if err := requireSuperAdmin(principal); err != nil {
		return nil, err
	}

	var filter admin.Sport
	if strings.TrimSpace(sport) != "" {
		parsed, err := parseSport(sport)
		if err != nil {
			return nil, err
		}
		filter = parsed
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list sub admins: %w", err)
	}
	return items, nil
}

func (s *SubAdminService) Update(ctx context.Context, adminID string, input UpdateSubAdminInput, principal admin.Principal) (admin.SubAdmin, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubAdminService.Update")
	defer span.End()

	if err := requireSuperAdmin(principal); err != nil {
		return admin.SubAdmin{}, err
	}
	account, err := s.load(ctx, adminID)
	if err != nil {
		return admin.SubAdmin{}, err
	}

	if v := trimPtr(input.Name); v != nil {
		if err := validateAdminName(*v); err != nil {
			return admin.SubAdmin{}, err
		}
		account.Name = *v
	}
	if input.Specialization != nil {
		spec, err := parseSpecialization(*input.Specialization)
		if err != nil {
			return admin.SubAdmin{}, err
		}
		account.Specialization = spec
	}
	if input.Permissions != nil {
		account.Permissions = *input.Permissions
	}
	if input.IsActive != nil {
		account.IsActive = *input.IsActive
	}
	if input.Password != nil {
		if err := validatePassword(*input.Password); err != nil {
			return admin.SubAdmin{}, err
		}
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return admin.SubAdmin{}, fmt.Errorf("hash password: %w", err)
		}
		account.PasswordHash = hash
	}

	account.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, account); err != nil {
		return admin.SubAdmin{}, fmt.Errorf("update sub admin: %w", err)
	}

	s.logger.InfoContext(ctx, "sub admin updated", "admin_id", account.ID, "active", account.IsActive)
	return account, nil
}

func (s *SubAdminService) Deactivate(ctx context.Context, adminID string, principal admin.Principal) error {
	inactive := false
	_, err := s.Update(ctx, adminID, UpdateSubAdminInput{IsActive: &inactive}, principal)
	return err
}

func (s *SubAdminService) load(ctx context.Context, adminID string) (admin.SubAdmin, error) {
	adminID, err := normalizeID("sub-admin", adminID)
	if err != nil {
		return admin.SubAdmin{}, err
	}

	account, exists, err := s.repo.GetByID(ctx, adminID)
	if err != nil {
		return admin.SubAdmin{}, fmt.Errorf("get sub admin: %w", err)
	}
	if !exists {
		return admin.SubAdmin{}, fmt.Errorf("%w: sub-admin=%s", ErrNotFound, adminID)
	}
	return account, nil
}
