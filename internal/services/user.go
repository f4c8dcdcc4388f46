package service

import (
	"context"
	stdErrors "errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/clock"
	"github.com/savedate/save-date/internal/errors"
	"github.com/savedate/save-date/internal/models"
	repository "github.com/savedate/save-date/internal/repositories"
	"github.com/savedate/save-date/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	CreateUser(ctx context.Context, tenantID uuid.UUID, req *models.CreateUserRequest) (*models.User, error)
	GetUserByID(ctx context.Context, tenantID, id uuid.UUID) (*models.User, error)
	CreateTenant(ctx context.Context, name string, admin *models.CreateUserRequest) (*models.Tenant, *models.User, error)
}

type userService struct {
	repo        repository.UserRepository
	tenantRepo  repository.TenantRepository
	rateLimiter repository.RateLimitRepository
	jwtKey      []byte
	tokenTTL    time.Duration
	clock       clock.Clock
}

func NewUserService(repo repository.UserRepository, tenantRepo repository.TenantRepository, rateLimiter repository.RateLimitRepository,
	jwtKey []byte, tokenTTL time.Duration, clk clock.Clock) UserService {
	return &userService{
		repo:        repo,
		tenantRepo:  tenantRepo,
		rateLimiter: rateLimiter,
		jwtKey:      jwtKey,
		tokenTTL:    tokenTTL,
		clock:       clk,
	}
}

func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// check rate limit
	allowed, remaining, retryAfter, err := s.rateLimiter.CheckLoginRateLimit(ctx, email)
	if err != nil {
		return nil, errors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return &models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: retryAfter,
		}, nil
	}

	invalid := &models.LoginResponse{
		Success:        false,
		Message:        "Invalid email or password",
		RemainingTries: remaining,
	}

	// Retrieve the user from the DB and compare the passwords
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return invalid, nil
		}

		return nil, errors.DatabaseError("Failed to fetch user").WithError(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return invalid, nil
	}

	tenant, err := s.tenantRepo.GetTenantByID(ctx, user.TenantID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch tenant").WithError(err)
	}

	if tenant.Status != models.TenantStatusActive {
		return nil, errors.ForbiddenError("Account is suspended")
	}

	now := s.clock.Now()

	claims := &models.Claims{
		UserID:   user.ID,
		TenantID: user.TenantID,
		Role:     user.Role,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	// Generate Token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &models.LoginResponse{
		Success:   true,
		Token:     tokenString,
		ExpiresIn: int(s.tokenTTL.Seconds()),
	}, nil
}

// CreateUser adds a user to the caller's tenant. Emails are unique across
// tenants since login does not name a tenant.
func (s *userService) CreateUser(ctx context.Context, tenantID uuid.UUID, req *models.CreateUserRequest) (*models.User, error) {

	name := utils.SanitizeText(req.Name)
	if name == "" {
		return nil, errors.AddValidationError("name", "is required")
	}

	role := req.Role
	if role == "" {
		role = models.RoleMember
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("Failed to secure password").WithError(err)
	}

	user := &models.User{
		ID:       uuid.New(),
		TenantID: tenantID,
		Name:     name,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: string(hashedPassword),
		Role:     role,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if stdErrors.Is(err, repository.ErrDuplicate) {
			return nil, errors.DuplicateEntryError("Email already registered").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to create user").WithError(err)
	}

	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, tenantID, id uuid.UUID) (*models.User, error) {

	user, err := s.repo.GetUserByID(ctx, tenantID, id)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("User not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch user").WithError(err)
	}

	return user, nil
}

// CreateTenant provisions a tenant together with its first admin.
func (s *userService) CreateTenant(ctx context.Context, name string, admin *models.CreateUserRequest) (*models.Tenant, *models.User, error) {

	tenantName := utils.SanitizeText(name)
	if tenantName == "" {
		return nil, nil, errors.AddValidationError("name", "is required")
	}

	tenant := &models.Tenant{
		ID:     uuid.New(),
		Name:   tenantName,
		Status: models.TenantStatusActive,
	}

	if err := s.tenantRepo.CreateTenant(ctx, tenant); err != nil {
		return nil, nil, errors.DatabaseError("Failed to create tenant").WithError(err)
	}

	adminReq := *admin
	adminReq.Role = models.RoleAdmin

	user, err := s.CreateUser(ctx, tenant.ID, &adminReq)
	if err != nil {
		return tenant, nil, err
	}

	return tenant, user, nil
}
