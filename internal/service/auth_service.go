package service

import (
	"context"
	"errors"
	"strings"

	"go-inventory-api/internal/apperror"
	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"
	"go-inventory-api/pkg/jwt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrAdminRegistrationDisabled = apperror.Forbidden("Admin registration is disabled")

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	RegisterAdmin(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*AuthResponse, error)
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// AuthResponse is the user plus a fresh bearer token.
type AuthResponse struct {
	model.UserResponse
	Token string `json:"token"`
}

type authService struct {
	userRepo   repository.UserRepository
	tokens     *jwt.Manager
	allowAdmin bool
	log        *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Manager, allowAdminRegistration bool, log *zap.Logger) AuthService {
	return &authService{
		userRepo:   userRepo,
		tokens:     tokens,
		allowAdmin: allowAdminRegistration,
		log:        log,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	return s.register(ctx, req, false)
}

// RegisterAdmin creates a user with the admin flag set. The route is public;
// deployments close it with ALLOW_ADMIN_REGISTRATION=false.
func (s *authService) RegisterAdmin(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if !s.allowAdmin {
		return nil, ErrAdminRegistrationDisabled
	}
	return s.register(ctx, req, true)
}

func (s *authService) register(ctx context.Context, req *RegisterRequest, isAdmin bool) (*AuthResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if err := validate(req); err != nil {
		return nil, err
	}

	if err := s.ensureEmailFree(ctx, req.Email, uuid.Nil); err != nil {
		return nil, err
	}

	user := &model.User{Name: req.Name, Email: req.Email, IsAdmin: isAdmin}
	user.CreatedBy = "self-registration"
	user.UpdatedBy = user.CreatedBy
	if err := user.SetPassword(req.Password); err != nil {
		return nil, apperror.Unexpected(err)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("User already exists")
		}
		return nil, apperror.Unexpected(err)
	}

	if isAdmin {
		s.log.Warn("admin account self-registered", zap.String("user_id", user.ID.String()), zap.String("email", user.Email))
	}
	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if isNotFound(err) {
			return nil, apperror.Auth(msgInvalidLogin)
		}
		return nil, apperror.Unexpected(err)
	}
	if !user.CheckPassword(req.Password) {
		return nil, apperror.Auth(msgInvalidLogin)
	}

	return s.issue(user)
}

func (s *authService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, msgUserNotFound)
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*AuthResponse, error) {
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		req.Email = &email
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, msgUserNotFound)
	}

	// Empty values keep the current ones.
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil && *req.Email != "" && *req.Email != user.Email {
		if err := s.ensureEmailFree(ctx, *req.Email, user.ID); err != nil {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.Password != nil && *req.Password != "" {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, apperror.Unexpected(err)
		}
	}
	user.UpdatedBy = user.ID.String()

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("User already exists")
		}
		return nil, apperror.Unexpected(err)
	}

	return s.issue(user)
}

// Authenticate resolves a bearer token to the user it was issued for.
func (s *authService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrMissingToken) {
			return nil, apperror.Auth("Not authorized, no token")
		}
		return nil, apperror.Auth("Not authorized, token failed")
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperror.Auth("Not authorized, user not found")
		}
		return nil, apperror.Unexpected(err)
	}
	return user, nil
}

func (s *authService) issue(user *model.User) (*AuthResponse, error) {
	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	return &AuthResponse{UserResponse: user.ToResponse(), Token: token}, nil
}

func (s *authService) ensureEmailFree(ctx context.Context, email string, self uuid.UUID) error {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil && existing.ID != self:
		return apperror.Conflict("User already exists")
	case err != nil && !isNotFound(err):
		return apperror.Unexpected(err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
