package services

import (
	"context"
	"fmt"
	"time"

	"safetour/internal/models"
	"safetour/internal/repositories/interfaces"
	"safetour/internal/utils"
	"safetour/pkg/logger"
)

type RegisterRequest struct {
	Username string          `json:"username" validate:"required,min=3,max=50"`
	Password string          `json:"password" validate:"required,min=8"`
	Role     models.UserRole `json:"role"`
}

type LoginRequest struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
	IPAddress string `json:"-"`
}

type AuthResponse struct {
	User      *models.User `json:"user"`
	TokenPair *utils.TokenPair `json:"tokens"`
}

type AuthService interface {
	Register(ctx context.Context, request *RegisterRequest) (*models.User, error)
	Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*utils.TokenPair, error)

	// CurrentUser resolves a bearer token to an active account. Used by
	// the auth middleware on every request.
	CurrentUser(ctx context.Context, tokenString string) (*models.User, error)
}

type authService struct {
	userRepo    interfaces.UserRepository
	auditor     AuditService
	cache       CacheService
	tokens      *utils.TokenService
	maxAttempts int
	lockout     time.Duration
	logger      *logger.Logger
}

func NewAuthService(
	userRepo interfaces.UserRepository,
	auditor AuditService,
	cache CacheService,
	tokens *utils.TokenService,
	maxAttempts int,
	lockout time.Duration,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		auditor:     auditor,
		cache:       cache,
		tokens:      tokens,
		maxAttempts: maxAttempts,
		lockout:     lockout,
		logger:      logger,
	}
}

// Register creates a new account. The role defaults to tourist and is
// immutable afterwards.
func (s *authService) Register(ctx context.Context, request *RegisterRequest) (*models.User, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	role := request.Role
	if role == "" {
		role = models.RoleTourist
	}
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("unknown role: %s", role)
	}

	if existing, _ := s.userRepo.GetByUsername(ctx, request.Username); existing != nil {
		return nil, ErrUsernameTaken
	}

	hashed, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: request.Username,
		Password: hashed,
		Role:     role,
		IsActive: true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.WithError(err).Error("Failed to create user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.WithUserID(user.ID).WithField("role", user.Role).Info("User registered")
	return user, nil
}

func (s *authService) Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if s.isThrottled(ctx, request.Username) {
		s.logger.LogSecurityEvent("login_throttled", "medium", map[string]interface{}{
			"username": request.Username,
		})
		return nil, ErrTooManyAttempts
	}

	user, err := s.userRepo.GetByUsername(ctx, request.Username)
	if err != nil || user == nil {
		s.recordFailure(ctx, request.Username, request.IPAddress)
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPassword(request.Password, user.Password) {
		s.recordFailure(ctx, request.Username, request.IPAddress)
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	pair, err := s.tokens.IssuePair(user.Username, user.Role, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	s.auditor.RecordAccess(ctx, &user.ID, "/auth/login", "POST", string(user.Role), true)
	s.logger.WithUserID(user.ID).Info("User logged in")

	return &AuthResponse{User: user, TokenPair: pair}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	pair, err := s.tokens.Refresh(refreshToken, time.Now())
	if err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *authService) CurrentUser(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.tokens.Verify(tokenString, time.Now())
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(ctx, claims.Username)
	if err != nil || user == nil {
		return nil, ErrUserNotFound
	}

	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	return user, nil
}

func (s *authService) recordFailure(ctx context.Context, username, ip string) {
	s.auditor.RecordFailedLogin(ctx, username, ip)
	s.auditor.RecordAccess(ctx, nil, "/auth/login", "POST", "unauthenticated", false)

	if s.cache != nil {
		if _, err := s.cache.Increment(ctx, failedLoginKey(username), s.lockout); err != nil {
			s.logger.WithError(err).Warn("Failed to track login attempt")
		}
	}
}

func (s *authService) isThrottled(ctx context.Context, username string) bool {
	if s.cache == nil || s.maxAttempts <= 0 {
		return false
	}

	var count int64
	if err := s.cache.Get(ctx, failedLoginKey(username), &count); err != nil {
		return false
	}
	return count >= int64(s.maxAttempts)
}

func failedLoginKey(username string) string {
	return "auth:failed:" + username
}
