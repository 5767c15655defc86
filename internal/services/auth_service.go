package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/skillhub/backend/internal/auth/service"
	"github.com/skillhub/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the interface that wraps methods for Users table data access
type UserRepository interface {
	// Method Create inserts a new user into the database and sets its ID.
	//
	// If the email is already taken, an error wrapping models.ErrDuplicateEmail is returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByEmail retrieves a user by normalized email.
	//
	// If user with such email does not exist, an error wrapping models.ErrNotFound is returned together with "nil" value.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Method GetByID retrieves a user by ID.
	//
	// If user with such ID does not exist, an error wrapping models.ErrNotFound is returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// Method ExistsByEmail checks if a user with such email exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Method UpdateProfile writes name and email of the user.
	//
	// If the email is already taken, an error wrapping models.ErrDuplicateEmail is returned.
	UpdateProfile(ctx context.Context, user *models.User) error
	// Method UpdatePasswordHash replaces the stored credential of the user.
	//
	// If user with such ID does not exist, an error wrapping models.ErrNotFound is returned.
	UpdatePasswordHash(ctx context.Context, userID int, passwordHash string) error
}

// CompletedStepsReader is the interface that wraps reading a user's completion set
type CompletedStepsReader interface {
	// Method GetByUserID returns the completion set of the user in insertion order.
	//
	// The result is never nil on success.
	GetByUserID(ctx context.Context, userID int) ([]string, error)
}

// authService implements AuthService
type authService struct {
	userRepo       UserRepository
	progressRepo   CompletedStepsReader
	tokenGenerator *service.TokenGenerator
	logger         *zap.Logger
	bcryptCost     int
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo UserRepository,
	progressRepo CompletedStepsReader,
	tokenGenerator *service.TokenGenerator,
	logger *zap.Logger,
) *authService {
	return &authService{
		userRepo:       userRepo,
		progressRepo:   progressRepo,
		tokenGenerator: tokenGenerator,
		logger:         logger,
		bcryptCost:     bcrypt.DefaultCost,
	}
}

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// errInvalidLogin is the single message for an unknown email and a wrong password
var errInvalidLogin = fmt.Errorf("invalid email or password: %w", models.ErrInvalidCredentials)

// normalizeEmail trims and lower-cases an email and validates its format
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", fmt.Errorf("email is required: %w", models.ErrInvalidRequest)
	}
	if !emailRegex.MatchString(email) {
		return "", fmt.Errorf("invalid email format: %w", models.ErrInvalidRequest)
	}
	return email, nil
}

// Register creates a new user account and signs the user in
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.Password == "" {
		return nil, fmt.Errorf("name, email and password are required: %w", models.ErrInvalidRequest)
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("email is taken: %w", models.ErrDuplicateEmail)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(passwordHash),
	}

	// The unique index still guards against a concurrent registration with the same email
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokenGenerator.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("user registered", zap.Int("userId", user.ID))

	return &models.AuthResponse{
		ProfileResponse: models.ProfileResponse{
			ID:             user.ID,
			Name:           user.Name,
			Email:          user.Email,
			CompletedSteps: []string{},
		},
		Token: token,
	}, nil
}

// Login authenticates a user by email and password
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", models.ErrInvalidRequest)
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, errInvalidLogin
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errInvalidLogin
	}

	profile, err := s.profile(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.tokenGenerator.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResponse{ProfileResponse: *profile, Token: token}, nil
}

// UpdateProfile changes the name and/or email of the user.
// Fields left nil keep their current value.
func (s *authService) UpdateProfile(ctx context.Context, userID int, req *models.UpdateProfileRequest) (*models.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("name cannot be empty: %w", models.ErrInvalidRequest)
		}
		user.Name = name
	}

	if req.Email != nil {
		email, err := normalizeEmail(*req.Email)
		if err != nil {
			return nil, err
		}
		if email != user.Email {
			exists, err := s.userRepo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			if exists {
				return nil, fmt.Errorf("email is taken: %w", models.ErrDuplicateEmail)
			}
			user.Email = email
		}
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	return s.profile(ctx, user)
}

// ChangePassword replaces the user's credential after verifying the current one
func (s *authService) ChangePassword(ctx context.Context, userID int, req *models.ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return fmt.Errorf("current and new password are required: %w", models.ErrInvalidRequest)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect: %w", models.ErrInvalidCredentials)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePasswordHash(ctx, userID, string(passwordHash)); err != nil {
		return err
	}

	s.logger.Info("password changed", zap.Int("userId", userID))
	return nil
}

// profile builds the identity snapshot of the user including the completion set
func (s *authService) profile(ctx context.Context, user *models.User) (*models.ProfileResponse, error) {
	steps, err := s.progressRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get completed steps: %w", err)
	}

	return &models.ProfileResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		CompletedSteps: steps,
	}, nil
}
