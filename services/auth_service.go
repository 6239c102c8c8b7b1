package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/zara-amin/zeenat-jewels-api/models"
	"github.com/zara-amin/zeenat-jewels-api/repositories"
	"golang.org/x/crypto/bcrypt"
)

// SignupRequest is the payload for registering a new account
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the payload for exchanging credentials for a token
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthService orchestrates signup, login and the password-reset flow
type AuthService struct {
	users    repositories.UserRepository
	tokens   *TokenService
	validate *validator.Validate
}

// NewAuthService builds an AuthService
func NewAuthService(users repositories.UserRepository, tokens *TokenService, validate *validator.Validate) *AuthService {
	return &AuthService{users: users, tokens: tokens, validate: validate}
}

// Signup registers a new user. The email must not already be registered.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*models.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("VALIDATION_ERROR", err.Error())
	}

	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrConflict
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:          req.Email,
		FullName:       req.FullName,
		HashedPassword: string(hashed),
		IsActive:       true,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies the credentials and issues a bearer token keyed on the
// user's id. Unknown email and wrong password are indistinguishable.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (string, error) {
	if err := s.validate.Struct(req); err != nil {
		return "", NewValidationError("VALIDATION_ERROR", err.Error())
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID)
}

// ForgotPassword generates and stores a single-use reset token when the
// email is registered. It reports success either way so callers cannot
// probe which emails exist.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	token, err := generateResetToken()
	if err != nil {
		return err
	}
	user.ResetToken = &token
	return s.users.Update(ctx, user)
}

// ResetPassword replaces the password of the user holding the given reset
// token and clears the token, so each token works exactly once.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return NewValidationError("VALIDATION_ERROR", "new_password is required")
	}

	user, err := s.users.FindByResetToken(ctx, token)
	if err != nil {
		return err
	}
	if user == nil {
		return NewValidationError("INVALID_TOKEN", "Invalid token")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = string(hashed)
	user.ResetToken = nil
	return s.users.Update(ctx, user)
}

// generateResetToken returns a high-entropy URL-safe token
func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
