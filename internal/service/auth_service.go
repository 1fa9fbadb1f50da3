package service

import (
	"context"
	"errors"
	"strings"

	"github.com/mahmoud-sadrian/Bsc-project/internal/apperr"
	"github.com/mahmoud-sadrian/Bsc-project/internal/model"
	"github.com/mahmoud-sadrian/Bsc-project/internal/repository"
	"github.com/mahmoud-sadrian/Bsc-project/pkg/auth"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

// Caller-facing messages. Signin uses one message for both unknown user and
// wrong password so the response never reveals which usernames exist.
const (
	msgSignupFieldsRequired = "Username, password, and terms agreement are required"
	msgTermsRequired        = "You must agree to the terms and conditions"
	msgUsernameTooShort     = "Username must be at least 3 characters long"
	msgPasswordTooShort     = "Password must be at least 6 characters long"
	msgUsernameTaken        = "Username already exists"
	msgRegistrationFailed   = "Registration failed"
	msgSigninFieldsRequired = "Username and password are required"
	msgInvalidCredentials   = "Invalid username or password"
	msgLoginFailed          = "Login failed"
)

// AuthService handles signup and credential checks
type AuthService struct {
	userRepo   *repository.UserRepository
	bcryptCost int
}

func NewAuthService(userRepo *repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// WithBcryptCost overrides the hashing cost (tests use bcrypt.MinCost)
func (s *AuthService) WithBcryptCost(cost int) *AuthService {
	s.bcryptCost = cost
	return s
}

// ==================== Signup ====================

// Signup validates the request and creates a new account.
// Checks run in a fixed order: presence, terms, username length, password length.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (*model.User, error) {
	if req.Username == nil || req.Password == nil || req.AgreedToTerms == nil {
		return nil, apperr.Validation(msgSignupFieldsRequired)
	}
	if !model.Truthy(req.AgreedToTerms) {
		return nil, apperr.Validation(msgTermsRequired)
	}
	if len(*req.Username) < minUsernameLength {
		return nil, apperr.Validation(msgUsernameTooShort)
	}
	if len(*req.Password) < minPasswordLength {
		return nil, apperr.Validation(msgPasswordTooShort)
	}

	taken, err := s.userRepo.UsernameTaken(ctx, *req.Username)
	if err != nil {
		return nil, apperr.Storage(msgRegistrationFailed, err)
	}
	if taken {
		return nil, apperr.Conflict(msgUsernameTaken)
	}

	hashedPassword, err := auth.HashPassword(*req.Password, s.bcryptCost)
	if err != nil {
		return nil, apperr.Storage(msgRegistrationFailed, err)
	}

	user := &model.User{
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Username:      *req.Username,
		PasswordHash:  hashedPassword,
		AgreedToTerms: true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent signup for the same name
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict(msgUsernameTaken)
		}
		return nil, apperr.Storage(msgRegistrationFailed, err)
	}

	return user, nil
}

// ==================== Signin ====================

// Signin checks credentials and returns the matching user
func (s *AuthService) Signin(ctx context.Context, req model.SigninRequest) (*model.User, error) {
	if req.Username == nil || req.Password == nil {
		return nil, apperr.Validation(msgSigninFieldsRequired)
	}

	user, err := s.userRepo.FindByUsername(ctx, *req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized(msgInvalidCredentials)
		}
		return nil, apperr.Storage(msgLoginFailed, err)
	}

	if !auth.CheckPassword(user.PasswordHash, *req.Password) {
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}

	return user, nil
}
