// Package auth implements the credential and identity authority.
package auth

import (
	"context"
	stderrors "errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/platform/internal/domain/user"
	"github.com/taskboard/platform/internal/errors"
	"github.com/taskboard/platform/internal/logging"
	"github.com/taskboard/platform/internal/rpc"
	"github.com/taskboard/platform/internal/storage"
)

// invalidCredentialsMessage is deliberately identical for unknown email and
// wrong password, so callers cannot enumerate registered addresses.
const invalidCredentialsMessage = "Invalid credentials! Please check your email and password."

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const bcryptCost = 10

// Service owns user records, credential verification and token issuance.
type Service struct {
	store  storage.UserStore
	tokens *TokenIssuer
	log    *logging.Logger
}

// New constructs the auth service.
func New(store storage.UserStore, tokens *TokenIssuer, log *logging.Logger) *Service {
	if log == nil {
		log = logging.NewDefault("auth")
	}
	return &Service{store: store, tokens: tokens, log: log}
}

// Register stores a new identity with a hashed password. Duplicate emails
// fail with Conflict.
func (s *Service) Register(ctx context.Context, params rpc.RegisterParams) (rpc.RegisterResult, error) {
	if fields := validateRegister(params); len(fields) > 0 {
		return rpc.RegisterResult{}, errors.Validation("invalid registration request", fields)
	}

	if _, err := s.store.GetUserByEmail(ctx, params.Email); err == nil {
		return rpc.RegisterResult{}, errors.Conflict("User already exists")
	} else if !stderrors.Is(err, storage.ErrNotFound) {
		return rpc.RegisterResult{}, errors.Internal("Failed to register user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcryptCost)
	if err != nil {
		return rpc.RegisterResult{}, errors.Internal("Failed to register user", err)
	}

	created, err := s.store.CreateUser(ctx, user.User{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: string(hash),
		Role:         params.Role,
	})
	if err != nil {
		return rpc.RegisterResult{}, errors.Internal("Failed to register user", err)
	}

	s.log.WithContext(ctx).WithField("user_id", created.ID).Info("user registered")
	return rpc.RegisterResult{Message: "User registered successfully", UserID: created.ID}, nil
}

// Login verifies credentials and issues a signed token.
func (s *Service) Login(ctx context.Context, params rpc.LoginParams) (rpc.LoginResult, error) {
	if fields := validateLogin(params); len(fields) > 0 {
		return rpc.LoginResult{}, errors.Validation("invalid login request", fields)
	}

	u, err := s.store.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return rpc.LoginResult{}, errors.Unauthorized(invalidCredentialsMessage)
		}
		return rpc.LoginResult{}, errors.Internal("Login failed", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(params.Password)); err != nil {
		return rpc.LoginResult{}, errors.Unauthorized(invalidCredentialsMessage)
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return rpc.LoginResult{}, errors.Internal("Failed to generate token", err)
	}

	s.log.WithContext(ctx).WithField("user_id", u.ID).Info("user logged in")
	return rpc.LoginResult{
		AccessToken: token,
		User:        rpc.UserSummary{ID: u.ID, Name: u.Name, Role: u.Role},
	}, nil
}

// VerifyToken decodes and checks a token, returning its claims.
func (s *Service) VerifyToken(ctx context.Context, params rpc.VerifyTokenParams) (rpc.TokenClaims, error) {
	claims, err := s.tokens.Verify(params.Token)
	if err != nil {
		return rpc.TokenClaims{}, err
	}
	return rpc.TokenClaims{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}

// ValidateUser returns the current identity record for a user ID. Callers
// use this after VerifyToken so role or name changes since issuance are
// reflected immediately.
func (s *Service) ValidateUser(ctx context.Context, params rpc.UserIDParams) (user.Public, error) {
	return s.lookup(ctx, params.UserID)
}

// GetProfile returns the public projection of a user.
func (s *Service) GetProfile(ctx context.Context, params rpc.UserIDParams) (user.Public, error) {
	return s.lookup(ctx, params.UserID)
}

// GetAllUsers lists USER-role identities only. Admins are intentionally
// absent: the listing feeds assignment pickers, and admins are never
// assignable.
func (s *Service) GetAllUsers(ctx context.Context, _ struct{}) ([]user.Public, error) {
	users, err := s.store.ListUsersByRole(ctx, user.RoleUser)
	if err != nil {
		return nil, errors.Internal("Failed to fetch users", err)
	}

	out := make([]user.Public, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

func (s *Service) lookup(ctx context.Context, userID string) (user.Public, error) {
	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return user.Public{}, errors.NotFound("User not found")
		}
		return user.Public{}, errors.Internal("Failed to fetch user", err)
	}
	return u.Public(), nil
}

func validateRegister(params rpc.RegisterParams) []errors.FieldError {
	var fields []errors.FieldError
	if params.Name == "" {
		fields = append(fields, errors.FieldError{Field: "name", Message: "name is required"})
	}
	if params.Email == "" {
		fields = append(fields, errors.FieldError{Field: "email", Message: "email is required"})
	} else if !emailPattern.MatchString(params.Email) {
		fields = append(fields, errors.FieldError{Field: "email", Message: "email must be a valid email address"})
	}
	if len(params.Password) < 6 {
		fields = append(fields, errors.FieldError{Field: "password", Message: "Password must be at least 6 characters long"})
	}
	if !params.Role.Valid() {
		fields = append(fields, errors.FieldError{Field: "role", Message: "role must be ADMIN or USER"})
	}
	return fields
}

func validateLogin(params rpc.LoginParams) []errors.FieldError {
	var fields []errors.FieldError
	if params.Email == "" {
		fields = append(fields, errors.FieldError{Field: "email", Message: "email is required"})
	} else if !emailPattern.MatchString(params.Email) {
		fields = append(fields, errors.FieldError{Field: "email", Message: "email must be a valid email address"})
	}
	if params.Password == "" {
		fields = append(fields, errors.FieldError{Field: "password", Message: "password is required"})
	}
	return fields
}
