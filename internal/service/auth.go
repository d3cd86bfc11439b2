package service

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"fintrack/internal/apperr"
	"fintrack/internal/domain"
	"fintrack/internal/repo"
	"fintrack/internal/utils"
	"fintrack/internal/validation"
)

// RegisterInput is the registration request payload.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=32,alphanum"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginInput is the login request payload.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthService handles registration and login.
type AuthService struct {
	repos  repo.Repos
	uow    repo.UnitOfWork
	secret string
}

// NewAuthService builds an AuthService signing tokens with the given secret.
func NewAuthService(repos repo.Repos, uow repo.UnitOfWork, secret string) *AuthService {
	return &AuthService{repos: repos, uow: uow, secret: secret}
}

// Register validates the input, rejects taken usernames and persists a new
// user with a bcrypt password hash.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if verr := validation.Struct(in); verr != nil {
		return nil, verr
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{Username: in.Username, Password: string(hash)}
	// Uniqueness check and insert share the request's transaction. There is
	// no unique index (soft-deleted usernames are reusable), so concurrent
	// duplicate registrations resolve last-writer-wins at the database layer.
	err = s.uow.Do(ctx, func(r repo.Repos) error {
		taken, err := r.Users.UsernameTaken(ctx, in.Username)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("username %q is already taken", in.Username)
		}
		return r.Users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("User registered")
	return user, nil
}

// Login verifies credentials and issues a signed token. Unknown usernames and
// wrong passwords produce the same Unauthorized error so usernames cannot be
// enumerated.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (string, error) {
	if verr := validation.Struct(in); verr != nil {
		return "", verr
	}
	user, err := s.repos.Users.ByUsername(ctx, in.Username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperr.Unauthorized("invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return "", apperr.Unauthorized("invalid username or password")
	}
	token, err := utils.GenerateJWT(user.ID, user.Username, s.secret)
	if err != nil {
		return "", err
	}
	return token, nil
}
