package service

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"fintrack/internal/apperr"
	"fintrack/internal/domain"
	"fintrack/internal/repo"
	"fintrack/internal/validation"
)

// ChangePasswordInput carries the current and replacement passwords.
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

// UserService handles account-level operations for the authenticated user.
type UserService struct {
	repos repo.Repos
	uow   repo.UnitOfWork
}

// NewUserService builds a UserService.
func NewUserService(repos repo.Repos, uow repo.UnitOfWork) *UserService {
	return &UserService{repos: repos, uow: uow}
}

// Me returns the authenticated user's account.
func (s *UserService) Me(ctx context.Context, userID uint) (*domain.User, error) {
	user, err := s.repos.Users.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user %d not found", userID)
	}
	return user, nil
}

// ChangePassword verifies the current password before rehashing and storing
// the new one. A wrong current password is an Unauthorized error.
func (s *UserService) ChangePassword(ctx context.Context, userID uint, in ChangePasswordInput) error {
	if verr := validation.Struct(in); verr != nil {
		return verr
	}
	return s.uow.Do(ctx, func(r repo.Repos) error {
		user, err := r.Users.ByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return apperr.NotFound("user %d not found", userID)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)); err != nil {
			return apperr.Unauthorized("current password is incorrect")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.Password = string(hash)
		return r.Users.Update(ctx, user)
	})
}

// Delete soft-deletes the account; the username becomes reusable while
// historical data stays in place for reports.
func (s *UserService) Delete(ctx context.Context, userID uint) error {
	err := s.uow.Do(ctx, func(r repo.Repos) error {
		user, err := r.Users.ByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return apperr.NotFound("user %d not found", userID)
		}
		user.IsDeleted = true
		return r.Users.Update(ctx, user)
	})
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"user_id": userID}).Info("User soft-deleted")
	return nil
}
