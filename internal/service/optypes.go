package service

import (
	"context"

	"fintrack/internal/apperr"
	"fintrack/internal/domain"
	"fintrack/internal/repo"
	"fintrack/internal/validation"
)

// OperationTypeInput is the create/update payload for an operation type.
type OperationTypeInput struct {
	Name string `json:"name" validate:"required,min=1,max=64"`
	Kind int    `json:"kind" validate:"required,oneof=1 2"`
}

// OperationTypeService manages a user's income/expense categories.
type OperationTypeService struct {
	repos repo.Repos
	uow   repo.UnitOfWork
}

// NewOperationTypeService builds an OperationTypeService.
func NewOperationTypeService(repos repo.Repos, uow repo.UnitOfWork) *OperationTypeService {
	return &OperationTypeService{repos: repos, uow: uow}
}

// List returns the user's non-deleted operation types.
func (s *OperationTypeService) List(ctx context.Context, userID uint) ([]domain.OperationType, error) {
	return s.repos.OperationTypes.ListByUser(ctx, userID)
}

// Get returns one operation type owned by the user.
func (s *OperationTypeService) Get(ctx context.Context, userID, typeID uint) (*domain.OperationType, error) {
	t, err := s.repos.OperationTypes.ByID(ctx, userID, typeID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.NotFound("operation type %d not found", typeID)
	}
	return t, nil
}

// Create persists a new type after checking (user, kind, name) uniqueness.
func (s *OperationTypeService) Create(ctx context.Context, userID uint, in OperationTypeInput) (*domain.OperationType, error) {
	if verr := validation.Struct(in); verr != nil {
		return nil, verr
	}
	kind := domain.OperationKind(in.Kind)
	t := &domain.OperationType{UserID: userID, Name: in.Name, Kind: kind}
	err := s.uow.Do(ctx, func(r repo.Repos) error {
		taken, err := r.OperationTypes.Taken(ctx, userID, kind, in.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("%s type named %q already exists", kind, in.Name)
		}
		return r.OperationTypes.Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Update renames or rekinds a type, holding the same uniqueness rule.
func (s *OperationTypeService) Update(ctx context.Context, userID, typeID uint, in OperationTypeInput) (*domain.OperationType, error) {
	if verr := validation.Struct(in); verr != nil {
		return nil, verr
	}
	kind := domain.OperationKind(in.Kind)
	var t *domain.OperationType
	err := s.uow.Do(ctx, func(r repo.Repos) error {
		var err error
		t, err = r.OperationTypes.ByID(ctx, userID, typeID)
		if err != nil {
			return err
		}
		if t == nil {
			return apperr.NotFound("operation type %d not found", typeID)
		}
		taken, err := r.OperationTypes.Taken(ctx, userID, kind, in.Name, typeID)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("%s type named %q already exists", kind, in.Name)
		}
		t.Name = in.Name
		t.Kind = kind
		return r.OperationTypes.Update(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Delete soft-deletes a type unless any non-deleted operation still
// references it, which is a Conflict.
func (s *OperationTypeService) Delete(ctx context.Context, userID, typeID uint) error {
	return s.uow.Do(ctx, func(r repo.Repos) error {
		t, err := r.OperationTypes.ByID(ctx, userID, typeID)
		if err != nil {
			return err
		}
		if t == nil {
			return apperr.NotFound("operation type %d not found", typeID)
		}
		refs, err := r.Operations.CountByType(ctx, typeID)
		if err != nil {
			return err
		}
		if refs > 0 {
			return apperr.Conflict("operation type %q is referenced by %d operations", t.Name, refs)
		}
		t.IsDeleted = true
		return r.OperationTypes.Update(ctx, t)
	})
}
