package operators

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgdb "github.com/medstock/medstock-backend/pkg/db"
	"github.com/medstock/medstock-backend/pkg/db/models"
	"github.com/medstock/medstock-backend/pkg/enums"
	pkgerrors "github.com/medstock/medstock-backend/pkg/errors"
	"github.com/medstock/medstock-backend/pkg/logger"
)

// Profile is the operator projection safe to hand to clients. Password
// hashes never leave this package.
type Profile struct {
	ID    uuid.UUID          `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Role  enums.OperatorRole `json:"role"`
}

// UpdateInput carries the admin-editable account fields.
type UpdateInput struct {
	Name  string
	Email string
	Role  enums.OperatorRole
}

// Service exposes operator account management.
type Service struct {
	repo *Repository
	logg *logger.Logger
}

// NewService builds the operator service.
func NewService(repo *Repository, logg *logger.Logger) *Service {
	return &Service{repo: repo, logg: logg}
}

// ToProfile strips credentials from the model.
func ToProfile(op *models.Operator) Profile {
	return Profile{
		ID:    op.ID,
		Name:  op.Name,
		Email: op.Email,
		Role:  op.Role,
	}
}

// Get returns one operator profile.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Profile, error) {
	operator, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "operator not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load operator")
	}
	profile := ToProfile(operator)
	return &profile, nil
}

// List returns every operator profile.
func (s *Service) List(ctx context.Context) ([]Profile, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list operators")
	}
	profiles := make([]Profile, 0, len(rows))
	for i := range rows {
		profiles = append(profiles, ToProfile(&rows[i]))
	}
	return profiles, nil
}

// Update rewrites the operator's name, email and role.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*Profile, error) {
	operator, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "operator not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load operator")
	}

	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name and email are required")
	}
	if !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid operator role")
	}

	operator.Name = name
	operator.Email = email
	operator.Role = input.Role

	updated, err := s.repo.Update(ctx, operator)
	if err != nil {
		if pkgdb.IsUniqueViolation(err, "operators_email_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update operator")
	}

	profile := ToProfile(updated)
	return &profile, nil
}

// Delete removes the account.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete operator")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "operator not found")
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "operator_id", id.String()), "operator.deleted")
	}
	return nil
}
