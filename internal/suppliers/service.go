package suppliers

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medstock/medstock-backend/pkg/db"
	"github.com/medstock/medstock-backend/pkg/db/models"
	pkgerrors "github.com/medstock/medstock-backend/pkg/errors"
	"github.com/medstock/medstock-backend/pkg/logger"
)

// CreateInput carries the fields accepted when registering a supplier.
type CreateInput struct {
	Name    string
	Contact *string
	Email   *string
	Address *string
}

// UpdateInput mirrors CreateInput for full updates.
type UpdateInput = CreateInput

// Service exposes supplier use cases.
type Service struct {
	client *db.Client
	repo   *Repository
	logg   *logger.Logger
}

// NewService builds the supplier service.
func NewService(client *db.Client, repo *Repository, logg *logger.Logger) *Service {
	return &Service{client: client, repo: repo, logg: logg}
}

// Create registers a new supplier.
func (s *Service) Create(ctx context.Context, input CreateInput) (*models.Supplier, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier name is required")
	}

	supplier := &models.Supplier{
		ID:      uuid.New(),
		Name:    name,
		Contact: input.Contact,
		Email:   input.Email,
		Address: input.Address,
	}

	created, err := s.repo.Create(ctx, supplier)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create supplier")
	}
	return created, nil
}

// Get returns one supplier with its medicines.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	supplier, err := s.repo.FindByIDWithMedicines(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load supplier")
	}
	return supplier, nil
}

// List returns every supplier with medicines preloaded.
func (s *Service) List(ctx context.Context) ([]models.Supplier, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list suppliers")
	}
	return rows, nil
}

// Update replaces the supplier's editable fields.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Supplier, error) {
	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load supplier")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier name is required")
	}

	supplier.Name = name
	supplier.Contact = input.Contact
	supplier.Email = input.Email
	supplier.Address = input.Address

	updated, err := s.repo.Update(ctx, supplier)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update supplier")
	}
	return updated, nil
}

// Delete removes the supplier and everything hanging off it in one transaction.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load supplier")
	}

	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).DeleteCascade(ctx, id)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete supplier")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "supplier_id", id.String()), "supplier.deleted")
	}
	return nil
}
