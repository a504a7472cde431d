package medicines

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	pkgdb "github.com/medstock/medstock-backend/pkg/db"
	"github.com/medstock/medstock-backend/pkg/db/models"
	pkgerrors "github.com/medstock/medstock-backend/pkg/errors"
	"github.com/medstock/medstock-backend/pkg/logger"
)

// CreateInput carries the fields accepted when registering a medicine.
type CreateInput struct {
	Name        string
	Description *string
	Dosage      *string
	Price       decimal.Decimal
	Quantity    int
	ExpiryDate  time.Time
	CategoryID  uuid.UUID
	SupplierID  uuid.UUID
}

// UpdateInput carries the fields accepted on a full medicine update. A
// quantity different from the stored one counts as a manual stock edit and
// clears the stock opname confirmation.
type UpdateInput struct {
	Name        string
	Description *string
	Dosage      *string
	Price       decimal.Decimal
	Quantity    int
	ExpiryDate  time.Time
	CategoryID  uuid.UUID
	SupplierID  uuid.UUID
}

// Service exposes medicine use cases.
type Service struct {
	client *pkgdb.Client
	repo   *Repository
	logg   *logger.Logger
}

// NewService builds the medicine service.
func NewService(client *pkgdb.Client, repo *Repository, logg *logger.Logger) *Service {
	return &Service{client: client, repo: repo, logg: logg}
}

func validateFields(name string, price decimal.Decimal, quantity int, expiry time.Time) error {
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "medicine name is required")
	}
	if price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	if expiry.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "expiry date is required")
	}
	return nil
}

// checkReferences rejects dangling category or supplier ids before a write.
// Surfacing these as not-found keeps the driver's FK errors out of responses.
func (s *Service) checkReferences(ctx context.Context, categoryID, supplierID uuid.UUID) error {
	ok, err := s.repo.CategoryExists(ctx, categoryID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check category")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}

	ok, err = s.repo.SupplierExists(ctx, supplierID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check supplier")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
	}
	return nil
}

// Create registers a new medicine.
func (s *Service) Create(ctx context.Context, input CreateInput) (*models.Medicine, error) {
	if err := validateFields(input.Name, input.Price, input.Quantity, input.ExpiryDate); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, input.CategoryID, input.SupplierID); err != nil {
		return nil, err
	}

	medicine := &models.Medicine{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Dosage:      input.Dosage,
		Price:       input.Price,
		Quantity:    input.Quantity,
		ExpiryDate:  input.ExpiryDate,
		CategoryID:  input.CategoryID,
		SupplierID:  input.SupplierID,
	}

	created, err := s.repo.Create(ctx, medicine)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create medicine")
	}
	return created, nil
}

// Get returns one medicine with category and supplier.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Medicine, error) {
	medicine, err := s.repo.FindByIDWithRelations(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "medicine not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load medicine")
	}
	return medicine, nil
}

// List returns every medicine with relations preloaded.
func (s *Service) List(ctx context.Context) ([]models.Medicine, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list medicines")
	}
	return rows, nil
}

// Update replaces the medicine's editable fields. Changing the quantity here
// is a manual stock edit that bypasses the transaction ledger, so it always
// clears the opname confirmation.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Medicine, error) {
	medicine, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "medicine not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load medicine")
	}

	if err := validateFields(input.Name, input.Price, input.Quantity, input.ExpiryDate); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, input.CategoryID, input.SupplierID); err != nil {
		return nil, err
	}

	if input.Quantity != medicine.Quantity {
		medicine.StockOpname = false
	}

	medicine.Name = strings.TrimSpace(input.Name)
	medicine.Description = input.Description
	medicine.Dosage = input.Dosage
	medicine.Price = input.Price
	medicine.Quantity = input.Quantity
	medicine.ExpiryDate = input.ExpiryDate
	medicine.CategoryID = input.CategoryID
	medicine.SupplierID = input.SupplierID

	updated, err := s.repo.Update(ctx, medicine)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update medicine")
	}
	return updated, nil
}

// ConfirmStockOpname marks the medicine's stock as counted. Confirming twice
// is a no-op, not an error.
func (s *Service) ConfirmStockOpname(ctx context.Context, id uuid.UUID) (*models.Medicine, error) {
	if err := s.repo.SetStockOpname(ctx, id, true); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "medicine not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "confirm stock opname")
	}
	return s.Get(ctx, id)
}

// Delete removes the medicine and its transaction history in one transaction.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "medicine not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load medicine")
	}

	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).DeleteCascade(ctx, id)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete medicine")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "medicine_id", id.String()), "medicine.deleted")
	}
	return nil
}
