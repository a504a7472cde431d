package operators

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medstock/medstock-backend/pkg/db/models"
)

// Repository wires operator persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create persists a new operator account.
func (r *Repository) Create(ctx context.Context, operator *models.Operator) (*models.Operator, error) {
	if err := r.db.WithContext(ctx).Create(operator).Error; err != nil {
		return nil, err
	}
	return operator, nil
}

// FindByID loads one operator.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Operator, error) {
	var operator models.Operator
	if err := r.db.WithContext(ctx).First(&operator, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &operator, nil
}

// FindByEmail loads one operator by normalized email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Operator, error) {
	var operator models.Operator
	if err := r.db.WithContext(ctx).First(&operator, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &operator, nil
}

// List returns all operators, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Operator, error) {
	var rows []models.Operator
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update persists the mutated operator fields.
func (r *Repository) Update(ctx context.Context, operator *models.Operator) (*models.Operator, error) {
	if err := r.db.WithContext(ctx).Save(operator).Error; err != nil {
		return nil, err
	}
	return operator, nil
}

// Delete removes the operator account.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Operator{})
	return res.RowsAffected, res.Error
}
