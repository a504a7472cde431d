package suppliers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medstock/medstock-backend/pkg/db/models"
)

// Repository wires supplier persistence helpers.
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

// Create persists a new supplier.
func (r *Repository) Create(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error) {
	if err := r.db.WithContext(ctx).Create(supplier).Error; err != nil {
		return nil, err
	}
	return supplier, nil
}

// FindByID loads the supplier without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

// FindByIDWithMedicines loads the supplier with its medicines preloaded.
func (r *Repository) FindByIDWithMedicines(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.WithContext(ctx).Preload("Medicines").First(&supplier, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

// List returns all suppliers with medicines preloaded, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Supplier, error) {
	var rows []models.Supplier
	if err := r.db.WithContext(ctx).Preload("Medicines").Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update persists the mutated supplier fields.
func (r *Repository) Update(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error) {
	if err := r.db.WithContext(ctx).Save(supplier).Error; err != nil {
		return nil, err
	}
	return supplier, nil
}

// DeleteCascade removes the supplier together with its medicines and their
// transactions, child rows first. Callers run this inside a transaction.
func (r *Repository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Exec(`
		DELETE FROM stock_transactions
		WHERE medicine_id IN (SELECT id FROM medicines WHERE supplier_id = ?)
	`, id).Error; err != nil {
		return err
	}
	if err := tx.Where("supplier_id = ?", id).Delete(&models.Medicine{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", id).Delete(&models.Supplier{}).Error
}
