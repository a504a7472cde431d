package medicines

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medstock/medstock-backend/pkg/db/models"
)

// Repository wires medicine persistence helpers.
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

// Create persists a new medicine.
func (r *Repository) Create(ctx context.Context, medicine *models.Medicine) (*models.Medicine, error) {
	if err := r.db.WithContext(ctx).Create(medicine).Error; err != nil {
		return nil, err
	}
	return medicine, nil
}

// FindByID loads the medicine without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Medicine, error) {
	var medicine models.Medicine
	if err := r.db.WithContext(ctx).First(&medicine, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &medicine, nil
}

// FindByIDWithRelations loads the medicine with category and supplier.
func (r *Repository) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*models.Medicine, error) {
	var medicine models.Medicine
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Supplier").
		First(&medicine, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &medicine, nil
}

// List returns all medicines with category and supplier, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Medicine, error) {
	var rows []models.Medicine
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Supplier").
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CategoryExists reports whether the referenced category row is present.
func (r *Repository) CategoryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// SupplierExists reports whether the referenced supplier row is present.
func (r *Repository) SupplierExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Supplier{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// Update persists the mutated medicine fields.
func (r *Repository) Update(ctx context.Context, medicine *models.Medicine) (*models.Medicine, error) {
	if err := r.db.WithContext(ctx).Save(medicine).Error; err != nil {
		return nil, err
	}
	return medicine, nil
}

// SetStockOpname flips the stock opname flag. Writing true is the manual
// confirmation; quantity-changing paths write false.
func (r *Repository) SetStockOpname(ctx context.Context, id uuid.UUID, confirmed bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.Medicine{}).
		Where("id = ?", id).
		Update("stock_opname", confirmed)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteCascade removes the medicine and its transactions, child rows first.
// Callers run this inside a transaction.
func (r *Repository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("medicine_id = ?", id).Delete(&models.StockTransaction{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", id).Delete(&models.Medicine{}).Error
}
