package transactions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medstock/medstock-backend/pkg/db/models"
	"github.com/medstock/medstock-backend/pkg/pagination"
)

// Repository wires stock transaction persistence helpers.
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

// FindMedicine loads the medicine referenced by a movement.
func (r *Repository) FindMedicine(ctx context.Context, id uuid.UUID) (*models.Medicine, error) {
	var medicine models.Medicine
	if err := r.db.WithContext(ctx).First(&medicine, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &medicine, nil
}

// ApplyStockDelta adjusts the medicine quantity atomically and clears the
// stock opname flag. Negative deltas only land when enough stock remains;
// a zero rows-affected result means the guard (or the row) was missing.
func (r *Repository) ApplyStockDelta(ctx context.Context, medicineID uuid.UUID, delta int) (int64, error) {
	tx := r.db.WithContext(ctx)
	if delta < 0 {
		res := tx.Exec(`
			UPDATE medicines
			SET quantity = quantity - ?,
				stock_opname = false,
				updated_at = CURRENT_TIMESTAMP
			WHERE id = ? AND quantity >= ?
		`, -delta, medicineID, -delta)
		return res.RowsAffected, res.Error
	}
	res := tx.Exec(`
		UPDATE medicines
		SET quantity = quantity + ?,
			stock_opname = false,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, delta, medicineID)
	return res.RowsAffected, res.Error
}

// Create persists a new transaction row.
func (r *Repository) Create(ctx context.Context, record *models.StockTransaction) (*models.StockTransaction, error) {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// FindByID loads the transaction without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.StockTransaction, error) {
	var record models.StockTransaction
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByIDWithRelations loads the transaction with medicine and operator.
func (r *Repository) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*models.StockTransaction, error) {
	var record models.StockTransaction
	if err := r.db.WithContext(ctx).
		Preload("Medicine").
		Preload("Operator").
		First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Update persists the mutated transaction fields.
func (r *Repository) Update(ctx context.Context, record *models.StockTransaction) (*models.StockTransaction, error) {
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// Delete removes the history row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.StockTransaction{})
	return res.RowsAffected, res.Error
}

// List returns one cursor page of transactions, newest first, with medicine
// and operator summaries preloaded.
func (r *Repository) List(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.StockTransaction, error) {
	query := r.db.WithContext(ctx).
		Preload("Medicine").
		Preload("Operator").
		Order("created_at DESC, id DESC").
		Limit(limit)

	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.StockTransaction
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
