package categories

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgdb "github.com/medstock/medstock-backend/pkg/db"
	"github.com/medstock/medstock-backend/pkg/db/models"
	"github.com/medstock/medstock-backend/pkg/enums"
	pkgerrors "github.com/medstock/medstock-backend/pkg/errors"
)

func setupCategoriesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	schemas := []string{
		`CREATE TABLE IF NOT EXISTS suppliers (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  contact TEXT,
  email TEXT,
  address TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS medicines (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  dosage TEXT,
  price NUMERIC NOT NULL,
  quantity INTEGER NOT NULL,
  expiry_date DATETIME NOT NULL,
  stock_opname INTEGER NOT NULL DEFAULT 0,
  category_id TEXT NOT NULL,
  supplier_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS stock_transactions (
  id TEXT PRIMARY KEY,
  type TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  total_price NUMERIC NOT NULL,
  medicine_id TEXT NOT NULL,
  operator_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, schema := range schemas {
		require.NoError(t, db.Exec(schema).Error)
	}
	return db
}

func newCategoryService(db *gorm.DB) *Service {
	return NewService(pkgdb.NewFromGorm(db), NewRepository(db), nil)
}

func TestCategoryCreateRejectsDuplicateName(t *testing.T) {
	db := setupCategoriesTestDB(t)
	svc := newCategoryService(db)

	_, err := svc.Create(context.Background(), "Analgesic")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "Analgesic")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestCategoryCreateTrimsAndValidates(t *testing.T) {
	db := setupCategoriesTestDB(t)
	svc := newCategoryService(db)

	created, err := svc.Create(context.Background(), "  Antibiotic  ")
	require.NoError(t, err)
	assert.Equal(t, "Antibiotic", created.Name)

	_, err = svc.Create(context.Background(), "   ")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCategoryUpdateRename(t *testing.T) {
	db := setupCategoriesTestDB(t)
	svc := newCategoryService(db)

	created, err := svc.Create(context.Background(), "Vitamin")
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, "Supplement")
	require.NoError(t, err)
	assert.Equal(t, "Supplement", updated.Name)

	_, err = svc.Update(context.Background(), uuid.New(), "Whatever")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestCategoryDeleteCascades(t *testing.T) {
	db := setupCategoriesTestDB(t)
	svc := newCategoryService(db)

	created, err := svc.Create(context.Background(), "Analgesic")
	require.NoError(t, err)

	supplier := &models.Supplier{ID: uuid.New(), Name: "PT Kimia Sehat"}
	require.NoError(t, db.Create(supplier).Error)

	medicine := &models.Medicine{
		ID:         uuid.New(),
		Name:       "Ibuprofen 400mg",
		Price:      decimal.RequireFromString("1.20"),
		Quantity:   30,
		ExpiryDate: time.Now().AddDate(1, 0, 0),
		CategoryID: created.ID,
		SupplierID: supplier.ID,
	}
	require.NoError(t, db.Create(medicine).Error)

	record := &models.StockTransaction{
		ID:         uuid.New(),
		Type:       enums.TransactionTypePurchase,
		Quantity:   10,
		TotalPrice: decimal.RequireFromString("12.00"),
		MedicineID: medicine.ID,
		OperatorID: uuid.New(),
	}
	require.NoError(t, db.Create(record).Error)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	var categoryCount, medicineCount, txCount int64
	require.NoError(t, db.Model(&models.Category{}).Count(&categoryCount).Error)
	require.NoError(t, db.Model(&models.Medicine{}).Count(&medicineCount).Error)
	require.NoError(t, db.Model(&models.StockTransaction{}).Count(&txCount).Error)
	assert.Zero(t, categoryCount)
	assert.Zero(t, medicineCount)
	assert.Zero(t, txCount)

	// The supplier survives a category cascade.
	var supplierCount int64
	require.NoError(t, db.Model(&models.Supplier{}).Count(&supplierCount).Error)
	assert.EqualValues(t, 1, supplierCount)
}
