package suppliers

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

func setupSuppliersTestDB(t *testing.T) *gorm.DB {
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

func newSupplierService(db *gorm.DB) *Service {
	return NewService(pkgdb.NewFromGorm(db), NewRepository(db), nil)
}

func TestSupplierCRUD(t *testing.T) {
	db := setupSuppliersTestDB(t)
	svc := newSupplierService(db)

	contact := "0812-0000-0000"
	created, err := svc.Create(context.Background(), CreateInput{Name: "PT Kimia Sehat", Contact: &contact})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "PT Kimia Sehat", got.Name)

	updated, err := svc.Update(context.Background(), created.ID, CreateInput{Name: "PT Kimia Sehat Abadi", Contact: &contact})
	require.NoError(t, err)
	assert.Equal(t, "PT Kimia Sehat Abadi", updated.Name)

	rows, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestSupplierGetUnknown(t *testing.T) {
	db := setupSuppliersTestDB(t)
	svc := newSupplierService(db)

	_, err := svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestSupplierDeleteCascades(t *testing.T) {
	db := setupSuppliersTestDB(t)
	svc := newSupplierService(db)

	created, err := svc.Create(context.Background(), CreateInput{Name: "CV Sumber Waras"})
	require.NoError(t, err)

	category := &models.Category{ID: uuid.New(), Name: "Vitamin"}
	require.NoError(t, db.Create(category).Error)

	medicine := &models.Medicine{
		ID:         uuid.New(),
		Name:       "Vitamin C 100mg",
		Price:      decimal.RequireFromString("0.80"),
		Quantity:   50,
		ExpiryDate: time.Now().AddDate(1, 0, 0),
		CategoryID: category.ID,
		SupplierID: created.ID,
	}
	require.NoError(t, db.Create(medicine).Error)

	record := &models.StockTransaction{
		ID:         uuid.New(),
		Type:       enums.TransactionTypeSale,
		Quantity:   3,
		TotalPrice: decimal.RequireFromString("2.40"),
		MedicineID: medicine.ID,
		OperatorID: uuid.New(),
	}
	require.NoError(t, db.Create(record).Error)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	var supplierCount, medicineCount, txCount int64
	require.NoError(t, db.Model(&models.Supplier{}).Count(&supplierCount).Error)
	require.NoError(t, db.Model(&models.Medicine{}).Count(&medicineCount).Error)
	require.NoError(t, db.Model(&models.StockTransaction{}).Count(&txCount).Error)
	assert.Zero(t, supplierCount)
	assert.Zero(t, medicineCount)
	assert.Zero(t, txCount)

	err = svc.Delete(context.Background(), created.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
