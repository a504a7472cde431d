package dashboard

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
)

func setupDashboardTestDB(t *testing.T) *gorm.DB {
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
		`CREATE TABLE IF NOT EXISTS operators (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'operator',
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

func TestBucketByExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	medicines := []models.Medicine{
		{ExpiryDate: now.AddDate(0, 0, -1)}, // expired, no bucket
		{ExpiryDate: now.AddDate(0, 0, 3)},
		{ExpiryDate: now.AddDate(0, 0, 5)},
		{ExpiryDate: now.AddDate(0, 0, 12)},
		{ExpiryDate: now.AddDate(0, 0, 29)},
		{ExpiryDate: now.AddDate(0, 0, 90)},
	}

	buckets := bucketByExpiry(medicines, now)

	byRange := map[string]int{}
	for _, b := range buckets {
		byRange[b.Range] = b.Count
	}
	assert.Equal(t, 2, byRange["1-5"])
	assert.Equal(t, 1, byRange["11-15"])
	assert.Equal(t, 1, byRange["26-30"])
	assert.Equal(t, 1, byRange[">30"])

	// Empty ranges are omitted entirely.
	_, has := byRange["6-10"]
	assert.False(t, has)
	assert.Len(t, buckets, 4)
}

func TestBucketOrderIsStable(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	medicines := []models.Medicine{
		{ExpiryDate: now.AddDate(0, 0, 90)},
		{ExpiryDate: now.AddDate(0, 0, 2)},
	}

	buckets := bucketByExpiry(medicines, now)
	require.Len(t, buckets, 2)
	assert.Equal(t, "1-5", buckets[0].Range)
	assert.Equal(t, ">30", buckets[1].Range)
}

func TestFirstName(t *testing.T) {
	assert.Equal(t, "Siti", firstName("Siti Rahma"))
	assert.Equal(t, "Budi", firstName("Budi"))
	assert.Equal(t, "", firstName(""))
}

func TestBuildAssemblesProjections(t *testing.T) {
	db := setupDashboardTestDB(t)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	supplier := &models.Supplier{ID: uuid.New(), Name: "PT Kimia Sehat"}
	require.NoError(t, db.Create(supplier).Error)
	category := &models.Category{ID: uuid.New(), Name: "Analgesic"}
	require.NoError(t, db.Create(category).Error)

	operator := &models.Operator{
		ID:           uuid.New(),
		Name:         "Siti Rahma",
		Email:        "siti@medstock.test",
		PasswordHash: "x",
		Role:         enums.OperatorRoleOperator,
	}
	require.NoError(t, db.Create(operator).Error)
	admin := &models.Operator{
		ID:           uuid.New(),
		Name:         "Agus Wijaya",
		Email:        "agus@medstock.test",
		PasswordHash: "x",
		Role:         enums.OperatorRoleAdmin,
	}
	require.NoError(t, db.Create(admin).Error)

	nearExpiry := &models.Medicine{
		ID:         uuid.New(),
		Name:       "Paracetamol 500mg",
		Price:      decimal.RequireFromString("2.50"),
		Quantity:   10,
		ExpiryDate: now.AddDate(0, 0, 14),
		CategoryID: category.ID,
		SupplierID: supplier.ID,
	}
	require.NoError(t, db.Create(nearExpiry).Error)
	farExpiry := &models.Medicine{
		ID:         uuid.New(),
		Name:       "Amoxicillin 250mg",
		Price:      decimal.RequireFromString("4.75"),
		Quantity:   5,
		ExpiryDate: now.AddDate(1, 0, 0),
		CategoryID: category.ID,
		SupplierID: supplier.ID,
	}
	require.NoError(t, db.Create(farExpiry).Error)

	day1 := time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	for _, tx := range []*models.StockTransaction{
		{ID: uuid.New(), Type: enums.TransactionTypeSale, Quantity: 2, TotalPrice: decimal.RequireFromString("5.00"), MedicineID: nearExpiry.ID, OperatorID: operator.ID},
		{ID: uuid.New(), Type: enums.TransactionTypeSale, Quantity: 1, TotalPrice: decimal.RequireFromString("2.50"), MedicineID: nearExpiry.ID, OperatorID: operator.ID},
		{ID: uuid.New(), Type: enums.TransactionTypePurchase, Quantity: 5, TotalPrice: decimal.RequireFromString("23.75"), MedicineID: farExpiry.ID, OperatorID: operator.ID},
	} {
		if tx.Quantity == 5 {
			tx.CreatedAt = day2
		} else {
			tx.CreatedAt = day1
		}
		require.NoError(t, db.Create(tx).Error)
	}

	svc := NewService(pkgdb.NewFromGorm(db), nil)
	svc.now = func() time.Time { return now }

	payload, err := svc.Build(context.Background())
	require.NoError(t, err)

	require.Len(t, payload.SupplierOverview, 1)
	assert.Equal(t, 2, payload.SupplierOverview[0].MedicineCount)

	require.Len(t, payload.CategoryDistribution, 1)
	assert.Equal(t, 2, payload.CategoryDistribution[0].MedicineCount)

	require.Len(t, payload.TransactionTrends, 2)
	assert.Equal(t, "2026-03-08", payload.TransactionTrends[0].Date)
	assert.True(t, payload.TransactionTrends[0].TotalPrice.Equal(decimal.RequireFromString("7.50")))
	assert.Equal(t, "2026-03-09", payload.TransactionTrends[1].Date)

	// Only operator-role accounts appear, first name only.
	require.Len(t, payload.OperatorPerformance, 1)
	assert.Equal(t, "Siti", payload.OperatorPerformance[0].Name)
	assert.Equal(t, 3, payload.OperatorPerformance[0].TransactionCount)

	assert.Len(t, payload.PriceDistribution, 2)

	require.Len(t, payload.MedicineNearExpiry, 1)
	assert.Equal(t, "Paracetamol 500mg", payload.MedicineNearExpiry[0].Name)
	assert.Equal(t, "2026-03-24", payload.MedicineNearExpiry[0].ExpiryDate)
}
