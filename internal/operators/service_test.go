package operators

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/medstock/medstock-backend/pkg/db/models"
	"github.com/medstock/medstock-backend/pkg/enums"
	pkgerrors "github.com/medstock/medstock-backend/pkg/errors"
)

func setupOperatorsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	schema := `CREATE TABLE IF NOT EXISTS operators (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'operator',
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func seedAccount(t *testing.T, db *gorm.DB, email string, role enums.OperatorRole) *models.Operator {
	t.Helper()

	operator := &models.Operator{
		ID:           uuid.New(),
		Name:         "Siti Rahma",
		Email:        email,
		PasswordHash: "secret-hash",
		Role:         role,
	}
	require.NoError(t, db.Create(operator).Error)
	return operator
}

func TestProfileNeverExposesPasswordHash(t *testing.T) {
	db := setupOperatorsTestDB(t)
	svc := NewService(NewRepository(db), nil)
	seeded := seedAccount(t, db, "siti@medstock.test", enums.OperatorRoleOperator)

	profile, err := svc.Get(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.Email, profile.Email)
	assert.Equal(t, enums.OperatorRoleOperator, profile.Role)
}

func TestUpdateChangesRole(t *testing.T) {
	db := setupOperatorsTestDB(t)
	svc := NewService(NewRepository(db), nil)
	seeded := seedAccount(t, db, "siti@medstock.test", enums.OperatorRoleOperator)

	updated, err := svc.Update(context.Background(), seeded.ID, UpdateInput{
		Name:  "Siti Rahma",
		Email: "siti@medstock.test",
		Role:  enums.OperatorRoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.OperatorRoleAdmin, updated.Role)

	var stored models.Operator
	require.NoError(t, db.First(&stored, "id = ?", seeded.ID).Error)
	assert.Equal(t, "secret-hash", stored.PasswordHash, "role changes must not touch credentials")
}

func TestUpdateRejectsDuplicateEmail(t *testing.T) {
	db := setupOperatorsTestDB(t)
	svc := NewService(NewRepository(db), nil)
	seedAccount(t, db, "first@medstock.test", enums.OperatorRoleOperator)
	second := seedAccount(t, db, "second@medstock.test", enums.OperatorRoleOperator)

	_, err := svc.Update(context.Background(), second.ID, UpdateInput{
		Name:  "Second",
		Email: "first@medstock.test",
		Role:  enums.OperatorRoleOperator,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestUpdateRejectsInvalidRole(t *testing.T) {
	db := setupOperatorsTestDB(t)
	svc := NewService(NewRepository(db), nil)
	seeded := seedAccount(t, db, "siti@medstock.test", enums.OperatorRoleOperator)

	_, err := svc.Update(context.Background(), seeded.ID, UpdateInput{
		Name:  "Siti",
		Email: "siti@medstock.test",
		Role:  enums.OperatorRole("superuser"),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestDeleteOperator(t *testing.T) {
	db := setupOperatorsTestDB(t)
	svc := NewService(NewRepository(db), nil)
	seeded := seedAccount(t, db, "siti@medstock.test", enums.OperatorRoleOperator)

	require.NoError(t, svc.Delete(context.Background(), seeded.ID))

	err := svc.Delete(context.Background(), seeded.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
