package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/medstock/medstock-backend/internal/operators"
	pkgauth "github.com/medstock/medstock-backend/pkg/auth"
	"github.com/medstock/medstock-backend/pkg/config"
	"github.com/medstock/medstock-backend/pkg/enums"
	pkgerrors "github.com/medstock/medstock-backend/pkg/errors"
)

func setupAuthTestDB(t *testing.T) *gorm.DB {
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

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "medstock-test",
		ExpirationMinutes: 60,
	}
}

func testPasswordConfig() config.PasswordConfig {
	// Minimal argon parameters keep the suite fast.
	return config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newAuthService(db *gorm.DB) *Service {
	return NewService(operators.NewRepository(db), testJWTConfig(), testPasswordConfig(), nil)
}

func TestRegisterIssuesSession(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newAuthService(db)

	session, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Budi Santoso",
		Email:    "Budi@MedStock.test",
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	assert.Equal(t, "budi@medstock.test", session.Operator.Email)
	assert.Equal(t, enums.OperatorRoleOperator, session.Operator.Role, "new accounts always start as operator")

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.Operator.ID, claims.OperatorID)
	assert.Equal(t, enums.OperatorRoleOperator, claims.Role)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newAuthService(db)

	input := RegisterInput{Name: "Budi", Email: "budi@medstock.test", Password: "password-1"}
	_, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Budi",
		Email:    "budi@medstock.test",
		Password: "short",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestLoginVerifiesCredentials(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Budi",
		Email:    "budi@medstock.test",
		Password: "password-1",
	})
	require.NoError(t, err)

	session, err := svc.Login(context.Background(), LoginInput{
		Email:    "BUDI@medstock.test",
		Password: "password-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
}

func TestLoginUniformFailureMessage(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Budi",
		Email:    "budi@medstock.test",
		Password: "password-1",
	})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(context.Background(), LoginInput{
		Email:    "budi@medstock.test",
		Password: "password-2",
	})
	_, unknownEmail := svc.Login(context.Background(), LoginInput{
		Email:    "nobody@medstock.test",
		Password: "password-1",
	})

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, pkgerrors.As(wrongPassword).Message(), pkgerrors.As(unknownEmail).Message(),
		"wrong password and unknown email must be indistinguishable")
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(wrongPassword).Code())
}
