package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medstock/medstock-backend/internal/operators"
	pkgauth "github.com/medstock/medstock-backend/pkg/auth"
	"github.com/medstock/medstock-backend/pkg/config"
	pkgdb "github.com/medstock/medstock-backend/pkg/db"
	"github.com/medstock/medstock-backend/pkg/db/models"
	"github.com/medstock/medstock-backend/pkg/enums"
	pkgerrors "github.com/medstock/medstock-backend/pkg/errors"
	"github.com/medstock/medstock-backend/pkg/logger"
	"github.com/medstock/medstock-backend/pkg/security"
)

const minPasswordLength = 8

// Service issues operator sessions.
type Service struct {
	repo        *operators.Repository
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	logg        *logger.Logger
	now         func() time.Time
}

// NewService builds the auth service.
func NewService(repo *operators.Repository, jwtCfg config.JWTConfig, passwordCfg config.PasswordConfig, logg *logger.Logger) *Service {
	return &Service{
		repo:        repo,
		jwtCfg:      jwtCfg,
		passwordCfg: passwordCfg,
		logg:        logg,
		now:         time.Now,
	}
}

// Register creates an operator account with the default role and logs it in.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name and email are required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password too short").
			WithDetails(map[string]any{"min_length": minPasswordLength})
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	operator := &models.Operator{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         enums.OperatorRoleOperator,
	}

	created, err := s.repo.Create(ctx, operator)
	if err != nil {
		if pkgdb.IsUniqueViolation(err, "operators_email_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create operator")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "operator_id", created.ID.String()), "auth.registered")
	}
	return s.sessionFor(created)
}

// Login verifies credentials and mints a session token. Unknown emails and
// wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	operator, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load operator")
	}

	ok, err := security.VerifyPassword(input.Password, operator.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "operator_id", operator.ID.String()), "auth.login")
	}
	return s.sessionFor(operator)
}

func (s *Service) sessionFor(operator *models.Operator) (*Session, error) {
	token, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		OperatorID: operator.ID,
		Name:       operator.Name,
		Role:       operator.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}
	return &Session{
		Token:    token,
		Operator: operators.ToProfile(operator),
	}, nil
}
