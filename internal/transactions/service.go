package transactions

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	pkgdb "github.com/medstock/medstock-backend/pkg/db"
	"github.com/medstock/medstock-backend/pkg/db/models"
	"github.com/medstock/medstock-backend/pkg/enums"
	pkgerrors "github.com/medstock/medstock-backend/pkg/errors"
	"github.com/medstock/medstock-backend/pkg/logger"
	"github.com/medstock/medstock-backend/pkg/pagination"
)

// Service processes stock movements against the medicine ledger.
type Service struct {
	client *pkgdb.Client
	repo   *Repository
	logg   *logger.Logger
}

// NewService builds the transaction service.
func NewService(client *pkgdb.Client, repo *Repository, logg *logger.Logger) *Service {
	return &Service{client: client, repo: repo, logg: logg}
}

// Process applies one purchase or sale. The medicine read, the guarded stock
// update and the history insert land in a single DB transaction, so a failed
// movement leaves no trace.
func (s *Service) Process(ctx context.Context, operatorID uuid.UUID, input ProcessInput) (*models.StockTransaction, error) {
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction type must be purchase or sale")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if operatorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing operator identity")
	}

	var created *models.StockTransaction
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		medicine, err := repo.FindMedicine(ctx, input.MedicineID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "medicine not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load medicine")
		}

		delta := input.Quantity
		if input.Type == enums.TransactionTypeSale {
			delta = -input.Quantity
		}

		affected, err := repo.ApplyStockDelta(ctx, medicine.ID, delta)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply stock delta")
		}
		if affected == 0 {
			// The guard refused: somebody sold stock between our read and the update.
			current, readErr := repo.FindMedicine(ctx, medicine.ID)
			if readErr != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, readErr, "reload medicine")
			}
			return pkgerrors.New(pkgerrors.CodeInsufficientStock, "medicine quantity is less than the requested quantity").
				WithDetails(map[string]any{
					"available": current.Quantity,
					"requested": input.Quantity,
				})
		}

		record := &models.StockTransaction{
			ID:         uuid.New(),
			Type:       input.Type,
			Quantity:   input.Quantity,
			TotalPrice: medicine.Price.Mul(decimal.NewFromInt(int64(input.Quantity))),
			MedicineID: medicine.ID,
			OperatorID: operatorID,
		}
		created, err = repo.Create(ctx, record)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record transaction")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		fields := map[string]any{
			"transaction_id": created.ID.String(),
			"medicine_id":    created.MedicineID.String(),
			"type":           created.Type.String(),
			"quantity":       created.Quantity,
		}
		s.logg.Info(s.logg.WithFields(ctx, fields), "transaction.processed")
	}
	return created, nil
}

// Correct rewrites the quantity of a past movement as a compensating stock
// adjustment at the recorded unit price. The original total already snapshots
// the price at processing time, so corrections never pick up later price
// edits.
func (s *Service) Correct(ctx context.Context, txID uuid.UUID, newQuantity int) (*models.StockTransaction, error) {
	if newQuantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	var corrected *models.StockTransaction
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		record, err := repo.FindByID(ctx, txID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load transaction")
		}

		if newQuantity == record.Quantity {
			corrected = record
			return nil
		}

		// A bigger sale or a smaller purchase both take stock out.
		diff := newQuantity - record.Quantity
		stockDelta := diff
		if record.Type == enums.TransactionTypeSale {
			stockDelta = -diff
		}

		affected, err := repo.ApplyStockDelta(ctx, record.MedicineID, stockDelta)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply correction delta")
		}
		if affected == 0 {
			current, readErr := repo.FindMedicine(ctx, record.MedicineID)
			if readErr != nil {
				if errors.Is(readErr, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeStateConflict, "medicine no longer exists")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, readErr, "reload medicine")
			}
			return pkgerrors.New(pkgerrors.CodeStateConflict, "correction would drive stock negative").
				WithDetails(map[string]any{
					"available": current.Quantity,
					"required":  -stockDelta,
				})
		}

		unitPrice := record.TotalPrice.Div(decimal.NewFromInt(int64(record.Quantity)))
		record.Quantity = newQuantity
		record.TotalPrice = unitPrice.Mul(decimal.NewFromInt(int64(newQuantity))).Round(2)

		corrected, err = repo.Update(ctx, record)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update transaction")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		fields := map[string]any{
			"transaction_id": corrected.ID.String(),
			"quantity":       corrected.Quantity,
		}
		s.logg.Info(s.logg.WithFields(ctx, fields), "transaction.corrected")
	}
	return corrected, nil
}

// Delete removes the history row only; stock levels stay untouched.
func (s *Service) Delete(ctx context.Context, txID uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, txID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete transaction")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
	}
	return nil
}

// Get returns one transaction with medicine and operator summaries.
func (s *Service) Get(ctx context.Context, txID uuid.UUID) (*models.StockTransaction, error) {
	record, err := s.repo.FindByIDWithRelations(ctx, txID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load transaction")
	}
	return record, nil
}

// List returns one page of transaction history, newest first. The repo reads
// one row past the page size to detect whether a next cursor exists.
func (s *Service) List(ctx context.Context, params pagination.Params) (*ListResult, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	rows, err := s.repo.List(ctx, cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list transactions")
	}

	items, next := nextCursorFor(rows, pagination.NormalizeLimit(params.Limit))
	return &ListResult{Items: items, NextCursor: next}, nil
}
