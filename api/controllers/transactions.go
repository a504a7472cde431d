package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/medstock/medstock-backend/api/middleware"
	"github.com/medstock/medstock-backend/api/responses"
	"github.com/medstock/medstock-backend/api/validators"
	transactionsvc "github.com/medstock/medstock-backend/internal/transactions"
	"github.com/medstock/medstock-backend/pkg/enums"
	pkgerrors "github.com/medstock/medstock-backend/pkg/errors"
	"github.com/medstock/medstock-backend/pkg/logger"
	"github.com/medstock/medstock-backend/pkg/pagination"
)

type processTransactionRequest struct {
	MedicineID uuid.UUID `json:"medicineId" validate:"required"`
	Type       string    `json:"type" validate:"required,oneof=purchase sale"`
	Quantity   int       `json:"quantity" validate:"required,gt=0"`
}

type correctTransactionRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

type transactionPage struct {
	Items      []transactionsvc.Record `json:"items"`
	NextCursor string                  `json:"nextCursor,omitempty"`
}

// ProcessTransaction records one purchase or sale for the authenticated
// operator.
func ProcessTransaction(svc *transactionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload processTransactionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		txType, err := enums.ParseTransactionType(payload.Type)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid transaction type"))
			return
		}

		operatorID, err := uuid.Parse(middleware.OperatorIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeUnauthorized, "missing operator identity"))
			return
		}

		record, err := svc.Process(r.Context(), operatorID, transactionsvc.ProcessInput{
			MedicineID: payload.MedicineID,
			Type:       txType,
			Quantity:   payload.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, transactionsvc.ToRecord(record))
	}
}

// ListTransactions returns one cursor page of history, newest first.
func ListTransactions(svc *transactionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, transactionPage{
			Items:      transactionsvc.ToRecords(result.Items),
			NextCursor: result.NextCursor,
		})
	}
}

func GetTransaction(svc *transactionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, transactionsvc.ToRecord(record))
	}
}

// CorrectTransaction rewrites a past movement's quantity with a compensating
// stock adjustment.
func CorrectTransaction(svc *transactionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload correctTransactionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Correct(r.Context(), id, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, transactionsvc.ToRecord(record))
	}
}

// DeleteTransaction removes the history row without touching stock.
func DeleteTransaction(svc *transactionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
