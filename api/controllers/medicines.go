package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medstock/medstock-backend/api/responses"
	"github.com/medstock/medstock-backend/api/validators"
	medicinesvc "github.com/medstock/medstock-backend/internal/medicines"
	pkgerrors "github.com/medstock/medstock-backend/pkg/errors"
	"github.com/medstock/medstock-backend/pkg/logger"
)

type medicineRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description *string         `json:"description,omitempty"`
	Dosage      *string         `json:"dosage,omitempty"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	ExpiryDate  string          `json:"expiryDate" validate:"required"`
	CategoryID  uuid.UUID       `json:"categoryId" validate:"required"`
	SupplierID  uuid.UUID       `json:"supplierId" validate:"required"`
}

func (p medicineRequest) expiry() (time.Time, error) {
	// Accept a bare date or a full timestamp.
	if t, err := time.Parse("2006-01-02", p.ExpiryDate); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, p.ExpiryDate)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "expiryDate must be YYYY-MM-DD or RFC 3339").
			WithDetails(map[string]any{"field": "expiryDate"})
	}
	return t, nil
}

func CreateMedicine(svc *medicinesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload medicineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		expiry, err := payload.expiry()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		medicine, err := svc.Create(r.Context(), medicinesvc.CreateInput{
			Name:        payload.Name,
			Description: payload.Description,
			Dosage:      payload.Dosage,
			Price:       payload.Price,
			Quantity:    payload.Quantity,
			ExpiryDate:  expiry,
			CategoryID:  payload.CategoryID,
			SupplierID:  payload.SupplierID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, medicine)
	}
}

func ListMedicines(svc *medicinesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func GetMedicine(svc *medicinesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		medicine, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, medicine)
	}
}

func UpdateMedicine(svc *medicinesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload medicineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		expiry, err := payload.expiry()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		medicine, err := svc.Update(r.Context(), id, medicinesvc.UpdateInput{
			Name:        payload.Name,
			Description: payload.Description,
			Dosage:      payload.Dosage,
			Price:       payload.Price,
			Quantity:    payload.Quantity,
			ExpiryDate:  expiry,
			CategoryID:  payload.CategoryID,
			SupplierID:  payload.SupplierID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, medicine)
	}
}

// ConfirmStockOpname marks a medicine's physical count as verified.
func ConfirmStockOpname(svc *medicinesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		medicine, err := svc.ConfirmStockOpname(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, medicine)
	}
}

func DeleteMedicine(svc *medicinesvc.Service, logg *logger.Logger) http.HandlerFunc {
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
