package transactions

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medstock/medstock-backend/pkg/db/models"
	"github.com/medstock/medstock-backend/pkg/enums"
	"github.com/medstock/medstock-backend/pkg/pagination"
)

// ProcessInput carries one requested stock movement. The operator comes from
// the authenticated principal, never from the payload.
type ProcessInput struct {
	MedicineID uuid.UUID
	Type       enums.TransactionType
	Quantity   int
}

// MedicineSummary is the slice of the medicine exposed on history reads.
type MedicineSummary struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// OperatorSummary names who processed a movement. Credentials stay out of it.
type OperatorSummary struct {
	ID   uuid.UUID          `json:"id"`
	Name string             `json:"name"`
	Role enums.OperatorRole `json:"role"`
}

// Record is the transaction projection handed to clients.
type Record struct {
	ID         uuid.UUID             `json:"id"`
	Type       enums.TransactionType `json:"type"`
	Quantity   int                   `json:"quantity"`
	TotalPrice decimal.Decimal       `json:"totalPrice"`
	MedicineID uuid.UUID             `json:"medicineId"`
	OperatorID uuid.UUID             `json:"operatorId"`
	Medicine   *MedicineSummary      `json:"medicine,omitempty"`
	Operator   *OperatorSummary      `json:"operator,omitempty"`
	CreatedAt  time.Time             `json:"createdAt"`
}

// ToRecord maps a stored transaction to its client projection.
func ToRecord(tx *models.StockTransaction) *Record {
	if tx == nil {
		return nil
	}
	record := &Record{
		ID:         tx.ID,
		Type:       tx.Type,
		Quantity:   tx.Quantity,
		TotalPrice: tx.TotalPrice,
		MedicineID: tx.MedicineID,
		OperatorID: tx.OperatorID,
		CreatedAt:  tx.CreatedAt,
	}
	if tx.Medicine != nil {
		record.Medicine = &MedicineSummary{
			ID:    tx.Medicine.ID,
			Name:  tx.Medicine.Name,
			Price: tx.Medicine.Price,
		}
	}
	if tx.Operator != nil {
		record.Operator = &OperatorSummary{
			ID:   tx.Operator.ID,
			Name: tx.Operator.Name,
			Role: tx.Operator.Role,
		}
	}
	return record
}

// ToRecords maps a page of stored transactions.
func ToRecords(rows []models.StockTransaction) []Record {
	records := make([]Record, 0, len(rows))
	for i := range rows {
		records = append(records, *ToRecord(&rows[i]))
	}
	return records
}

// ListResult is one page of transaction history, newest first.
type ListResult struct {
	Items      []models.StockTransaction
	NextCursor string
}

func nextCursorFor(rows []models.StockTransaction, limit int) ([]models.StockTransaction, string) {
	if len(rows) <= limit {
		return rows, ""
	}
	rows = rows[:limit]
	last := rows[len(rows)-1]
	return rows, pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
}
