package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medstock/medstock-backend/pkg/enums"
)

// StockTransaction is the immutable record of one stock movement.
// TotalPrice snapshots quantity times the medicine price at processing time;
// later price edits never rewrite history.
type StockTransaction struct {
	ID         uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Type       enums.TransactionType `gorm:"column:type;not null" json:"type"`
	Quantity   int                   `gorm:"column:quantity;not null" json:"quantity"`
	TotalPrice decimal.Decimal       `gorm:"column:total_price;type:numeric(12,2);not null" json:"totalPrice"`
	MedicineID uuid.UUID             `gorm:"column:medicine_id;type:uuid;not null" json:"medicineId"`
	OperatorID uuid.UUID             `gorm:"column:operator_id;type:uuid;not null" json:"operatorId"`
	Medicine   *Medicine             `gorm:"foreignKey:MedicineID" json:"medicine,omitempty"`
	Operator   *Operator             `gorm:"foreignKey:OperatorID" json:"operator,omitempty"`
	CreatedAt  time.Time             `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
