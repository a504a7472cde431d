package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Medicine represents a tracked inventory item. Quantity is never negative;
// StockOpname flips to false on every quantity change and only a manual
// confirmation sets it back.
type Medicine struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string          `gorm:"column:name;not null" json:"name"`
	Description *string         `gorm:"column:description" json:"description"`
	Dosage      *string         `gorm:"column:dosage" json:"dosage"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Quantity    int             `gorm:"column:quantity;not null;default:0" json:"quantity"`
	ExpiryDate  time.Time       `gorm:"column:expiry_date;not null" json:"expiryDate"`
	StockOpname bool            `gorm:"column:stock_opname;not null;default:false" json:"stockOpname"`
	CategoryID  uuid.UUID       `gorm:"column:category_id;type:uuid;not null" json:"categoryId"`
	SupplierID  uuid.UUID       `gorm:"column:supplier_id;type:uuid;not null" json:"supplierId"`
	Category    *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Supplier    *Supplier       `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
