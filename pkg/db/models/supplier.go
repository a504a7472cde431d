package models

import (
	"time"

	"github.com/google/uuid"
)

// Supplier represents a medicine vendor.
type Supplier struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string     `gorm:"column:name;not null" json:"name"`
	Contact   *string    `gorm:"column:contact" json:"contact"`
	Email     *string    `gorm:"column:email" json:"email"`
	Address   *string    `gorm:"column:address" json:"address"`
	Medicines []Medicine `gorm:"foreignKey:SupplierID" json:"medicines,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
