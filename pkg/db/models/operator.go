package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/medstock/medstock-backend/pkg/enums"
)

// Operator represents a staff account. The password hash never serializes,
// whether the model is returned directly or preloaded on another row.
type Operator struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string             `gorm:"column:name;not null" json:"name"`
	Email        string             `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash string             `gorm:"column:password_hash;not null" json:"-"`
	Role         enums.OperatorRole `gorm:"column:role;not null;default:operator" json:"role"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
