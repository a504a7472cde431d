package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups medicines for dashboard distribution.
type Category struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string     `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Medicines []Medicine `gorm:"foreignKey:CategoryID" json:"medicines,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
