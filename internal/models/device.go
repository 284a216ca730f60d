package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Device is a physical unit hosting sensors. Deleting a device removes its
// sensors and everything under them.
type Device struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Type        string         `gorm:"size:50;not null" json:"type"`
	Latitude    *float64       `gorm:"type:decimal(10,8)" json:"latitude,omitempty"`
	Longitude   *float64       `gorm:"type:decimal(11,8)" json:"longitude,omitempty"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	Description string         `gorm:"size:500" json:"description,omitempty"`
	Metadata    datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	Sensors []Sensor `gorm:"foreignKey:DeviceID;constraint:OnDelete:CASCADE" json:"-"`
}
