package models

import (
	"time"

	"github.com/google/uuid"
)

// Sensor belongs to exactly one user and one device; both links are required
// and deleting either parent deletes the sensor.
type Sensor struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	DeviceID    uuid.UUID `gorm:"type:uuid;not null;index" json:"device_id"`
	Type        string    `gorm:"size:50;not null" json:"type"`
	Latitude    *float64  `gorm:"type:decimal(10,8)" json:"latitude,omitempty"`
	Longitude   *float64  `gorm:"type:decimal(11,8)" json:"longitude,omitempty"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	Description string    `gorm:"size:500" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Readings []SensorData `gorm:"foreignKey:SensorID;constraint:OnDelete:CASCADE" json:"-"`
	Alerts   []Alert      `gorm:"foreignKey:SensorID;constraint:OnDelete:CASCADE" json:"-"`
}
