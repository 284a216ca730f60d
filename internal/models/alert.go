package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Alert is attached to a sensor and optionally to the reading that triggered
// it. Deleting the reading keeps the alert (DataID is nulled); deleting the
// sensor removes the alert.
type Alert struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SensorID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"sensor_id"`
	DataID    *uuid.UUID `gorm:"type:uuid" json:"data_id,omitempty"`
	Severity  string     `gorm:"size:20;not null;default:'info'" json:"severity"`
	Message   string     `gorm:"type:text" json:"message"`
	Ack       bool       `gorm:"not null;default:false" json:"ack"`
	AckBy     *uuid.UUID `gorm:"type:uuid" json:"ack_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`

	Data     *SensorData `gorm:"foreignKey:DataID;constraint:OnDelete:SET NULL" json:"-"`
	AckUser  *User       `gorm:"foreignKey:AckBy;constraint:OnDelete:SET NULL" json:"-"`
}

// ValidSeverity reports whether s is one of the three known levels.
func ValidSeverity(s string) bool {
	return s == SeverityInfo || s == SeverityWarning || s == SeverityCritical
}
