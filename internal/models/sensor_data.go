package models

import (
	"time"

	"github.com/google/uuid"
)

// SensorData is a single telemetry reading. Rows are immutable once written;
// CreatedAt is the ingestion time, assigned by the server.
type SensorData struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SensorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"sensor_id"`
	Value     float64   `gorm:"not null" json:"value"`
	Unit      string    `gorm:"size:16;not null" json:"unit"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (SensorData) TableName() string {
	return "sensor_data"
}
