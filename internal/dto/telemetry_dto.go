package dto

import "github.com/google/uuid"

// RawReading is one submitted batch item. Value is left untyped so the
// validator can distinguish a missing value from a non-numeric one.
type RawReading struct {
	SensorID uuid.UUID   `json:"sensor_id"`
	Value    interface{} `json:"value"`
	Unit     string      `json:"unit"`
}

type IngestRequest struct {
	Readings []RawReading `json:"readings"`
}

// SensorReading is a batch item on the per-sensor route, where the sensor id
// comes from the path.
type SensorReading struct {
	Value interface{} `json:"value"`
	Unit  string      `json:"unit"`
}

type ReadingResponse struct {
	ID        uuid.UUID `json:"id"`
	SensorID  uuid.UUID `json:"sensor_id"`
	Value     float64   `json:"value"`
	Unit      string    `json:"unit"`
	CreatedAt string    `json:"created_at"`
}

// BatchResult reports the outcome of one ingestion call. Skipped counts
// items dropped because their sensor is not the caller's; a validation
// failure aborts the whole call instead and commits nothing.
type BatchResult struct {
	Accepted      []ReadingResponse `json:"accepted"`
	Submitted     int               `json:"submitted"`
	AcceptedCount int               `json:"accepted_count"`
	Skipped       int               `json:"skipped"`
}

type DeleteResult struct {
	Deleted int64 `json:"deleted"`
}
