package dto

import "github.com/google/uuid"

type CreateAlertRequest struct {
	SensorID uuid.UUID  `json:"sensor_id"`
	DataID   *uuid.UUID `json:"data_id"`
	Severity string     `json:"severity"`
	Message  string     `json:"message"`
}

type AlertResponse struct {
	ID        uuid.UUID  `json:"id"`
	SensorID  uuid.UUID  `json:"sensor_id"`
	DataID    *uuid.UUID `json:"data_id,omitempty"`
	Severity  string     `json:"severity"`
	Message   string     `json:"message"`
	Ack       bool       `json:"ack"`
	AckBy     *uuid.UUID `json:"ack_by,omitempty"`
	CreatedAt string     `json:"created_at"`
}
