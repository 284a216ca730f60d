package dto

import "github.com/google/uuid"

type CreateSensorRequest struct {
	Type        string   `json:"type"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	IsActive    *bool    `json:"is_active"`
	Description string   `json:"description"`
}

type UpdateSensorRequest struct {
	Type        *string  `json:"type"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	IsActive    *bool    `json:"is_active"`
	Description *string  `json:"description"`
}

type SensorResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	DeviceID    uuid.UUID `json:"device_id"`
	Type        string    `json:"type"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	IsActive    bool      `json:"is_active"`
	Description string    `json:"description,omitempty"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}
