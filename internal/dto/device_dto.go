package dto

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CreateDeviceRequest struct {
	Type        string         `json:"type"`
	Latitude    *float64       `json:"latitude"`
	Longitude   *float64       `json:"longitude"`
	IsActive    *bool          `json:"is_active"`
	Description string         `json:"description"`
	Metadata    datatypes.JSON `json:"metadata"`
}

type UpdateDeviceRequest struct {
	Type        *string        `json:"type"`
	Latitude    *float64       `json:"latitude"`
	Longitude   *float64       `json:"longitude"`
	IsActive    *bool          `json:"is_active"`
	Description *string        `json:"description"`
	Metadata    datatypes.JSON `json:"metadata"`
}

type DeviceResponse struct {
	ID          uuid.UUID      `json:"id"`
	UserID      uuid.UUID      `json:"user_id"`
	Type        string         `json:"type"`
	Latitude    *float64       `json:"latitude,omitempty"`
	Longitude   *float64       `json:"longitude,omitempty"`
	IsActive    bool           `json:"is_active"`
	Description string         `json:"description,omitempty"`
	Metadata    datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
}
