package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/denizozkan/sensorhub/internal/apperr"
	"github.com/denizozkan/sensorhub/internal/dto"
	"github.com/denizozkan/sensorhub/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeviceService struct {
	db *gorm.DB
}

func NewDeviceService(db *gorm.DB) *DeviceService {
	return &DeviceService{db: db}
}

func (s *DeviceService) Create(userID uuid.UUID, req *dto.CreateDeviceRequest) (*dto.DeviceResponse, error) {
	if err := validatePlacement(req.Type, req.Latitude, req.Longitude, req.Description); err != nil {
		return nil, err
	}

	device := models.Device{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        strings.TrimSpace(req.Type),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		IsActive:    true,
		Description: req.Description,
		Metadata:    req.Metadata,
	}
	if req.IsActive != nil {
		device.IsActive = *req.IsActive
	}

	if err := s.db.Create(&device).Error; err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to create device: %w", err))
	}

	slog.Info("device created", "device_id", device.ID, "user_id", userID)
	return mapDeviceToResponse(&device), nil
}

func (s *DeviceService) List(userID uuid.UUID) ([]dto.DeviceResponse, error) {
	var devices []models.Device
	if err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&devices).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	out := make([]dto.DeviceResponse, len(devices))
	for i, d := range devices {
		out[i] = *mapDeviceToResponse(&d)
	}
	return out, nil
}

func (s *DeviceService) Get(userID, id uuid.UUID) (*dto.DeviceResponse, error) {
	var device models.Device
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&device).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Device not found")
		}
		return nil, apperr.Internal(err)
	}
	return mapDeviceToResponse(&device), nil
}

func (s *DeviceService) Update(userID, id uuid.UUID, req *dto.UpdateDeviceRequest) (*dto.DeviceResponse, error) {
	updates := map[string]interface{}{}

	if req.Type != nil {
		trimmed := strings.TrimSpace(*req.Type)
		if trimmed == "" {
			return nil, apperr.Validation(apperr.CodeValidationError, "type is required")
		}
		updates["type"] = trimmed
	}
	if req.Latitude != nil {
		if *req.Latitude < -90 || *req.Latitude > 90 {
			return nil, apperr.Validation(apperr.CodeValidationError, "latitude must be between -90 and 90")
		}
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		if *req.Longitude < -180 || *req.Longitude > 180 {
			return nil, apperr.Validation(apperr.CodeValidationError, "longitude must be between -180 and 180")
		}
		updates["longitude"] = *req.Longitude
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Description != nil {
		if len(*req.Description) > 500 {
			return nil, apperr.Validation(apperr.CodeValidationError, "description must be at most 500 characters")
		}
		updates["description"] = *req.Description
	}
	if req.Metadata != nil {
		updates["metadata"] = req.Metadata
	}

	if len(updates) == 0 {
		return s.Get(userID, id)
	}

	result := s.db.Model(&models.Device{}).Where("id = ? AND user_id = ?", id, userID).Updates(updates)
	if result.Error != nil {
		return nil, apperr.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperr.NotFound("Device not found")
	}

	return s.Get(userID, id)
}

// Delete removes a device and, transitively, its sensors, their readings and
// their alerts. Ownership is checked inside the same transaction as the
// deletes so a racing removal cannot slip through.
func (s *DeviceService) Delete(userID, id uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var device models.Device
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&device).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Device not found")
			}
			return err
		}

		var sensorIDs []uuid.UUID
		if err := tx.Model(&models.Sensor{}).Where("device_id = ?", id).Pluck("id", &sensorIDs).Error; err != nil {
			return err
		}

		if len(sensorIDs) > 0 {
			if err := tx.Where("sensor_id IN ?", sensorIDs).Delete(&models.Alert{}).Error; err != nil {
				return err
			}
			if err := tx.Where("sensor_id IN ?", sensorIDs).Delete(&models.SensorData{}).Error; err != nil {
				return err
			}
			if err := tx.Where("device_id = ?", id).Delete(&models.Sensor{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&device).Error
	})

	var ae *apperr.Error
	if err != nil && !errors.As(err, &ae) {
		return apperr.Internal(err)
	}
	if err == nil {
		slog.Info("device deleted", "device_id", id, "user_id", userID)
	}
	return err
}

func validatePlacement(typ string, lat, lng *float64, description string) error {
	if strings.TrimSpace(typ) == "" {
		return apperr.Validation(apperr.CodeValidationError, "type is required")
	}
	if lat != nil && (*lat < -90 || *lat > 90) {
		return apperr.Validation(apperr.CodeValidationError, "latitude must be between -90 and 90")
	}
	if lng != nil && (*lng < -180 || *lng > 180) {
		return apperr.Validation(apperr.CodeValidationError, "longitude must be between -180 and 180")
	}
	if len(description) > 500 {
		return apperr.Validation(apperr.CodeValidationError, "description must be at most 500 characters")
	}
	return nil
}

func mapDeviceToResponse(d *models.Device) *dto.DeviceResponse {
	return &dto.DeviceResponse{
		ID:          d.ID,
		UserID:      d.UserID,
		Type:        d.Type,
		Latitude:    d.Latitude,
		Longitude:   d.Longitude,
		IsActive:    d.IsActive,
		Description: d.Description,
		Metadata:    d.Metadata,
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   d.UpdatedAt.Format(time.RFC3339),
	}
}
