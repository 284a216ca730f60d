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

type SensorService struct {
	db *gorm.DB
}

func NewSensorService(db *gorm.DB) *SensorService {
	return &SensorService{db: db}
}

// Create attaches a sensor to one of the caller's devices. The device lookup
// doubles as the ownership check: a device belonging to someone else reads as
// not found.
func (s *SensorService) Create(userID, deviceID uuid.UUID, req *dto.CreateSensorRequest) (*dto.SensorResponse, error) {
	if err := validatePlacement(req.Type, req.Latitude, req.Longitude, req.Description); err != nil {
		return nil, err
	}

	var device models.Device
	if err := s.db.Where("id = ? AND user_id = ?", deviceID, userID).First(&device).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Device not found")
		}
		return nil, apperr.Internal(err)
	}

	sensor := models.Sensor{
		ID:          uuid.New(),
		UserID:      userID,
		DeviceID:    deviceID,
		Type:        strings.TrimSpace(req.Type),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		IsActive:    true,
		Description: req.Description,
	}
	if req.IsActive != nil {
		sensor.IsActive = *req.IsActive
	}

	if err := s.db.Create(&sensor).Error; err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to create sensor: %w", err))
	}

	slog.Info("sensor created", "sensor_id", sensor.ID, "device_id", deviceID, "user_id", userID)
	return mapSensorToResponse(&sensor), nil
}

func (s *SensorService) ListByDevice(userID, deviceID uuid.UUID) ([]dto.SensorResponse, error) {
	var device models.Device
	if err := s.db.Where("id = ? AND user_id = ?", deviceID, userID).First(&device).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Device not found")
		}
		return nil, apperr.Internal(err)
	}

	var sensors []models.Sensor
	if err := s.db.Where("device_id = ?", deviceID).Order("created_at ASC").Find(&sensors).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	out := make([]dto.SensorResponse, len(sensors))
	for i, sn := range sensors {
		out[i] = *mapSensorToResponse(&sn)
	}
	return out, nil
}

func (s *SensorService) Get(userID, id uuid.UUID) (*dto.SensorResponse, error) {
	var sensor models.Sensor
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&sensor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Sensor not found")
		}
		return nil, apperr.Internal(err)
	}
	return mapSensorToResponse(&sensor), nil
}

func (s *SensorService) Update(userID, id uuid.UUID, req *dto.UpdateSensorRequest) (*dto.SensorResponse, error) {
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

	if len(updates) == 0 {
		return s.Get(userID, id)
	}

	result := s.db.Model(&models.Sensor{}).Where("id = ? AND user_id = ?", id, userID).Updates(updates)
	if result.Error != nil {
		return nil, apperr.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperr.NotFound("Sensor not found")
	}

	return s.Get(userID, id)
}

// Delete removes a sensor with its readings and alerts in one transaction.
func (s *SensorService) Delete(userID, id uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var sensor models.Sensor
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&sensor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Sensor not found")
			}
			return err
		}

		if err := tx.Where("sensor_id = ?", id).Delete(&models.Alert{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sensor_id = ?", id).Delete(&models.SensorData{}).Error; err != nil {
			return err
		}
		return tx.Delete(&sensor).Error
	})

	var ae *apperr.Error
	if err != nil && !errors.As(err, &ae) {
		return apperr.Internal(err)
	}
	if err == nil {
		slog.Info("sensor deleted", "sensor_id", id, "user_id", userID)
	}
	return err
}

func mapSensorToResponse(sn *models.Sensor) *dto.SensorResponse {
	return &dto.SensorResponse{
		ID:          sn.ID,
		UserID:      sn.UserID,
		DeviceID:    sn.DeviceID,
		Type:        sn.Type,
		Latitude:    sn.Latitude,
		Longitude:   sn.Longitude,
		IsActive:    sn.IsActive,
		Description: sn.Description,
		CreatedAt:   sn.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   sn.UpdatedAt.Format(time.RFC3339),
	}
}
