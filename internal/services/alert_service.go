package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/denizozkan/sensorhub/internal/apperr"
	"github.com/denizozkan/sensorhub/internal/dto"
	"github.com/denizozkan/sensorhub/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AlertService struct {
	db *gorm.DB
}

func NewAlertService(db *gorm.DB) *AlertService {
	return &AlertService{db: db}
}

// Create attaches an alert to a sensor, optionally referencing the reading
// that triggered it. Used by trigger rules after a batch commit.
func (s *AlertService) Create(sensorID uuid.UUID, dataID *uuid.UUID, severity, message string) (*dto.AlertResponse, error) {
	if !models.ValidSeverity(severity) {
		return nil, apperr.Validation(apperr.CodeValidationError,
			fmt.Sprintf("severity must be one of: %s, %s, %s",
				models.SeverityInfo, models.SeverityWarning, models.SeverityCritical))
	}

	alert := models.Alert{
		ID:       uuid.New(),
		SensorID: sensorID,
		DataID:   dataID,
		Severity: severity,
		Message:  message,
	}

	if err := s.db.Create(&alert).Error; err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to create alert: %w", err))
	}

	slog.Info("alert created", "alert_id", alert.ID, "sensor_id", sensorID, "severity", severity)
	return mapAlertToResponse(&alert), nil
}

// List returns the caller's alerts, newest first, optionally filtered by
// severity.
func (s *AlertService) List(userID uuid.UUID, severityFilter string) ([]dto.AlertResponse, error) {
	if severityFilter != "" && !models.ValidSeverity(severityFilter) {
		return nil, apperr.Validation(apperr.CodeValidationError,
			fmt.Sprintf("severity must be one of: %s, %s, %s",
				models.SeverityInfo, models.SeverityWarning, models.SeverityCritical))
	}

	query := s.db.Model(&models.Alert{}).
		Joins("JOIN sensors ON sensors.id = alerts.sensor_id").
		Where("sensors.user_id = ?", userID)
	if severityFilter != "" {
		query = query.Where("alerts.severity = ?", severityFilter)
	}

	var alerts []models.Alert
	if err := query.Order("alerts.created_at DESC").Find(&alerts).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	out := make([]dto.AlertResponse, len(alerts))
	for i, a := range alerts {
		out[i] = *mapAlertToResponse(&a)
	}
	return out, nil
}

// ListAll returns alerts across all users, newest first. Admin only; the
// route guard enforces that.
func (s *AlertService) ListAll(severityFilter string) ([]dto.AlertResponse, error) {
	if severityFilter != "" && !models.ValidSeverity(severityFilter) {
		return nil, apperr.Validation(apperr.CodeValidationError,
			fmt.Sprintf("severity must be one of: %s, %s, %s",
				models.SeverityInfo, models.SeverityWarning, models.SeverityCritical))
	}

	query := s.db.Model(&models.Alert{})
	if severityFilter != "" {
		query = query.Where("severity = ?", severityFilter)
	}

	var alerts []models.Alert
	if err := query.Order("created_at DESC").Find(&alerts).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	out := make([]dto.AlertResponse, len(alerts))
	for i, a := range alerts {
		out[i] = *mapAlertToResponse(&a)
	}
	return out, nil
}

func (s *AlertService) Get(userID, id uuid.UUID) (*dto.AlertResponse, error) {
	var alert models.Alert
	err := s.db.Model(&models.Alert{}).
		Joins("JOIN sensors ON sensors.id = alerts.sensor_id").
		Where("alerts.id = ? AND sensors.user_id = ?", id, userID).
		First(&alert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Alert not found")
		}
		return nil, apperr.Internal(err)
	}
	return mapAlertToResponse(&alert), nil
}

// Acknowledge moves an alert to the acknowledged state. The caller must be
// the owner of the alert's sensor chain, or an admin. Acknowledging an
// already-acknowledged alert is idempotent: the current state is returned and
// ack_by is left untouched.
func (s *AlertService) Acknowledge(callerID uuid.UUID, callerIsAdmin bool, alertID uuid.UUID) (*dto.AlertResponse, error) {
	var alert models.Alert
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&alert, "id = ?", alertID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Alert not found")
			}
			return err
		}

		if !callerIsAdmin {
			var sensor models.Sensor
			if err := tx.Where("id = ? AND user_id = ?", alert.SensorID, callerID).First(&sensor).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// unowned reads the same as absent
					return apperr.NotFound("Alert not found")
				}
				return err
			}
		}

		if alert.Ack {
			return nil
		}

		alert.Ack = true
		alert.AckBy = &callerID
		return tx.Model(&models.Alert{}).Where("id = ?", alertID).
			Updates(map[string]interface{}{"ack": true, "ack_by": callerID}).Error
	})
	if err != nil {
		return nil, asAppError(err)
	}

	return mapAlertToResponse(&alert), nil
}

func mapAlertToResponse(a *models.Alert) *dto.AlertResponse {
	return &dto.AlertResponse{
		ID:        a.ID,
		SensorID:  a.SensorID,
		DataID:    a.DataID,
		Severity:  a.Severity,
		Message:   a.Message,
		Ack:       a.Ack,
		AckBy:     a.AckBy,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}
