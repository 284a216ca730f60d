package services

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/denizozkan/sensorhub/internal/apperr"
	"github.com/denizozkan/sensorhub/internal/dto"
	"github.com/denizozkan/sensorhub/internal/models"
	"github.com/denizozkan/sensorhub/internal/units"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TelemetryService is the ingestion pipeline: it resolves each submitted
// reading against the caller's ownership chain, validates it, and commits the
// surviving rows as one all-or-nothing batch.
type TelemetryService struct {
	db     *gorm.DB
	alerts *AlertService
	rules  []TriggerRule
}

func NewTelemetryService(db *gorm.DB, alerts *AlertService, rules []TriggerRule) *TelemetryService {
	return &TelemetryService{db: db, alerts: alerts, rules: rules}
}

// Ingest processes a reading batch for one caller. Items whose sensor is not
// the caller's are skipped and counted; a malformed value or unit aborts the
// whole call before anything is written. Staged rows are committed in a
// single transaction that re-checks ownership, so a racing sensor delete
// turns the affected items into skips instead of orphan rows.
func (s *TelemetryService) Ingest(userID uuid.UUID, batch []dto.RawReading) (*dto.BatchResult, error) {
	staged := make([]models.SensorData, 0, len(batch))
	skipped := 0

	for _, raw := range batch {
		var sensor models.Sensor
		if err := s.db.Where("id = ? AND user_id = ?", raw.SensorID, userID).First(&sensor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				skipped++
				slog.Info("reading skipped, sensor not owned by caller",
					"sensor_id", raw.SensorID, "user_id", userID)
				continue
			}
			return nil, apperr.Internal(err)
		}

		value, verr := validateReading(raw.Value, raw.Unit)
		if verr != nil {
			// hard abort: nothing from this batch is committed
			return nil, verr
		}

		staged = append(staged, models.SensorData{
			ID:       uuid.New(),
			SensorID: raw.SensorID,
			Value:    value,
			Unit:     raw.Unit,
		})
	}

	committed := staged
	if len(staged) > 0 {
		var err error
		committed, err = s.commitBatch(userID, staged)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		skipped += len(staged) - len(committed)
	}

	s.evaluateRules(committed)

	result := &dto.BatchResult{
		Accepted:      make([]dto.ReadingResponse, len(committed)),
		Submitted:     len(batch),
		AcceptedCount: len(committed),
		Skipped:       skipped,
	}
	for i, d := range committed {
		result.Accepted[i] = mapReadingToResponse(&d)
	}

	slog.Info("batch ingested", "user_id", userID,
		"submitted", result.Submitted, "accepted", result.AcceptedCount, "skipped", result.Skipped)
	return result, nil
}

// IngestForSensor funnels the per-sensor route into the same pipeline.
func (s *TelemetryService) IngestForSensor(userID, sensorID uuid.UUID, readings []dto.SensorReading) (*dto.BatchResult, error) {
	batch := make([]dto.RawReading, len(readings))
	for i, r := range readings {
		batch[i] = dto.RawReading{SensorID: sensorID, Value: r.Value, Unit: r.Unit}
	}
	return s.Ingest(userID, batch)
}

func (s *TelemetryService) commitBatch(userID uuid.UUID, staged []models.SensorData) ([]models.SensorData, error) {
	var committed []models.SensorData
	err := s.db.Transaction(func(tx *gorm.DB) error {
		ids := make([]uuid.UUID, 0, len(staged))
		seen := make(map[uuid.UUID]struct{})
		for _, d := range staged {
			if _, ok := seen[d.SensorID]; !ok {
				seen[d.SensorID] = struct{}{}
				ids = append(ids, d.SensorID)
			}
		}

		var owned []uuid.UUID
		if err := tx.Model(&models.Sensor{}).
			Where("id IN ? AND user_id = ?", ids, userID).
			Pluck("id", &owned).Error; err != nil {
			return err
		}
		ownedSet := make(map[uuid.UUID]struct{}, len(owned))
		for _, id := range owned {
			ownedSet[id] = struct{}{}
		}

		committed = committed[:0]
		for _, d := range staged {
			if _, ok := ownedSet[d.SensorID]; ok {
				committed = append(committed, d)
			}
		}
		if len(committed) == 0 {
			return nil
		}
		return tx.Create(&committed).Error
	})
	if err != nil {
		return nil, err
	}
	return committed, nil
}

func (s *TelemetryService) evaluateRules(readings []models.SensorData) {
	for _, d := range readings {
		for _, rule := range s.rules {
			severity, message, triggered := rule.Evaluate(d)
			if !triggered {
				continue
			}
			dataID := d.ID
			if _, err := s.alerts.Create(d.SensorID, &dataID, severity, message); err != nil {
				slog.Error("alert rule failed", "rule", rule.Name(), "sensor_id", d.SensorID, "error", err)
			}
		}
	}
}

// GetReadings returns a sensor's readings oldest-first. The ascending order
// is part of the contract; trend consumers depend on it.
func (s *TelemetryService) GetReadings(userID, sensorID uuid.UUID) ([]dto.ReadingResponse, error) {
	if err := s.requireSensor(userID, sensorID); err != nil {
		return nil, err
	}

	var readings []models.SensorData
	if err := s.db.Where("sensor_id = ?", sensorID).
		Order("created_at ASC, id ASC").Find(&readings).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	out := make([]dto.ReadingResponse, len(readings))
	for i, d := range readings {
		out[i] = mapReadingToResponse(&d)
	}
	return out, nil
}

func (s *TelemetryService) GetLatestReading(userID, sensorID uuid.UUID) (*dto.ReadingResponse, error) {
	if err := s.requireSensor(userID, sensorID); err != nil {
		return nil, err
	}

	var reading models.SensorData
	if err := s.db.Where("sensor_id = ?", sensorID).
		Order("created_at DESC, id DESC").First(&reading).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Sensor has no readings")
		}
		return nil, apperr.Internal(err)
	}

	resp := mapReadingToResponse(&reading)
	return &resp, nil
}

// DeleteReading removes one reading. Deleting zero rows is a successful
// no-op, reported in the result.
func (s *TelemetryService) DeleteReading(userID, sensorID, dataID uuid.UUID) (*dto.DeleteResult, error) {
	var affected int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := requireSensorTx(tx, userID, sensorID); err != nil {
			return err
		}
		result := tx.Where("id = ? AND sensor_id = ?", dataID, sensorID).Delete(&models.SensorData{})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return &dto.DeleteResult{Deleted: affected}, nil
}

func (s *TelemetryService) DeleteAllReadings(userID, sensorID uuid.UUID) (*dto.DeleteResult, error) {
	var affected int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := requireSensorTx(tx, userID, sensorID); err != nil {
			return err
		}
		result := tx.Where("sensor_id = ?", sensorID).Delete(&models.SensorData{})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return &dto.DeleteResult{Deleted: affected}, nil
}

func (s *TelemetryService) requireSensor(userID, sensorID uuid.UUID) error {
	return requireSensorTx(s.db, userID, sensorID)
}

func requireSensorTx(tx *gorm.DB, userID, sensorID uuid.UUID) error {
	var sensor models.Sensor
	if err := tx.Where("id = ? AND user_id = ?", sensorID, userID).First(&sensor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Sensor not found")
		}
		return err
	}
	return nil
}

func asAppError(err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	return apperr.Internal(err)
}

// validateReading is the pure per-item validator: the value must coerce to a
// finite float and the unit must be a member of the closed enumeration. It
// never touches storage.
func validateReading(value interface{}, unit string) (float64, *apperr.Error) {
	if value == nil {
		return 0, apperr.Validation(apperr.CodeMissingValue, "Reading is missing a value")
	}

	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, apperr.Validation(apperr.CodeInvalidValue,
				fmt.Sprintf("Reading value %q is not numeric", v))
		}
		f = parsed
	default:
		return 0, apperr.Validation(apperr.CodeInvalidValue,
			fmt.Sprintf("Reading value %v is not numeric", v))
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, apperr.Validation(apperr.CodeInvalidValue, "Reading value must be finite")
	}

	if !units.Valid(unit) {
		return 0, apperr.Validation(apperr.CodeInvalidUnit,
			fmt.Sprintf("Unit %q is not recognized. Accepted units: %s", unit, units.List()))
	}

	return f, nil
}

func mapReadingToResponse(d *models.SensorData) dto.ReadingResponse {
	return dto.ReadingResponse{
		ID:        d.ID,
		SensorID:  d.SensorID,
		Value:     d.Value,
		Unit:      d.Unit,
		CreatedAt: d.CreatedAt.Format(time.RFC3339),
	}
}
