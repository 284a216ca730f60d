package services

import (
	"testing"
	"time"

	"github.com/denizozkan/sensorhub/internal/apperr"
	"github.com/denizozkan/sensorhub/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestAlert(t *testing.T, db *gorm.DB, sensorID uuid.UUID, severity string) *models.Alert {
	t.Helper()
	alert := &models.Alert{
		ID:       uuid.New(),
		SensorID: sensorID,
		Severity: severity,
		Message:  "test alert",
	}
	require.NoError(t, db.Create(alert).Error)
	return alert
}

func TestAlertCreate_RejectsUnknownSeverity(t *testing.T) {
	db := openTestDB(t)
	svc := NewAlertService(db)
	_, _, sensor := createTestChain(t, db, "alice")

	_, err := svc.Create(sensor.ID, nil, "catastrophic", "boom")
	assertCode(t, err, apperr.CodeValidationError)
	assert.EqualValues(t, 0, countRows(t, db, &models.Alert{}))
}

func TestAlertList_ScopedAndFiltered(t *testing.T) {
	db := openTestDB(t)
	svc := NewAlertService(db)
	alice, _, aliceSensor := createTestChain(t, db, "alice")
	_, _, bobSensor := createTestChain(t, db, "bob")

	createTestAlert(t, db, aliceSensor.ID, models.SeverityInfo)
	createTestAlert(t, db, aliceSensor.ID, models.SeverityCritical)
	createTestAlert(t, db, bobSensor.ID, models.SeverityCritical)

	all, err := svc.List(alice.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	critical, err := svc.List(alice.ID, models.SeverityCritical)
	require.NoError(t, err)
	require.Len(t, critical, 1)
	assert.Equal(t, aliceSensor.ID, critical[0].SensorID)

	_, err = svc.List(alice.ID, "bogus")
	assertCode(t, err, apperr.CodeValidationError)
}

func TestAlertList_NewestFirst(t *testing.T) {
	db := openTestDB(t)
	svc := NewAlertService(db)
	alice, _, sensor := createTestChain(t, db, "alice")

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, offset := range []time.Duration{0, 2 * time.Hour, time.Hour} {
		alert := models.Alert{
			ID: uuid.New(), SensorID: sensor.ID,
			Severity: models.SeverityInfo,
			Message:  string(rune('a' + i)),
		}
		alert.CreatedAt = base.Add(offset)
		require.NoError(t, db.Create(&alert).Error)
	}

	alerts, err := svc.List(alice.ID, "")
	require.NoError(t, err)
	require.Len(t, alerts, 3)
	assert.Equal(t, "b", alerts[0].Message)
	assert.Equal(t, "c", alerts[1].Message)
	assert.Equal(t, "a", alerts[2].Message)
}

func TestAlertListAll_CrossesUsers(t *testing.T) {
	db := openTestDB(t)
	svc := NewAlertService(db)
	_, _, aliceSensor := createTestChain(t, db, "alice")
	_, _, bobSensor := createTestChain(t, db, "bob")

	createTestAlert(t, db, aliceSensor.ID, models.SeverityWarning)
	createTestAlert(t, db, bobSensor.ID, models.SeverityWarning)

	alerts, err := svc.ListAll("")
	require.NoError(t, err)
	assert.Len(t, alerts, 2)
}

func TestAlertGet_UnownedIsNotFound(t *testing.T) {
	db := openTestDB(t)
	svc := NewAlertService(db)
	alice := createTestUser(t, db, "alice", "a@example.com")
	_, _, bobSensor := createTestChain(t, db, "bob")
	alert := createTestAlert(t, db, bobSensor.ID, models.SeverityInfo)

	_, err := svc.Get(alice.ID, alert.ID)
	assertCode(t, err, apperr.CodeNotFound)
}

func TestAcknowledge_Owner(t *testing.T) {
	db := openTestDB(t)
	svc := NewAlertService(db)
	alice, _, sensor := createTestChain(t, db, "alice")
	alert := createTestAlert(t, db, sensor.ID, models.SeverityWarning)

	acked, err := svc.Acknowledge(alice.ID, false, alert.ID)
	require.NoError(t, err)
	assert.True(t, acked.Ack)
	require.NotNil(t, acked.AckBy)
	assert.Equal(t, alice.ID, *acked.AckBy)
}

func TestAcknowledge_Idempotent(t *testing.T) {
	db := openTestDB(t)
	svc := NewAlertService(db)
	alice, _, sensor := createTestChain(t, db, "alice")
	admin := createTestUser(t, db, "root", "root@example.com")
	alert := createTestAlert(t, db, sensor.ID, models.SeverityWarning)

	first, err := svc.Acknowledge(alice.ID, false, alert.ID)
	require.NoError(t, err)
	require.NotNil(t, first.AckBy)

	// A second ack, even by someone else, leaves the original ack_by alone.
	second, err := svc.Acknowledge(admin.ID, true, alert.ID)
	require.NoError(t, err)
	assert.True(t, second.Ack)
	require.NotNil(t, second.AckBy)
	assert.Equal(t, alice.ID, *second.AckBy)

	var stored models.Alert
	require.NoError(t, db.First(&stored, "id = ?", alert.ID).Error)
	require.NotNil(t, stored.AckBy)
	assert.Equal(t, alice.ID, *stored.AckBy)
}

func TestAcknowledge_NonOwnerIsNotFound(t *testing.T) {
	db := openTestDB(t)
	svc := NewAlertService(db)
	_, _, bobSensor := createTestChain(t, db, "bob")
	mallory := createTestUser(t, db, "mallory", "m@example.com")
	alert := createTestAlert(t, db, bobSensor.ID, models.SeverityCritical)

	_, err := svc.Acknowledge(mallory.ID, false, alert.ID)
	assertCode(t, err, apperr.CodeNotFound)

	var stored models.Alert
	require.NoError(t, db.First(&stored, "id = ?", alert.ID).Error)
	assert.False(t, stored.Ack)
}

func TestAcknowledge_AdminOverridesOwnership(t *testing.T) {
	db := openTestDB(t)
	svc := NewAlertService(db)
	_, _, bobSensor := createTestChain(t, db, "bob")
	admin := createTestUser(t, db, "root", "root@example.com")
	alert := createTestAlert(t, db, bobSensor.ID, models.SeverityCritical)

	acked, err := svc.Acknowledge(admin.ID, true, alert.ID)
	require.NoError(t, err)
	assert.True(t, acked.Ack)
	require.NotNil(t, acked.AckBy)
	assert.Equal(t, admin.ID, *acked.AckBy)
}

func TestAcknowledge_MissingAlert(t *testing.T) {
	db := openTestDB(t)
	svc := NewAlertService(db)
	alice := createTestUser(t, db, "alice", "a@example.com")

	_, err := svc.Acknowledge(alice.ID, false, uuid.New())
	assertCode(t, err, apperr.CodeNotFound)
}
