package services

import (
	"strings"
	"testing"
	"time"

	"github.com/denizozkan/sensorhub/internal/apperr"
	"github.com/denizozkan/sensorhub/internal/config"
	"github.com/denizozkan/sensorhub/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique in-memory DB per test to avoid cross-test contamination.
	dsn := "file:svc_" + strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()) + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Device{},
		&models.Sensor{},
		&models.SensorData{},
		&models.Alert{},
		&models.SystemLog{},
	))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:   "test-secret",
		TokenExpiry: time.Hour,
	}
}

func createTestUser(t *testing.T, db *gorm.DB, username, email string) *models.User {
	t.Helper()
	user := &models.User{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
		Password: "$2a$10$not.a.real.hash.but.never.compared",
		Role:     models.RoleEngineer,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createTestChain sets up user -> device -> sensor and returns all three.
func createTestChain(t *testing.T, db *gorm.DB, username string) (*models.User, *models.Device, *models.Sensor) {
	t.Helper()
	user := createTestUser(t, db, username, username+"@example.com")
	device := &models.Device{
		ID:       uuid.New(),
		UserID:   user.ID,
		Type:     "weather-station",
		IsActive: true,
	}
	require.NoError(t, db.Create(device).Error)
	sensor := &models.Sensor{
		ID:       uuid.New(),
		UserID:   user.ID,
		DeviceID: device.ID,
		Type:     "temperature",
		IsActive: true,
	}
	require.NoError(t, db.Create(sensor).Error)
	return user, device, sensor
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, code, ae.Code)
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func countRowsWhere(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}
