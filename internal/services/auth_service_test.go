package services

import (
	"testing"
	"time"

	"github.com/denizozkan/sensorhub/internal/apperr"
	"github.com/denizozkan/sensorhub/internal/dto"
	"github.com/denizozkan/sensorhub/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister_Success(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthService(db, testConfig())

	user, err := svc.Register(&dto.RegisterRequest{
		Email: "a@x.com", Username: "alice", Password: "Str0ng!pw",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, models.RoleEngineer, user.Role)

	var stored models.User
	require.NoError(t, db.First(&stored, "email = ?", "a@x.com").Error)
	assert.NotEqual(t, "Str0ng!pw", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("Str0ng!pw")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&dto.RegisterRequest{Email: "a@x.com", Username: "alice", Password: "Str0ng!pw"})
	require.NoError(t, err)

	_, err = svc.Register(&dto.RegisterRequest{Email: "a@x.com", Username: "other", Password: "Str0ng!pw"})
	assertCode(t, err, apperr.CodeDuplicateError)
	assert.EqualValues(t, 1, countRows(t, db, &models.User{}))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&dto.RegisterRequest{Email: "a@x.com", Username: "alice", Password: "Str0ng!pw"})
	require.NoError(t, err)

	_, err = svc.Register(&dto.RegisterRequest{Email: "b@x.com", Username: "alice", Password: "Str0ng!pw"})
	assertCode(t, err, apperr.CodeDuplicateError)
}

func TestRegister_ChecksRunInOrder(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&dto.RegisterRequest{Email: "a@x.com", Username: "alice", Password: "Str0ng!pw"})
	require.NoError(t, err)

	// Duplicate email and a weak password: the email check must win.
	_, err = svc.Register(&dto.RegisterRequest{Email: "a@x.com", Username: "bob", Password: "weak"})
	assertCode(t, err, apperr.CodeDuplicateError)

	// Malformed email beats weak password.
	_, err = svc.Register(&dto.RegisterRequest{Email: "not-an-email", Username: "bob", Password: "weak"})
	assertCode(t, err, apperr.CodeValidationError)
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "Invalid email", ae.Message)
}

func TestRegister_PasswordRules(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantMsg  string
	}{
		{"too short", "Ab1!", "Password must have at least 8 characters"},
		{"no upper", "alllower1!", "Password must have at least 1 upper case character"},
		{"no digit", "NoDigits!!", "Password must have at least 1 number"},
		{"no symbol", "NoSymbol11", "Password must have at least 1 special character"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := openTestDB(t)
			svc := NewAuthService(db, testConfig())

			_, err := svc.Register(&dto.RegisterRequest{
				Email: "a@x.com", Username: "alice", Password: tc.password,
			})
			var ae *apperr.Error
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, apperr.CodeValidationError, ae.Code)
			assert.Equal(t, tc.wantMsg, ae.Message)

			// No row may exist after a failed registration.
			assert.EqualValues(t, 0, countRows(t, db, &models.User{}))
		})
	}
}

func TestLogin(t *testing.T) {
	db := openTestDB(t)
	cfg := testConfig()
	svc := NewAuthService(db, cfg)

	_, err := svc.Register(&dto.RegisterRequest{Email: "a@x.com", Username: "alice", Password: "Str0ng!pw"})
	require.NoError(t, err)

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(&dto.LoginRequest{Email: "nobody@x.com", Password: "Str0ng!pw"})
		assertCode(t, err, apperr.CodeUnknownUser)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(&dto.LoginRequest{Email: "a@x.com", Password: "Wr0ng!pw!"})
		assertCode(t, err, apperr.CodeInvalidCredentials)
	})

	t.Run("success issues bounded token", func(t *testing.T) {
		resp, err := svc.Login(&dto.LoginRequest{Email: "a@x.com", Password: "Str0ng!pw"})
		require.NoError(t, err)
		require.NotEmpty(t, resp.AccessToken)

		token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		})
		require.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)

		var user models.User
		require.NoError(t, db.First(&user, "email = ?", "a@x.com").Error)
		assert.Equal(t, user.ID.String(), claims["sub"])
		assert.Equal(t, models.RoleEngineer, claims["role"])

		exp := time.Unix(int64(claims["exp"].(float64)), 0)
		assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)
	})
}

func TestGetUser_NotFound(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.GetUser(uuid.New())
	assertCode(t, err, apperr.CodeNotFound)
}

func TestDeleteUser_CascadesOwnershipChain(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthService(db, testConfig())

	user, _, sensor := createTestChain(t, db, "alice")
	other, _, otherSensor := createTestChain(t, db, "bob")

	reading := models.SensorData{ID: uuid.New(), SensorID: sensor.ID, Value: 21.5, Unit: "°C"}
	require.NoError(t, db.Create(&reading).Error)
	alert := models.Alert{ID: uuid.New(), SensorID: sensor.ID, Severity: models.SeverityInfo, Message: "m"}
	require.NoError(t, db.Create(&alert).Error)

	// Alice acknowledged an alert on Bob's sensor: that alert must survive
	// her deletion with the back-reference nulled.
	acked := models.Alert{
		ID: uuid.New(), SensorID: otherSensor.ID,
		Severity: models.SeverityWarning, Message: "acked",
		Ack: true, AckBy: &user.ID,
	}
	require.NoError(t, db.Create(&acked).Error)

	require.NoError(t, svc.DeleteUser(user.ID))

	assert.EqualValues(t, 0, countRowsWhere(t, db, &models.Device{}, "user_id = ?", user.ID))
	assert.EqualValues(t, 0, countRowsWhere(t, db, &models.Sensor{}, "user_id = ?", user.ID))
	assert.EqualValues(t, 0, countRowsWhere(t, db, &models.SensorData{}, "sensor_id = ?", sensor.ID))
	assert.EqualValues(t, 0, countRowsWhere(t, db, &models.Alert{}, "sensor_id = ?", sensor.ID))

	// Bob's chain is untouched; the acknowledged alert kept, ack_by nulled.
	assert.EqualValues(t, 1, countRowsWhere(t, db, &models.Sensor{}, "user_id = ?", other.ID))
	var kept models.Alert
	require.NoError(t, db.First(&kept, "id = ?", acked.ID).Error)
	assert.True(t, kept.Ack)
	assert.Nil(t, kept.AckBy)
}
