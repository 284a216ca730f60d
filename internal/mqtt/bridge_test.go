package mqtt

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/denizozkan/sensorhub/internal/dto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, secret string, userID uuid.UUID, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func envelopePayload(t *testing.T, token string, readings []dto.RawReading) []byte {
	t.Helper()
	payload, err := json.Marshal(Envelope{Token: token, Readings: readings})
	require.NoError(t, err)
	return payload
}

func TestParseEnvelope_Valid(t *testing.T) {
	userID := uuid.New()
	sensorID := uuid.New()
	payload := envelopePayload(t, signedToken(t, testSecret, userID, time.Hour), []dto.RawReading{
		{SensorID: sensorID, Value: 21.5, Unit: "°C"},
	})

	parsedUser, batch, err := ParseEnvelope(payload, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID, parsedUser)
	require.Len(t, batch, 1)
	assert.Equal(t, sensorID, batch[0].SensorID)
	assert.Equal(t, 21.5, batch[0].Value)
	assert.Equal(t, "°C", batch[0].Unit)
}

func TestParseEnvelope_Rejections(t *testing.T) {
	userID := uuid.New()
	reading := dto.RawReading{SensorID: uuid.New(), Value: 1.0, Unit: "V"}

	cases := []struct {
		name    string
		payload []byte
	}{
		{"garbage json", []byte("not json at all")},
		{"missing token", envelopePayload(t, "", []dto.RawReading{reading})},
		{"empty batch", envelopePayload(t, signedToken(t, testSecret, userID, time.Hour), nil)},
		{"wrong secret", envelopePayload(t, signedToken(t, "other-secret", userID, time.Hour), []dto.RawReading{reading})},
		{"expired token", envelopePayload(t, signedToken(t, testSecret, userID, -time.Hour), []dto.RawReading{reading})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParseEnvelope(tc.payload, testSecret)
			assert.Error(t, err)
		})
	}
}

func TestParseEnvelope_BadSubClaim(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "not-a-uuid",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	payload := envelopePayload(t, signed, []dto.RawReading{
		{SensorID: uuid.New(), Value: 1.0, Unit: "V"},
	})
	_, _, err = ParseEnvelope(payload, testSecret)
	assert.Error(t, err)
}
