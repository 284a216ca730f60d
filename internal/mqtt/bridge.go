// Package mqtt bridges broker-published reading batches into the ingestion
// pipeline. Messages carry the same bearer token the HTTP layer issues; an
// unverifiable token drops the message.
package mqtt

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/denizozkan/sensorhub/internal/config"
	"github.com/denizozkan/sensorhub/internal/dto"
	"github.com/denizozkan/sensorhub/internal/services"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Envelope is the message shape devices publish.
type Envelope struct {
	Token    string           `json:"token"`
	Readings []dto.RawReading `json:"readings"`
}

type Bridge struct {
	cli       mqtt.Client
	cfg       *config.Config
	telemetry *services.TelemetryService
}

func NewBridge(cfg *config.Config, telemetry *services.TelemetryService) *Bridge {
	return &Bridge{cfg: cfg, telemetry: telemetry}
}

// Start connects to the broker and subscribes to the readings topic. Paho
// handles reconnects; subscriptions are restored on each connect.
func (b *Bridge) Start() error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(b.cfg.MQTTBrokerURL)
	opts.SetClientID(b.cfg.MQTTClientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(5 * time.Second)
	opts.OnConnect = func(c mqtt.Client) {
		slog.Info("mqtt connected", "broker", b.cfg.MQTTBrokerURL)
		t := c.Subscribe(b.cfg.MQTTTopic, 1, b.handleMessage)
		if t.Wait() && t.Error() != nil {
			slog.Error("mqtt subscribe failed", "topic", b.cfg.MQTTTopic, "error", t.Error())
		}
	}
	opts.OnConnectionLost = func(c mqtt.Client, err error) {
		slog.Error("mqtt connection lost", "error", err)
	}

	b.cli = mqtt.NewClient(opts)
	if t := b.cli.Connect(); t.Wait() && t.Error() != nil {
		return fmt.Errorf("mqtt connect: %w", t.Error())
	}
	return nil
}

func (b *Bridge) Stop() {
	if b.cli != nil && b.cli.IsConnected() {
		b.cli.Disconnect(250)
	}
}

func (b *Bridge) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	userID, batch, err := ParseEnvelope(msg.Payload(), b.cfg.JWTSecret)
	if err != nil {
		slog.Error("mqtt message rejected", "topic", msg.Topic(), "error", err)
		return
	}

	result, err := b.telemetry.Ingest(userID, batch)
	if err != nil {
		slog.Error("mqtt batch rejected", "user_id", userID, "error", err)
		return
	}
	slog.Info("mqtt batch ingested", "user_id", userID,
		"submitted", result.Submitted, "accepted", result.AcceptedCount, "skipped", result.Skipped)
}

// ParseEnvelope decodes a published message and verifies its token, returning
// the authenticated user and the reading batch.
func ParseEnvelope(payload []byte, secret string) (uuid.UUID, []dto.RawReading, error) {
	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return uuid.Nil, nil, fmt.Errorf("invalid payload: %w", err)
	}
	if env.Token == "" {
		return uuid.Nil, nil, errors.New("missing token")
	}
	if len(env.Readings) == 0 {
		return uuid.Nil, nil, errors.New("empty batch")
	}

	token, err := jwt.Parse(env.Token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, nil, errors.New("invalid claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, nil, errors.New("missing sub claim")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("invalid sub claim: %w", err)
	}

	return userID, env.Readings, nil
}
