// internal/publish/mqtt.go

// Package publish delivers committed snapshots to downstream consumers.
// Delivery only: no state, no interpretation.
package publish

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/tamzrod/deye-bridge/internal/cache"
)

// MQTT pushes each measurement of a snapshot to <topic>/<measurement> as
// one JSON object.
type MQTT struct {
	client  mqtt.Client
	topic   string
	timeout time.Duration
}

type Config struct {
	Broker   string
	Topic    string
	ClientID string
	Timeout  time.Duration
}

// NewMQTT creates a connected publisher.
func NewMQTT(cfg Config) (*MQTT, error) {
	if cfg.Broker == "" {
		return nil, errors.New("publish: broker required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.ClientID == "" {
		cfg.ClientID = "deye-bridge"
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetConnectTimeout(cfg.Timeout).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	tok := client.Connect()
	if !tok.WaitTimeout(cfg.Timeout) {
		return nil, errors.New("publish: connect timed out")
	}
	if err := tok.Error(); err != nil {
		return nil, err
	}

	return &MQTT{
		client:  client,
		topic:   strings.TrimSuffix(cfg.Topic, "/"),
		timeout: cfg.Timeout,
	}, nil
}

// Publish sends every measurement. Failures are aggregated so one bad
// delivery does not hide the others.
func (m *MQTT) Publish(snap cache.Snapshot) error {
	var errs []string
	for meas, fields := range snap {
		payload, err := json.Marshal(fields)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", meas, err))
			continue
		}
		tok := m.client.Publish(m.topic+"/"+meas, 0, false, payload)
		if !tok.WaitTimeout(m.timeout) {
			errs = append(errs, fmt.Sprintf("%s: publish timed out", meas))
			continue
		}
		if err := tok.Error(); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", meas, err))
		}
	}
	if len(errs) > 0 {
		return errors.New("publish: " + strings.Join(errs, " | "))
	}
	return nil
}

// Close disconnects from the broker.
func (m *MQTT) Close() {
	m.client.Disconnect(250)
}
