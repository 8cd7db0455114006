// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime knob of the bridge. All values come from the
// environment, optionally seeded from a .env file in the working directory.
type Config struct {
	// Device / gateway
	LoggerIP   string
	LoggerSN   uint64 // Solarman logger serial, informational over plain TCP
	LoggerPort int
	SlaveID    uint8

	// Timeouts and cadence
	SocketTimeout  time.Duration
	RequestTimeout time.Duration
	PollInterval   time.Duration

	// HTTP listener
	ListenHost string
	ListenPort int

	// Decoding
	RegTable      string
	RoundDecimals int

	// Circuit breaker
	BreakerFailLimit int
	BreakerOpenFor   time.Duration

	// Ambient
	LogLevel   string
	MQTTBroker string // empty disables publishing
	MQTTTopic  string
}

// FromEnv loads configuration from the environment with documented defaults.
func FromEnv() (Config, error) {
	_ = godotenv.Load() // best effort; absence of .env is normal

	var cfg Config
	var err error

	cfg.LoggerIP = envStr("LOGGER_IP", "192.168.1.50")
	cfg.ListenHost = envStr("LISTEN_HOST", "0.0.0.0")
	cfg.RegTable = envStr("REG_TABLE", "deye-modbus-registers.yaml")
	cfg.LogLevel = envStr("LOG_LEVEL", "info")
	cfg.MQTTBroker = envStr("MQTT_BROKER", "")
	cfg.MQTTTopic = envStr("MQTT_TOPIC", "deye")

	if cfg.LoggerSN, err = envUint64("LOGGER_SN", 1234567890); err != nil {
		return Config{}, err
	}
	if cfg.LoggerPort, err = envInt("LOGGER_PORT", 8899); err != nil {
		return Config{}, err
	}

	slave, err := envInt("MB_SLAVE_ID", 1)
	if err != nil {
		return Config{}, err
	}
	if slave < 0 || slave > 255 {
		return Config{}, fmt.Errorf("config: MB_SLAVE_ID %d out of range", slave)
	}
	cfg.SlaveID = uint8(slave)

	if cfg.SocketTimeout, err = envSeconds("SOCKET_TIMEOUT", 3.0); err != nil {
		return Config{}, err
	}
	if cfg.RequestTimeout, err = envSeconds("REQUEST_TIMEOUT", 3.0); err != nil {
		return Config{}, err
	}
	if cfg.PollInterval, err = envSeconds("POLL_INTERVAL_S", 2.0); err != nil {
		return Config{}, err
	}

	if cfg.ListenPort, err = envInt("LISTEN_PORT", 8080); err != nil {
		return Config{}, err
	}
	if cfg.RoundDecimals, err = envInt("ROUND_DECIMALS", 2); err != nil {
		return Config{}, err
	}
	if cfg.BreakerFailLimit, err = envInt("CB_FAIL_LIMIT", 3); err != nil {
		return Config{}, err
	}
	if cfg.BreakerOpenFor, err = envSeconds("CB_OPEN_SECONDS", 30); err != nil {
		return Config{}, err
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func envUint64(key string, def uint64) (uint64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

// envSeconds parses a fractional seconds value into a duration.
func envSeconds(key string, def float64) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(def * float64(time.Second)), nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return time.Duration(f * float64(time.Second)), nil
}
