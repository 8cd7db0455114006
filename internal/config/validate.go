// internal/config/validate.go
package config

import "fmt"

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg Config) error {
	if cfg.LoggerIP == "" {
		return fmt.Errorf("config: LOGGER_IP must not be empty")
	}
	if cfg.LoggerPort < 1 || cfg.LoggerPort > 65535 {
		return fmt.Errorf("config: LOGGER_PORT %d out of range", cfg.LoggerPort)
	}
	if cfg.ListenPort < 1 || cfg.ListenPort > 65535 {
		return fmt.Errorf("config: LISTEN_PORT %d out of range", cfg.ListenPort)
	}
	if cfg.PollInterval <= 0 {
		return fmt.Errorf("config: POLL_INTERVAL_S must be > 0")
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("config: REQUEST_TIMEOUT must be > 0")
	}
	if cfg.RoundDecimals < 0 {
		return fmt.Errorf("config: ROUND_DECIMALS must be >= 0")
	}
	if cfg.BreakerFailLimit < 1 {
		return fmt.Errorf("config: CB_FAIL_LIMIT must be >= 1")
	}
	if cfg.BreakerOpenFor <= 0 {
		return fmt.Errorf("config: CB_OPEN_SECONDS must be > 0")
	}
	if cfg.RegTable == "" {
		return fmt.Errorf("config: REG_TABLE must not be empty")
	}
	return nil
}
