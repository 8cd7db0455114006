// internal/poller/builder.go
package poller

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tamzrod/deye-bridge/internal/cache"
	cfgpkg "github.com/tamzrod/deye-bridge/internal/config"
	pmodbus "github.com/tamzrod/deye-bridge/internal/poller/modbus"
	"github.com/tamzrod/deye-bridge/internal/regmap"
)

// Build constructs a Poller wired to a lazy Modbus TCP client factory.
// Connection is reused while healthy. On transport death, the poller
// discards the client and uses the factory on a future tick.
func Build(cfg cfgpkg.Config, specs []regmap.Spec, store *cache.Store, log *logrus.Logger) (*Poller, error) {
	// client factory: ONE attempt per call
	factory := func() (Client, error) {
		return pmodbus.New(pmodbus.Config{
			Address:     fmt.Sprintf("%s:%d", cfg.LoggerIP, cfg.LoggerPort),
			SlaveID:     cfg.SlaveID,
			Timeout:     cfg.RequestTimeout,
			IdleTimeout: cfg.SocketTimeout,
		})
	}

	return New(
		Config{
			Interval:      cfg.PollInterval,
			RoundDecimals: cfg.RoundDecimals,
			FailLimit:     cfg.BreakerFailLimit,
			OpenFor:       cfg.BreakerOpenFor,
		},
		specs,
		factory,
		store,
		log,
	)
}
