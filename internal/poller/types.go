// internal/poller/types.go
package poller

import "github.com/tamzrod/deye-bridge/internal/regmap"

// Client abstracts the Modbus operations the poller needs.
// The poller depends on geometry only.
type Client interface {
	ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) // FC 3
	ReadInputRegisters(addr, qty uint16) ([]uint16, error)   // FC 4
	Close() error
}

// Range is one planned batched read covering every member spec completely.
type Range struct {
	Start    uint16
	Quantity uint16
	Members  []regmap.Spec
}
