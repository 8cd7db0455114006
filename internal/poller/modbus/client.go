// internal/poller/modbus/client.go

// Package modbus adapts goburrow/modbus TCP to the poller's Client
// interface. Geometry only: batched reads in, words out.
package modbus

import (
	"errors"
	"fmt"
	"time"

	"github.com/goburrow/modbus"
)

// Client is one TCP connection to the device gateway.
type Client struct {
	handler *modbus.TCPClientHandler
	client  modbus.Client
}

// Config is minimal transport config.
type Config struct {
	Address     string
	SlaveID     uint8
	Timeout     time.Duration // per-request deadline
	IdleTimeout time.Duration // connection idle close
}

// New creates a connected client. One attempt, no retries.
func New(cfg Config) (*Client, error) {
	if cfg.Address == "" {
		return nil, errors.New("modbus client: address required")
	}

	h := modbus.NewTCPClientHandler(cfg.Address)
	h.SlaveId = cfg.SlaveID
	h.Timeout = cfg.Timeout
	if cfg.IdleTimeout > 0 {
		h.IdleTimeout = cfg.IdleTimeout
	}

	if err := h.Connect(); err != nil {
		return nil, err
	}

	return &Client{handler: h, client: modbus.NewClient(h)}, nil
}

// Close closes the TCP connection.
func (c *Client) Close() error {
	if c == nil || c.handler == nil {
		return nil
	}
	return c.handler.Close()
}

func (c *Client) ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) {
	p, err := c.client.ReadHoldingRegisters(addr, qty)
	if err != nil {
		return nil, err
	}
	return unpackRegisters(p, qty)
}

func (c *Client) ReadInputRegisters(addr, qty uint16) ([]uint16, error) {
	p, err := c.client.ReadInputRegisters(addr, qty)
	if err != nil {
		return nil, err
	}
	return unpackRegisters(p, qty)
}

// unpackRegisters converts the big-endian payload into words and checks the
// response length against the request.
func unpackRegisters(data []byte, qty uint16) ([]uint16, error) {
	if len(data) != int(qty)*2 {
		return nil, fmt.Errorf("modbus: response length %d does not match %d registers", len(data), qty)
	}
	out := make([]uint16, qty)
	for i := range out {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out, nil
}
