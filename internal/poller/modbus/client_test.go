// internal/poller/modbus/client_test.go
package modbus

import (
	"testing"
	"time"

	"github.com/tbrandon/mbserver"
)

func TestClient_ReadsAgainstRealServer(t *testing.T) {
	srv := mbserver.NewServer()
	if err := srv.ListenTCP("127.0.0.1:15502"); err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer srv.Close()

	srv.HoldingRegisters[10] = 1234
	srv.InputRegisters[20] = 0x0001
	srv.InputRegisters[21] = 0xFFFF

	c, err := New(Config{
		Address: "127.0.0.1:15502",
		SlaveID: 1,
		Timeout: 2 * time.Second,
	})
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}
	defer c.Close()

	regs, err := c.ReadHoldingRegisters(10, 1)
	if err != nil {
		t.Fatalf("ReadHoldingRegisters err=%v", err)
	}
	if len(regs) != 1 || regs[0] != 1234 {
		t.Fatalf("holding read = %v, want [1234]", regs)
	}

	regs, err = c.ReadInputRegisters(20, 2)
	if err != nil {
		t.Fatalf("ReadInputRegisters err=%v", err)
	}
	if len(regs) != 2 || regs[0] != 0x0001 || regs[1] != 0xFFFF {
		t.Fatalf("input read = %v, want [1 65535]", regs)
	}
}

func TestNew_RequiresAddress(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for empty address")
	}
}

func TestUnpackRegisters_LengthMismatch(t *testing.T) {
	if _, err := unpackRegisters([]byte{0x00}, 1); err == nil {
		t.Fatal("expected error for odd payload")
	}
	if _, err := unpackRegisters([]byte{0x04, 0xD2}, 2); err == nil {
		t.Fatal("expected error for short payload")
	}
}

func TestUnpackRegisters_BigEndian(t *testing.T) {
	regs, err := unpackRegisters([]byte{0x04, 0xD2, 0xFF, 0xFF}, 2)
	if err != nil {
		t.Fatalf("unpack err=%v", err)
	}
	if regs[0] != 1234 || regs[1] != 0xFFFF {
		t.Fatalf("unpack = %v, want [1234 65535]", regs)
	}
}
