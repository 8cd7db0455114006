// internal/regmap/regmap.go

// Package regmap loads the declarative register map: what to read from the
// device and how to interpret it.
package regmap

// Function selects the device register bank.
type Function string

const (
	FunctionHolding Function = "holding"
	FunctionInput   Function = "input"
)

// DType is the numeric interpretation of a register value.
type DType string

const (
	Uint16 DType = "uint16"
	Int16  DType = "int16"
	Uint32 DType = "uint32"
	Int32  DType = "int32"
)

// ByteOrder is the word ordering for multi-word values. Only the AB/ABCD vs
// CDAB distinction matters for one and two word values; anything else
// degrades to a big-endian fold.
type ByteOrder string

const (
	OrderAB   ByteOrder = "AB"
	OrderABCD ByteOrder = "ABCD"
	OrderCDAB ByteOrder = "CDAB"
	OrderDCBA ByteOrder = "DCBA"
)

// Spec describes one named register and how to turn its raw words into a
// scaled value. Immutable once loaded.
type Spec struct {
	ID          string
	Address     uint16
	Count       int
	Function    Function
	DType       DType
	ByteOrder   ByteOrder
	Multiply    float64
	Offset      float64
	Measurement string
	Field       string
	Tags        map[string]string
}

// End returns the last register address the spec occupies.
func (s Spec) End() int { return int(s.Address) + s.Count - 1 }
