// internal/regmap/validate.go
package regmap

import "fmt"

// Validate checks loaded specs.
// It performs declarative validation only.
// It MUST NOT mutate the specs.
func Validate(specs []Spec) error {
	for _, s := range specs {
		if s.Count < 1 {
			return fmt.Errorf("regmap: %q: count must be >= 1", s.ID)
		}

		switch s.Function {
		case FunctionHolding, FunctionInput:
		default:
			return fmt.Errorf("regmap: %q: unknown function %q", s.ID, s.Function)
		}

		switch s.DType {
		case Uint16, Int16, Uint32, Int32:
		default:
			return fmt.Errorf("regmap: %q: unknown type %q", s.ID, s.DType)
		}

		switch s.ByteOrder {
		case OrderAB, OrderABCD, OrderCDAB, OrderDCBA:
		default:
			return fmt.Errorf("regmap: %q: unknown byte_order %q", s.ID, s.ByteOrder)
		}

		if s.End() > 0xFFFF {
			return fmt.Errorf("regmap: %q: address %d + count %d spans past the register space", s.ID, s.Address, s.Count)
		}
	}
	return nil
}
