// internal/poller/decode.go
package poller

import (
	"math"

	"github.com/tamzrod/deye-bridge/internal/regmap"
)

// combine folds raw 16-bit words into a single integer according to dtype
// and word order. Two-word values honor CDAB word swapping; anything longer
// degrades to a plain big-endian fold with no sign handling.
func combine(words []uint16, dtype regmap.DType, order regmap.ByteOrder) int64 {
	switch len(words) {
	case 1:
		v := int64(words[0]) & 0xFFFF
		if dtype == regmap.Int16 && v&0x8000 != 0 {
			v -= 0x10000
		}
		return v

	case 2:
		var hi, lo int64
		if order == regmap.OrderCDAB {
			hi, lo = int64(words[1]), int64(words[0])
		} else {
			hi, lo = int64(words[0]), int64(words[1])
		}
		v := hi<<16 | lo
		if dtype == regmap.Int32 && v&0x80000000 != 0 {
			v -= 0x100000000
		}
		return v

	default:
		var acc int64
		for _, w := range words {
			acc = acc<<16 | int64(w)
		}
		return acc
	}
}

// scale applies multiply then offset, in float64.
func scale(raw int64, multiply, offset float64) float64 {
	return float64(raw)*multiply + offset
}

// roundTo rounds half away from zero at the given number of decimals.
func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
