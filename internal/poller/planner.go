// internal/poller/planner.go
package poller

import (
	"sort"

	"github.com/tamzrod/deye-bridge/internal/regmap"
)

// maxRangeWords caps how wide a merged read may grow. A single spec wider
// than the cap still becomes one range: the cap gates merging, it never
// truncates a spec's own extent.
const maxRangeWords = 120

// maxRangeGap is the widest hole, in words, bridged between two specs in the
// same range.
const maxRangeGap = 2

// planRanges groups specs sharing one function into batched reads. Greedy
// single pass over the address-sorted list; deterministic, not globally
// optimal. The sort is stable so specs with equal addresses keep their
// input order.
func planRanges(specs []regmap.Spec) []Range {
	if len(specs) == 0 {
		return nil
	}

	sorted := make([]regmap.Spec, len(specs))
	copy(sorted, specs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Address < sorted[j].Address
	})

	var out []Range
	i := 0
	for i < len(sorted) {
		start := int(sorted[i].Address)
		end := sorted[i].End()
		members := []regmap.Spec{sorted[i]}
		i++

		for i < len(sorted) {
			next := sorted[i]
			if int(next.Address) > end+maxRangeGap {
				break
			}
			if next.End()-start+1 > maxRangeWords {
				break
			}
			if next.End() > end {
				end = next.End()
			}
			members = append(members, next)
			i++
		}

		out = append(out, Range{
			Start:    uint16(start),
			Quantity: uint16(end - start + 1),
			Members:  members,
		})
	}
	return out
}
