// internal/poller/planner_test.go
package poller

import (
	"testing"

	"github.com/tamzrod/deye-bridge/internal/regmap"
)

func spec(id string, addr uint16, count int) regmap.Spec {
	return regmap.Spec{
		ID:       id,
		Address:  addr,
		Count:    count,
		Function: regmap.FunctionHolding,
		DType:    regmap.Uint16,
	}
}

func TestPlanRanges_Empty(t *testing.T) {
	if got := planRanges(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestPlanRanges_MergesSmallGaps(t *testing.T) {
	// gap of 2 between end of first (10) and start of next (12) merges
	plans := planRanges([]regmap.Spec{
		spec("a", 10, 1),
		spec("b", 12, 2),
	})

	if len(plans) != 1 {
		t.Fatalf("expected 1 plan, got %d", len(plans))
	}
	if plans[0].Start != 10 || plans[0].Quantity != 4 {
		t.Fatalf("expected start=10 qty=4, got start=%d qty=%d", plans[0].Start, plans[0].Quantity)
	}
	if len(plans[0].Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(plans[0].Members))
	}
}

func TestPlanRanges_SplitsWideGaps(t *testing.T) {
	// gap of 3 (end=10, next=13) must not merge
	plans := planRanges([]regmap.Spec{
		spec("a", 10, 1),
		spec("b", 13, 1),
	})

	if len(plans) != 2 {
		t.Fatalf("expected 2 plans, got %d", len(plans))
	}
}

func TestPlanRanges_HonorsCeiling(t *testing.T) {
	// merging would need 121 words; must split even though contiguous
	plans := planRanges([]regmap.Spec{
		spec("a", 0, 60),
		spec("b", 60, 61),
	})

	if len(plans) != 2 {
		t.Fatalf("expected 2 plans, got %d", len(plans))
	}
	for _, p := range plans {
		if p.Quantity > maxRangeWords {
			t.Fatalf("plan quantity %d exceeds ceiling", p.Quantity)
		}
	}
}

func TestPlanRanges_OversizedSpecPassesThrough(t *testing.T) {
	// a single spec wider than the ceiling is still one plan
	plans := planRanges([]regmap.Spec{spec("big", 0, 150)})

	if len(plans) != 1 {
		t.Fatalf("expected 1 plan, got %d", len(plans))
	}
	if plans[0].Quantity != 150 {
		t.Fatalf("expected qty=150, got %d", plans[0].Quantity)
	}
}

func TestPlanRanges_SortsAndCovers(t *testing.T) {
	specs := []regmap.Spec{
		spec("c", 30, 2),
		spec("a", 10, 1),
		spec("b", 11, 2),
	}
	plans := planRanges(specs)

	if len(plans) != 2 {
		t.Fatalf("expected 2 plans, got %d", len(plans))
	}

	// every address of every spec must be covered by exactly one plan
	covered := map[uint16]int{}
	for _, p := range plans {
		for a := p.Start; a < p.Start+p.Quantity; a++ {
			covered[a]++
		}
	}
	for _, s := range specs {
		for i := 0; i < s.Count; i++ {
			a := s.Address + uint16(i)
			if covered[a] != 1 {
				t.Fatalf("address %d covered %d times", a, covered[a])
			}
		}
	}
}
