package reward

import "testing"

func TestTiersEarnedNothingBelowFirstThreshold(t *testing.T) {
	for count := 0; count < 3; count++ {
		if earned := TiersEarned(count, map[int]bool{}); len(earned) != 0 {
			t.Fatalf("count=%d: expected no tiers, got %d", count, len(earned))
		}
	}
}

func TestTiersEarnedFirstTierAtThree(t *testing.T) {
	earned := TiersEarned(3, map[int]bool{})
	if len(earned) != 1 {
		t.Fatalf("expected exactly 1 tier, got %d", len(earned))
	}
	if earned[0].Number != 1 || earned[0].Brand != "Swiggy" {
		t.Fatalf("expected tier 1 Swiggy, got tier %d %s", earned[0].Number, earned[0].Brand)
	}
}

func TestTiersEarnedSkipsAlreadyAwarded(t *testing.T) {
	earned := TiersEarned(10, map[int]bool{1: true, 2: true})
	if len(earned) != 1 {
		t.Fatalf("expected exactly 1 new tier, got %d", len(earned))
	}
	if earned[0].Number != 3 {
		t.Fatalf("expected tier 3, got %d", earned[0].Number)
	}
}

func TestTiersEarnedCatchesUpMultipleTiers(t *testing.T) {
	// A citizen jumping straight to 10 completed earns tiers 1-3 at once
	earned := TiersEarned(10, map[int]bool{})
	if len(earned) != 3 {
		t.Fatalf("expected 3 tiers, got %d", len(earned))
	}
	for i, want := range []int{1, 2, 3} {
		if earned[i].Number != want {
			t.Fatalf("position %d: expected tier %d, got %d", i, want, earned[i].Number)
		}
	}
}

func TestNextTierIsOrdinalNotThresholdBased(t *testing.T) {
	// Tier 2 awarded but tier 1 not: next is still tier 1, because the
	// scan walks the catalog in order rather than comparing thresholds.
	next := NextTier(map[int]bool{2: true})
	if next == nil {
		t.Fatal("expected a next tier")
	}
	if next.Number != 1 {
		t.Fatalf("expected tier 1, got %d", next.Number)
	}
}

func TestNextTierAfterFirstAward(t *testing.T) {
	next := NextTier(map[int]bool{1: true})
	if next == nil {
		t.Fatal("expected a next tier")
	}
	if next.Number != 2 || next.Brand != "Zomato" {
		t.Fatalf("expected tier 2 Zomato, got tier %d %s", next.Number, next.Brand)
	}
}

func TestNextTierExhaustedLadder(t *testing.T) {
	awarded := map[int]bool{}
	for _, tier := range Catalog() {
		awarded[tier.Number] = true
	}
	if next := NextTier(awarded); next != nil {
		t.Fatalf("expected nil, got tier %d", next.Number)
	}
}

func TestCatalogOrderedByThreshold(t *testing.T) {
	tiers := Catalog()
	if len(tiers) != 7 {
		t.Fatalf("expected 7 tiers, got %d", len(tiers))
	}
	for i := 1; i < len(tiers); i++ {
		if tiers[i].Threshold <= tiers[i-1].Threshold {
			t.Fatalf("catalog not ascending at position %d", i)
		}
		if tiers[i].Number != tiers[i-1].Number+1 {
			t.Fatalf("tier numbers not sequential at position %d", i)
		}
	}
}
