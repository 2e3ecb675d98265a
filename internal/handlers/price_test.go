package handlers

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputePriceGoldCost(t *testing.T) {
	breakdown := computePrice(PriceInputs{
		MetalWeight:      10,
		GoldPricePerUnit: 5000,
		MetalMultiplier:  1.1,
		SizeMultiplier:   1,
	})
	if !almostEqual(breakdown.GoldCost, 55000) {
		t.Fatalf("expected gold cost 55000, got %v", breakdown.GoldCost)
	}
}

func TestComputePriceFullBreakdown(t *testing.T) {
	breakdown := computePrice(PriceInputs{
		MetalWeight:         10,
		GoldPricePerUnit:    5000,
		MetalMultiplier:     1.1,
		DiamondWeight:       2,
		DiamondPricePerUnit: 1000,
		DiamondMultiplier:   1.2,
		CaratSize:           1.5,
		SolitairePerUnit:    2000,
		SolitaireMultiplier: 1.05,
		SizeMultiplier:      1.02,
	})

	if !almostEqual(breakdown.GoldCost, 55000) {
		t.Fatalf("expected gold cost 55000, got %v", breakdown.GoldCost)
	}
	if !almostEqual(breakdown.DiamondCost, 2400) {
		t.Fatalf("expected diamond cost 2400, got %v", breakdown.DiamondCost)
	}
	if !almostEqual(breakdown.SolitaireCost, 3150) {
		t.Fatalf("expected solitaire cost 3150, got %v", breakdown.SolitaireCost)
	}
	if !almostEqual(breakdown.MakingCharges, 6055) {
		t.Fatalf("expected making charges 6055, got %v", breakdown.MakingCharges)
	}
	if !almostEqual(breakdown.GST, 2038.113) {
		t.Fatalf("expected gst 2038.113, got %v", breakdown.GST)
	}
	if !almostEqual(breakdown.TotalPrice, 69975.213) {
		t.Fatalf("expected total 69975.213, got %v", breakdown.TotalPrice)
	}
}

func TestComputePriceMakingChargeBeforeSizeMultiplier(t *testing.T) {
	// The size multiplier scales making charges too, so total must differ
	// from a formula that applies the multiplier to materials only.
	in := PriceInputs{
		MetalWeight:      1,
		GoldPricePerUnit: 1000,
		MetalMultiplier:  1,
		SizeMultiplier:   2,
	}
	breakdown := computePrice(in)

	subtotal := (1000 + 100) * 2.0
	if !almostEqual(breakdown.TotalPrice, subtotal*1.03) {
		t.Fatalf("expected total %v, got %v", subtotal*1.03, breakdown.TotalPrice)
	}
}

func TestComputePriceZeroInputs(t *testing.T) {
	breakdown := computePrice(PriceInputs{})
	if breakdown.TotalPrice != 0 {
		t.Fatalf("expected zero total for zero inputs, got %v", breakdown.TotalPrice)
	}
}
