package reports

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalizeItemName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "Egg Coffee (Hot)", want: "Egg Coffee"},
		{raw: "Egg Coffee (Cold)", want: "Egg Coffee"},
		{raw: "Egg Coffee - Large", want: "Egg Coffee"},
		{raw: "egg coffee - SMALL", want: "egg coffee"},
		{raw: "Cold Brew - 16oz", want: "Cold Brew"},
		{raw: "Latte - Iced (Seasonal)", want: "Latte"},
		{raw: "Banh Mi", want: "Banh Mi"},
		{raw: "  Pho  ", want: "Pho"},
		// A name that is nothing but a qualifier stays intact.
		{raw: "(Hot)", want: "(Hot)"},
		// Hyphenated product names survive; only known qualifiers strip.
		{raw: "Ca Phe Sua Da - House Blend", want: "Ca Phe Sua Da - House Blend"},
	}
	for _, tt := range tests {
		if got := NormalizeItemName(tt.raw); got != tt.want {
			t.Errorf("NormalizeItemName(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestItemAccumulatorMergesVariations(t *testing.T) {
	acc := newItemAccumulator()
	acc.add("Egg Coffee (Hot)", "2", 1000)
	acc.add("Egg Coffee (Cold)", "1", 600)
	acc.add("Egg Coffee - Large", "1", 700)
	acc.add("Banh Mi", "1", 850)

	rows := acc.totals()
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2 after merging", len(rows))
	}
	if rows[0].ItemName != "Egg Coffee" {
		t.Errorf("top row = %q, want Egg Coffee first by revenue", rows[0].ItemName)
	}
	if !rows[0].Quantity.Equal(decimal.NewFromInt(4)) {
		t.Errorf("merged quantity = %s, want 4", rows[0].Quantity)
	}
	if !rows[0].Total.Equal(decimal.RequireFromString("23.00")) {
		t.Errorf("merged total = %s, want 23.00", rows[0].Total)
	}
	if rows[0].TotalFormatted != "$23.00" {
		t.Errorf("formatted = %q, want $23.00", rows[0].TotalFormatted)
	}
}

func TestItemAccumulatorQuantityHandling(t *testing.T) {
	acc := newItemAccumulator()
	acc.add("Croissant", "", 400) // missing quantity means one unit
	acc.add("Croissant", "2.5", 1000)
	acc.add("Croissant", "many", 100) // garbage contributes zero quantity

	rows := acc.totals()
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if !rows[0].Quantity.Equal(decimal.RequireFromString("3.5")) {
		t.Errorf("quantity = %s, want 3.5", rows[0].Quantity)
	}
	if !rows[0].Total.Equal(decimal.NewFromInt(15)) {
		t.Errorf("total = %s, want 15", rows[0].Total)
	}
}

func TestItemAccumulatorSkipsUnnameableLines(t *testing.T) {
	acc := newItemAccumulator()
	acc.add("", "1", 500)
	acc.add("   ", "1", 500)

	if rows := acc.totals(); len(rows) != 0 {
		t.Errorf("rows = %+v, want none for blank names", rows)
	}
}
