package risk

import (
	"testing"

	"github.com/jsvoboda/riskledger/pkg/common"
	"github.com/jsvoboda/riskledger/pkg/utility/fixed"
)

func TestCompute_Buy(t *testing.T) {
	sl, tp, note := Compute(
		fixed.FromFloat64(100.0), fixed.FromFloat64(2.0),
		fixed.FromFloat64(1.5), fixed.FromFloat64(3.0),
		common.SideBuy)

	if note != "" {
		t.Errorf("Expected no note, got %q", note)
	}
	if !sl.Eq(fixed.FromFloat64(97.0)) {
		t.Errorf("Expected sl 97, got %s", sl.String())
	}
	if !tp.Eq(fixed.FromFloat64(106.0)) {
		t.Errorf("Expected tp 106, got %s", tp.String())
	}
}

func TestCompute_Sell(t *testing.T) {
	sl, tp, note := Compute(
		fixed.FromFloat64(100.0), fixed.FromFloat64(2.0),
		fixed.FromFloat64(1.5), fixed.FromFloat64(3.0),
		common.SideSell)

	if note != "" {
		t.Errorf("Expected no note, got %q", note)
	}
	if !sl.Eq(fixed.FromFloat64(103.0)) {
		t.Errorf("Expected sl 103, got %s", sl.String())
	}
	if !tp.Eq(fixed.FromFloat64(94.0)) {
		t.Errorf("Expected tp 94, got %s", tp.String())
	}
}

func TestCompute_MissingAtr(t *testing.T) {
	sl, tp, note := Compute(
		fixed.FromFloat64(100.0), fixed.Absent,
		fixed.FromFloat64(1.5), fixed.FromFloat64(3.0),
		common.SideBuy)

	if sl.IsSet() || tp.IsSet() {
		t.Error("Expected absent prices")
	}
	if note != common.NoteInsufficientAtr {
		t.Errorf("Expected note %q, got %q", common.NoteInsufficientAtr, note)
	}
}

func TestCompute_InvalidInputs(t *testing.T) {
	tests := []struct {
		name  string
		entry fixed.Point
		atr   fixed.Point
	}{
		{"missing entry", fixed.Absent, fixed.FromFloat64(2.0)},
		{"zero atr", fixed.FromFloat64(100.0), fixed.Zero},
		{"negative atr", fixed.FromFloat64(100.0), fixed.FromFloat64(-1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sl, tp, note := Compute(tt.entry, tt.atr,
				fixed.FromFloat64(1.5), fixed.FromFloat64(3.0), common.SideBuy)

			if sl.IsSet() || tp.IsSet() {
				t.Error("Expected absent prices")
			}
			if note != common.NoteInvalidEntryOrAtr {
				t.Errorf("Expected note %q, got %q", common.NoteInvalidEntryOrAtr, note)
			}
		})
	}
}
