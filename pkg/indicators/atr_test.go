package indicators

import (
	"errors"
	"testing"

	"github.com/jsvoboda/riskledger/pkg/common"
	"github.com/jsvoboda/riskledger/pkg/utility/fixed"
)

func bar(high, low, closePrice float64) common.Bar {
	return common.Bar{
		High:  fixed.FromFloat64(high),
		Low:   fixed.FromFloat64(low),
		Close: fixed.FromFloat64(closePrice),
	}
}

func TestAtr_FirstBarTrueRange(t *testing.T) {
	atr := NewAtr(14)
	atr.OnBar(bar(100.0, 95.0, 98.0))

	// No previous close yet, true range degrades to high-low.
	if !atr.TrueRange().Eq(fixed.FromFloat64(5.0)) {
		t.Errorf("Expected first true range 5, got %s", atr.TrueRange().String())
	}
	if atr.Ready() {
		t.Error("Expected ATR to not be ready after first bar")
	}
	if atr.Value().IsSet() {
		t.Error("Expected ATR value to be absent after first bar")
	}
}

func TestAtr_TrueRangeUsesPrevClose(t *testing.T) {
	atr := NewAtr(14)
	atr.OnBar(bar(100.0, 95.0, 98.0))

	// Gap up: |high - prevClose| dominates high-low.
	atr.OnBar(bar(104.0, 102.0, 103.0))

	if !atr.TrueRange().Eq(fixed.FromFloat64(6.0)) {
		t.Errorf("Expected true range 6, got %s", atr.TrueRange().String())
	}
}

func TestAnnotate_Warmup(t *testing.T) {
	bars := []common.Bar{
		bar(10.0, 8.0, 9.0),   // tr 2
		bar(11.0, 9.0, 10.0),  // tr 2
		bar(14.0, 9.0, 12.0),  // tr 5, seed atr = (2+2+5)/3 = 3
		bar(15.0, 12.0, 13.0), // tr 3, atr = (3*2+3)/3 = 3
		bar(16.0, 13.0, 15.0), // tr 3, atr = 3
	}

	out, err := Annotate(bars, 3)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(out) != len(bars) {
		t.Fatalf("Expected %d bars, got %d", len(bars), len(out))
	}

	for i := 0; i < 2; i++ {
		if out[i].Atr.IsSet() {
			t.Errorf("Expected bar %d atr to be absent during warmup", i)
		}
		if !out[i].TrueRange.IsSet() {
			t.Errorf("Expected bar %d true range to be set", i)
		}
	}

	if !out[2].Atr.Eq(fixed.FromFloat64(3.0)) {
		t.Errorf("Expected seed atr 3 at bar 2, got %s", out[2].Atr.String())
	}
	if !out[3].Atr.Eq(fixed.FromFloat64(3.0)) {
		t.Errorf("Expected atr 3 at bar 3, got %s", out[3].Atr.String())
	}
	if !out[4].Atr.Eq(fixed.FromFloat64(3.0)) {
		t.Errorf("Expected atr 3 at bar 4, got %s", out[4].Atr.String())
	}
}

func TestAnnotate_WilderRecurrence(t *testing.T) {
	bars := []common.Bar{
		bar(10.0, 8.0, 9.0),  // tr 2
		bar(11.0, 9.0, 10.0), // tr 2
		bar(14.0, 9.0, 12.0), // tr 5, seed atr 3
		bar(21.0, 12.0, 15.0), // tr 9
	}

	out, err := Annotate(bars, 3)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// atr_3 = (3*(3-1) + 9) / 3 = 5
	if !out[3].Atr.Eq(fixed.FromFloat64(5.0)) {
		t.Errorf("Expected atr 5 at bar 3, got %s", out[3].Atr.String())
	}
}

func TestAnnotate_ShortSeries(t *testing.T) {
	bars := []common.Bar{
		bar(10.0, 8.0, 9.0),
		bar(11.0, 9.0, 10.0),
	}

	// Fewer bars than the period is not an error, atr just stays absent.
	out, err := Annotate(bars, 3)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	for i := range out {
		if out[i].Atr.IsSet() {
			t.Errorf("Expected bar %d atr to be absent", i)
		}
	}
}

func TestAnnotate_InvalidPeriod(t *testing.T) {
	if _, err := Annotate(nil, 0); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("Expected ErrInvalidPeriod, got %v", err)
	}
	if _, err := Annotate(nil, -3); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("Expected ErrInvalidPeriod, got %v", err)
	}
}

func TestAnnotate_DoesNotMutateInput(t *testing.T) {
	bars := []common.Bar{
		bar(10.0, 8.0, 9.0),
	}

	if _, err := Annotate(bars, 1); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if bars[0].TrueRange.IsSet() || bars[0].Atr.IsSet() {
		t.Error("Expected input bars to stay untouched")
	}
}

func TestAtr_Reset(t *testing.T) {
	atr := NewAtr(1)
	atr.OnBar(bar(10.0, 8.0, 9.0))

	if !atr.Ready() {
		t.Error("Expected ATR to be ready before reset")
	}

	atr.Reset()

	if atr.Ready() {
		t.Error("Expected ATR to not be ready after reset")
	}
	if atr.TrueRange().IsSet() {
		t.Error("Expected true range to be absent after reset")
	}
}
