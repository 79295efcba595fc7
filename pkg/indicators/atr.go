package indicators

import (
	"errors"
	"fmt"

	"github.com/jsvoboda/riskledger/pkg/common"
	"github.com/jsvoboda/riskledger/pkg/utility/fixed"
)

var ErrInvalidPeriod = errors.New("atr period must be at least 1")

// Atr tracks the Wilder-smoothed average true range over a bar stream. The
// seed value at bar period-1 is the arithmetic mean of the first period true
// ranges; afterwards atr = (prev*(period-1) + tr) / period. Strictly
// sequential, each value depends on the previous one.
type Atr struct {
	period int

	warmupTr  []fixed.Point
	lastClose fixed.Point
	lastAtr   fixed.Point
	currentTr fixed.Point
}

func NewAtr(period int) *Atr {
	return &Atr{
		period:   period,
		warmupTr: make([]fixed.Point, 0, period),
	}
}

func (a *Atr) OnBar(b common.Bar) {
	// First bar has no previous close, true range degrades to high-low.
	tr := b.High.Sub(b.Low)
	if a.lastClose.IsSet() {
		if hc := b.High.Sub(a.lastClose).Abs(); hc.Gt(tr) {
			tr = hc
		}
		if lc := b.Low.Sub(a.lastClose).Abs(); lc.Gt(tr) {
			tr = lc
		}
	}
	a.currentTr = tr
	a.lastClose = b.Close

	if a.lastAtr.IsSet() {
		a.lastAtr = a.lastAtr.MulInt(a.period - 1).Add(tr).DivInt(a.period)
		return
	}

	a.warmupTr = append(a.warmupTr, tr)
	if len(a.warmupTr) == a.period {
		sum := fixed.Zero
		for _, v := range a.warmupTr {
			sum = sum.Add(v)
		}
		a.lastAtr = sum.DivInt(a.period)
	}
}

func (a *Atr) TrueRange() fixed.Point {
	return a.currentTr
}

// Value returns the current ATR, or an absent point while inside the warmup.
func (a *Atr) Value() fixed.Point {
	return a.lastAtr
}

func (a *Atr) Ready() bool {
	return a.lastAtr.IsSet()
}

func (a *Atr) Reset() {
	a.warmupTr = a.warmupTr[:0]
	a.lastClose = fixed.Absent
	a.lastAtr = fixed.Absent
	a.currentTr = fixed.Absent
}

// Annotate runs the ATR computation over an ordered bar series and returns a
// new series with TrueRange and Atr filled in. Atr stays absent for the first
// period-1 bars; a series shorter than period gets no ATR at all, which is not
// an error.
func Annotate(bars []common.Bar, period int) ([]common.Bar, error) {
	if period < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidPeriod, period)
	}

	out := make([]common.Bar, len(bars))
	atr := NewAtr(period)
	for i, b := range bars {
		atr.OnBar(b)
		b.TrueRange = atr.TrueRange()
		b.Atr = atr.Value()
		out[i] = b
	}
	return out, nil
}
