package indicators

import (
	"github.com/jsvoboda/riskledger/pkg/utility/fixed"
)

var (
	neutralRsi = fixed.FromInt(50, 0)
	maxRsi     = fixed.FromInt(100, 0)
)

// Rsi is the Wilder relative strength index, smoothed exponentially with
// alpha = 1/period. Before the first price delta the value is neutral 50.
type Rsi struct {
	alpha fixed.Point

	lastClose fixed.Point
	avgGain   fixed.Point
	avgLoss   fixed.Point
}

func NewRsi(period int) *Rsi {
	return &Rsi{
		alpha: fixed.One.DivInt(period),
	}
}

func (r *Rsi) OnValue(v fixed.Point) {
	if !r.lastClose.IsSet() {
		r.lastClose = v
		return
	}

	delta := v.Sub(r.lastClose)
	r.lastClose = v

	gain, loss := fixed.Zero, fixed.Zero
	if delta.IsPos() {
		gain = delta
	} else {
		loss = delta.Neg()
	}

	if !r.avgGain.IsSet() {
		r.avgGain = gain
		r.avgLoss = loss
		return
	}
	r.avgGain = r.avgGain.Add(gain.Sub(r.avgGain).Mul(r.alpha))
	r.avgLoss = r.avgLoss.Add(loss.Sub(r.avgLoss).Mul(r.alpha))
}

func (r *Rsi) Value() fixed.Point {
	if !r.avgGain.IsSet() {
		return neutralRsi
	}
	if r.avgLoss.IsZero() {
		return maxRsi
	}
	rs := r.avgGain.Div(r.avgLoss)
	return maxRsi.Sub(maxRsi.Div(fixed.One.Add(rs)))
}

func (r *Rsi) Reset() {
	r.lastClose = fixed.Absent
	r.avgGain = fixed.Absent
	r.avgLoss = fixed.Absent
}
