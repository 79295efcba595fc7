package indicators

import (
	"github.com/jsvoboda/riskledger/pkg/utility/fixed"
)

// Ema is an exponential moving average seeded with the first observed value,
// alpha = 2/(span+1).
type Ema struct {
	alpha fixed.Point
	value fixed.Point
}

func NewEma(span int) *Ema {
	return &Ema{
		alpha: fixed.FromInt(2, 0).DivInt(span + 1),
	}
}

func (e *Ema) OnValue(v fixed.Point) {
	if !e.value.IsSet() {
		e.value = v
		return
	}
	e.value = e.value.Add(v.Sub(e.value).Mul(e.alpha))
}

func (e *Ema) Value() fixed.Point {
	return e.value
}

func (e *Ema) Ready() bool {
	return e.value.IsSet()
}

func (e *Ema) Reset() {
	e.value = fixed.Absent
}
