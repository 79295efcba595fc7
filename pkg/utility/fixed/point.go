package fixed

import (
	"github.com/govalues/decimal"
)

// Point is an unsafe wrapper around decimal implementation. Caller must make sure the calculations
// are correct and will not result in an error state, otherwise it will panic.
//
// The zero value of Point is "absent". Every constructor and every arithmetic result is
// set; absent values serialize as an empty string and must be gated with IsSet before
// being fed into calculations.
type Point struct {
	v   decimal.Decimal
	set bool
}

var (
	Absent = Point{}
	Zero   = FromInt(0, 0)
	One    = FromInt(1, 0)
	Half   = FromInt(5, 1)
)

func FromInt(value int, scale int) Point {
	return Point{must(decimal.New(int64(value), scale)), true}
}

func FromInt64(value int64, scale int) Point {
	return Point{must(decimal.New(value, scale)), true}
}

func FromFloat64(value float64) Point {
	return Point{must(decimal.NewFromFloat64(value)), true}
}

func FromString(value string) (Point, error) {
	d, err := decimal.Parse(value)
	if err != nil {
		return Point{}, err
	}
	return Point{d, true}, nil
}

func (p Point) IsSet() bool { return p.set }

func (p Point) String() string {
	if !p.set {
		return ""
	}
	return p.v.String()
}

// Text renders the point with a fixed number of decimal places, or an empty
// string when the point is absent.
func (p Point) Text(scale int) string {
	if !p.set {
		return ""
	}
	return p.v.Rescale(scale).String()
}

func (p Point) Float64() (float64, bool) { return p.v.Float64() }

func (p Point) Abs() Point { return Point{p.v.Abs(), true} }
func (p Point) Neg() Point { return Point{p.v.Neg(), true} }

func (p Point) Add(o Point) Point { return Point{must(p.v.Add(o.v)), true} }
func (p Point) Sub(o Point) Point { return Point{must(p.v.Sub(o.v)), true} }
func (p Point) Mul(o Point) Point { return Point{must(p.v.Mul(o.v)), true} }
func (p Point) Div(o Point) Point { return Point{must(p.v.Quo(o.v)), true} }

func (p Point) MulInt64(o int64) Point { return Point{must(p.v.Mul(decimal.MustNew(o, 0))), true} }
func (p Point) MulInt(o int) Point     { return Point{must(p.v.Mul(decimal.MustNew(int64(o), 0))), true} }
func (p Point) DivInt64(o int64) Point { return Point{must(p.v.Quo(decimal.MustNew(o, 0))), true} }
func (p Point) DivInt(o int) Point     { return Point{must(p.v.Quo(decimal.MustNew(int64(o), 0))), true} }

func (p Point) Eq(o Point) bool  { return p.v.Cmp(o.v) == 0 }
func (p Point) Gt(o Point) bool  { return p.v.Cmp(o.v) > 0 }
func (p Point) Lt(o Point) bool  { return p.v.Cmp(o.v) < 0 }
func (p Point) Gte(o Point) bool { return p.v.Cmp(o.v) >= 0 }
func (p Point) Lte(o Point) bool { return p.v.Cmp(o.v) <= 0 }

func (p Point) IsZero() bool { return p.v.IsZero() }
func (p Point) IsPos() bool  { return p.v.IsPos() }
func (p Point) IsNeg() bool  { return p.v.IsNeg() }

func (p Point) Rescale(scale int) Point { return Point{p.v.Rescale(scale), true} }

func (p Point) Floor(scale int) Point { return Point{p.v.Floor(scale), true} }
func (p Point) Ceil(scale int) Point  { return Point{p.v.Ceil(scale), true} }

// RoundHalfAway rounds to an integer with halfway ties going away from zero.
func (p Point) RoundHalfAway() Point {
	if p.v.IsNeg() {
		return p.Abs().RoundHalfAway().Neg()
	}
	return Point{must(p.v.Add(Half.v)).Floor(0), true}
}

func (p Point) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func must(v decimal.Decimal, err error) decimal.Decimal {
	if err == nil {
		// Return in the happy path
		return v
	}
	panic(err)
}
