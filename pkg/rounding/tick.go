package rounding

import (
	"fmt"

	"github.com/jsvoboda/riskledger/pkg/common"
	"github.com/jsvoboda/riskledger/pkg/utility/fixed"
)

// Behavior selects what happens when the tick size is unusable.
type Behavior string

const (
	// NoRound copies the raw prices into the rounded fields and emits one
	// warning per affected row.
	NoRound Behavior = "no_round"

	// Strict fails the batch on an unusable tick size.
	Strict Behavior = "strict"
)

// ValidTick reports whether tick can be used for rounding: present and
// strictly positive. Anything else disables rounding instead of failing.
func ValidTick(tick fixed.Point) bool {
	return tick.IsSet() && tick.IsPos()
}

// RoundToTick snaps value to the nearest integer multiple of tick, halfway
// ties going away from zero. Rounding an already aligned value is an identity.
func RoundToTick(value, tick fixed.Point) fixed.Point {
	return value.Div(tick).RoundHalfAway().Mul(tick)
}

// Apply fills the rounded price fields of every record. Stateless per record;
// the input slice is left untouched. Warnings are collected across the whole
// run so the caller can surface them once at the end.
func Apply(records []common.Record, tick fixed.Point, behavior Behavior) ([]common.Record, []string, error) {
	if !ValidTick(tick) && behavior == Strict {
		return nil, nil, fmt.Errorf("invalid tick size %q", tick.String())
	}

	out := make([]common.Record, len(records))
	var warnings []string

	valid := ValidTick(tick)
	for i, r := range records {
		if valid {
			if r.SlPrice.IsSet() {
				r.SlPriceRounded = RoundToTick(r.SlPrice, tick)
			}
			if r.TpPrice.IsSet() {
				r.TpPriceRounded = RoundToTick(r.TpPrice, tick)
			}
		} else {
			r.SlPriceRounded = r.SlPrice
			r.TpPriceRounded = r.TpPrice
			if r.SlPrice.IsSet() || r.TpPrice.IsSet() {
				warnings = append(warnings, fmt.Sprintf("invalid tick_size: rounding skipped for row %d", i))
			}
		}
		out[i] = r
	}
	return out, warnings, nil
}
