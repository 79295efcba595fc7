package risk

import (
	"github.com/jsvoboda/riskledger/pkg/common"
	"github.com/jsvoboda/riskledger/pkg/utility/fixed"
)

// Compute derives the stop-loss and take-profit prices from the entry price
// and the ATR at signal time. BUY places the stop below and the target above
// the entry, SELL mirrors it. Bad inputs never abort the batch: the prices
// come back absent together with an issue code.
func Compute(entry, atr, slMult, tpMult fixed.Point, side common.Side) (sl, tp fixed.Point, note string) {
	if !atr.IsSet() {
		return fixed.Absent, fixed.Absent, common.NoteInsufficientAtr
	}
	if !entry.IsSet() || !atr.IsPos() {
		return fixed.Absent, fixed.Absent, common.NoteInvalidEntryOrAtr
	}

	slDistance := atr.Mul(slMult)
	tpDistance := atr.Mul(tpMult)

	if side == common.SideSell {
		return entry.Add(slDistance), entry.Sub(tpDistance), ""
	}
	return entry.Sub(slDistance), entry.Add(tpDistance), ""
}
