package common

import (
	"github.com/jsvoboda/riskledger/pkg/utility"
	"github.com/jsvoboda/riskledger/pkg/utility/fixed"
)

// Record is one row of the annotated signal ledger. The raw prices are kept
// next to their tick-rounded counterparts, and the configuration that produced
// the row is echoed so a ledger file is self-describing.
type Record struct {
	AttachedSignal

	SlPrice        fixed.Point `json:"sl_price,omitempty"`
	TpPrice        fixed.Point `json:"tp_price,omitempty"`
	SlPriceRounded fixed.Point `json:"sl_price_rounded,omitempty"`
	TpPriceRounded fixed.Point `json:"tp_price_rounded,omitempty"`

	AtrPeriod        int         `json:"atr_period"`
	SlMultiplier     fixed.Point `json:"sl_multiplier"`
	TpMultiplier     fixed.Point `json:"tp_multiplier"`
	EntryPriceSource string      `json:"entry_price_source"`

	RunID utility.RunID `json:"rid,omitempty"`
}
