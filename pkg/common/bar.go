package common

import (
	"time"

	"github.com/jsvoboda/riskledger/pkg/utility"
	"github.com/jsvoboda/riskledger/pkg/utility/fixed"
)

// Bar is one row of the OHLCV history. Bars are ordered by date ascending and
// the order is load-bearing: the ATR annotation is a running computation over it.
// TrueRange and Atr stay absent until the annotation pass fills them in; Atr
// remains absent for the first period-1 bars.
type Bar struct {
	Source    string        `json:"src,omitempty"`
	Symbol    string        `json:"symbol,omitempty"`
	RunID     utility.RunID `json:"rid,omitempty"`
	Date      string        `json:"date"`
	TimeStamp time.Time     `json:"ts,omitempty"`
	Open      fixed.Point   `json:"open"`
	High      fixed.Point   `json:"high"`
	Low       fixed.Point   `json:"low"`
	Close     fixed.Point   `json:"close"`
	Volume    fixed.Point   `json:"volume"`
	TrueRange fixed.Point   `json:"tr,omitempty"`
	Atr       fixed.Point   `json:"atr,omitempty"`
}
