package signal

import (
	"github.com/jsvoboda/riskledger/pkg/common"
	"github.com/jsvoboda/riskledger/pkg/indicators"
	"github.com/jsvoboda/riskledger/pkg/utility/fixed"
)

// GeneratorConfig drives the built-in EMA crossover generator used when no
// external signals source is given.
type GeneratorConfig struct {
	EmaShort          int
	EmaLong           int
	RsiPeriod         int
	RsiBuyThreshold   fixed.Point
	RsiSellThreshold  fixed.Point
	MinSignalDistance int
	MaxSignals        int // 0 means unlimited
}

func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		EmaShort:          12,
		EmaLong:           26,
		RsiPeriod:         14,
		RsiBuyThreshold:   fixed.FromInt(30, 0),
		RsiSellThreshold:  fixed.FromInt(70, 0),
		MinSignalDistance: 5,
	}
}

// Generate emits BUY requests where the short EMA crosses above the long EMA
// with RSI at or under the buy threshold, and SELL requests on the mirrored
// cross-down. Signals closer than MinSignalDistance bars apart are dropped.
func Generate(bars []common.Bar, cfg GeneratorConfig) []common.SignalRequest {
	emaShort := indicators.NewEma(cfg.EmaShort)
	emaLong := indicators.NewEma(cfg.EmaLong)
	rsi := indicators.NewRsi(cfg.RsiPeriod)

	var out []common.SignalRequest
	prevSign := 0
	lastIdx := -(1 << 30)

	for i, b := range bars {
		emaShort.OnValue(b.Close)
		emaLong.OnValue(b.Close)
		rsi.OnValue(b.Close)

		diff := emaShort.Value().Sub(emaLong.Value())
		sign := 0
		if diff.IsPos() {
			sign = 1
		} else if diff.IsNeg() {
			sign = -1
		}
		crossUp := prevSign < 0 && sign > 0
		crossDown := prevSign > 0 && sign < 0
		prevSign = sign

		if cfg.MaxSignals > 0 && len(out) >= cfg.MaxSignals {
			break
		}
		if i-lastIdx < cfg.MinSignalDistance {
			continue
		}

		switch {
		case crossUp && rsi.Value().Lte(cfg.RsiBuyThreshold):
			out = append(out, common.SignalRequest{Index: i, HasIndex: true, Date: b.Date, Type: common.SideBuy})
			lastIdx = i
		case crossDown && rsi.Value().Gte(cfg.RsiSellThreshold):
			out = append(out, common.SignalRequest{Index: i, HasIndex: true, Date: b.Date, Type: common.SideSell})
			lastIdx = i
		}
	}
	return out
}
