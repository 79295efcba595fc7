package signal

import (
	"errors"
	"fmt"

	"github.com/jsvoboda/riskledger/pkg/common"
	"github.com/jsvoboda/riskledger/pkg/utility/fixed"
)

var ErrIndexOutOfRange = errors.New("signal index out of range")

// Entry price sources accepted by the attacher. NextOpen reads the open of the
// bar after the signal bar.
const (
	SourceClose    = "close"
	SourceOpen     = "open"
	SourceHigh     = "high"
	SourceLow      = "low"
	SourceNextOpen = "next_open"
)

// Attach resolves each request to a bar of the annotated series and picks up
// its entry price and ATR value. An explicit out-of-range index is a data
// error and fails the whole batch; an unresolvable date only tags the row.
// Pure transformation, the inputs are not mutated.
func Attach(bars []common.Bar, requests []common.SignalRequest, entrySource string) ([]common.AttachedSignal, error) {
	byDate := make(map[string]int, len(bars))
	for i, b := range bars {
		if _, ok := byDate[b.Date]; !ok {
			// first match wins
			byDate[b.Date] = i
		}
	}

	out := make([]common.AttachedSignal, 0, len(requests))
	for i, req := range requests {
		s := common.AttachedSignal{SignalRequest: req, Notes: req.Note}

		if req.HasIndex {
			if req.Index < 0 || req.Index >= len(bars) {
				return nil, fmt.Errorf("signal %d: %w: index %d with %d bars", i, ErrIndexOutOfRange, req.Index, len(bars))
			}
		} else if idx, ok := byDate[req.Date]; ok {
			s.Index, s.HasIndex = idx, true
		} else {
			s.AppendNote(common.NoteDateNotInData)
			out = append(out, s)
			continue
		}

		bar := bars[s.Index]
		if s.Date == "" {
			s.Date = bar.Date
		}

		entry, note := entryPrice(bars, s.Index, entrySource)
		s.EntryPrice = entry
		if note != "" {
			s.AppendNote(note)
		}

		// May still be absent inside the ATR warmup; the SL/TP stage notes that.
		s.AtrValue = bar.Atr

		out = append(out, s)
	}
	return out, nil
}

func entryPrice(bars []common.Bar, idx int, source string) (fixed.Point, string) {
	switch source {
	case "", SourceClose:
		return bars[idx].Close, ""
	case SourceOpen:
		return bars[idx].Open, ""
	case SourceHigh:
		return bars[idx].High, ""
	case SourceLow:
		return bars[idx].Low, ""
	case SourceNextOpen:
		if idx+1 >= len(bars) {
			return fixed.Absent, common.NoteCannotUseNextOpen
		}
		return bars[idx+1].Open, ""
	}
	return fixed.Absent, "unknown_entry_price_source"
}
