package common

import (
	"fmt"
	"strings"

	"github.com/jsvoboda/riskledger/pkg/utility/fixed"
)

type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

func ParseSide(s string) (Side, error) {
	switch Side(strings.ToUpper(strings.TrimSpace(s))) {
	case SideBuy:
		return SideBuy, nil
	case SideSell:
		return SideSell, nil
	}
	return "", fmt.Errorf("unknown signal type %q", s)
}

func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// SignalRequest is a raw trade intent as it arrives from the signals source.
// Exactly one of Index/Date is expected to resolve to a bar. Note carries a
// pre-existing note from the source; a non-empty one suppresses SL/TP
// computation for the row and is preserved verbatim.
type SignalRequest struct {
	Index    int    `json:"index,omitempty"`
	HasIndex bool   `json:"-"`
	Date     string `json:"date,omitempty"`
	Type     Side   `json:"signal_type"`
	Note     string `json:"note,omitempty"`
}

// AttachedSignal is a SignalRequest resolved against the bar series. EntryPrice
// and AtrValue stay absent when resolution fails or the bar is inside the ATR
// warmup. Notes accumulates issue codes, oldest first.
type AttachedSignal struct {
	SignalRequest

	EntryPrice fixed.Point `json:"entry_price,omitempty"`
	AtrValue   fixed.Point `json:"atr_value,omitempty"`
	Notes      string      `json:"notes,omitempty"`
}

// AppendNote concatenates an issue code onto the accumulated notes without
// overwriting earlier ones.
func (s *AttachedSignal) AppendNote(code string) {
	s.Notes = JoinNotes(s.Notes, code)
}

func JoinNotes(existing, code string) string {
	if code == "" {
		return existing
	}
	if existing == "" {
		return code
	}
	return existing + NoteDelimiter + code
}
