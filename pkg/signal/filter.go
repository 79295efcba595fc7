package signal

import (
	"sort"

	"github.com/jsvoboda/riskledger/pkg/common"
	"github.com/jsvoboda/riskledger/pkg/risk"
	"github.com/jsvoboda/riskledger/pkg/utility/fixed"
)

// ClosePolicy decides when the currently open position stops blocking later
// signals. The filter owns the sequencing; the policy only answers whether a
// given signal still overlaps the open position.
type ClosePolicy interface {
	// Open is called when a signal is accepted and opens a position. The
	// returned note, if any, is attached to the opening signal.
	Open(s common.AttachedSignal) (note string)

	// Blocks reports whether the open position is still open at s. Returning
	// false means the position closed before s, which is then free to open a
	// new one.
	Blocks(s common.AttachedSignal) bool
}

// Filter enforces the single-open-position rule over a signal sequence ordered
// by resolved bar index. Inherently sequential, the open-position token is
// carried signal to signal.
type Filter struct {
	policy ClosePolicy
}

func NewFilter(policy ClosePolicy) *Filter {
	return &Filter{policy: policy}
}

// Run partitions signals into kept and skipped. Skipped rows get the
// overlapping_open_signal note instead of being dropped. Unresolvable signals
// cannot participate in overlap detection and pass through as tagged by the
// attacher.
func (f *Filter) Run(signals []common.AttachedSignal) (kept, skipped []common.AttachedSignal) {
	ordered := make([]common.AttachedSignal, len(signals))
	copy(ordered, signals)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].HasIndex != ordered[j].HasIndex {
			return ordered[i].HasIndex
		}
		return ordered[i].Index < ordered[j].Index
	})

	open := false
	for _, s := range ordered {
		if !s.HasIndex {
			kept = append(kept, s)
			continue
		}
		if open && f.policy.Blocks(s) {
			s.AppendNote(common.NoteOverlappingOpen)
			skipped = append(skipped, s)
			continue
		}
		if note := f.policy.Open(s); note != "" {
			s.AppendNote(note)
		}
		open = true
		kept = append(kept, s)
	}
	return kept, skipped
}

// OppositeSignalClose is the default policy: a position closes on the first
// signal of the opposite type, which itself passes through and opens the next
// position. Same-type signals are blocked while the position is open.
type OppositeSignalClose struct {
	side common.Side
}

func NewOppositeSignalClose() *OppositeSignalClose {
	return &OppositeSignalClose{}
}

func (p *OppositeSignalClose) Open(s common.AttachedSignal) string {
	p.side = s.Type
	return ""
}

func (p *OppositeSignalClose) Blocks(s common.AttachedSignal) bool {
	return s.Type == p.side
}

// PriceTouchClose closes the open position at the first later bar whose range
// touches the position's raw stop-loss or take-profit. When the levels cannot
// be derived, or no bar in the remaining history touches them, every later
// signal is blocked.
type PriceTouchClose struct {
	bars   []common.Bar
	slMult fixed.Point
	tpMult fixed.Point

	closeIdx int
	blockAll bool
}

func NewPriceTouchClose(bars []common.Bar, slMult, tpMult fixed.Point) *PriceTouchClose {
	return &PriceTouchClose{bars: bars, slMult: slMult, tpMult: tpMult}
}

func (p *PriceTouchClose) Open(s common.AttachedSignal) string {
	p.blockAll = false
	p.closeIdx = -1

	sl, tp, note := risk.Compute(s.EntryPrice, s.AtrValue, p.slMult, p.tpMult, s.Type)
	if note != "" {
		p.blockAll = true
		return ""
	}

	for j := s.Index + 1; j < len(p.bars); j++ {
		if touched(p.bars[j], s.Type, sl, tp) {
			p.closeIdx = j
			break
		}
	}
	if p.closeIdx < 0 {
		p.blockAll = true
		return common.NoteNoCloseInHistory
	}
	return ""
}

func (p *PriceTouchClose) Blocks(s common.AttachedSignal) bool {
	if p.blockAll {
		return true
	}
	return s.Index <= p.closeIdx
}

func touched(b common.Bar, side common.Side, sl, tp fixed.Point) bool {
	if side == common.SideBuy {
		return b.High.Gte(tp) || b.Low.Lte(sl)
	}
	return b.Low.Lte(tp) || b.High.Gte(sl)
}
