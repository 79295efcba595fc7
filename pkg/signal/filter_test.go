package signal

import (
	"testing"

	"github.com/jsvoboda/riskledger/pkg/common"
	"github.com/jsvoboda/riskledger/pkg/utility/fixed"
)

func attached(index int, side common.Side) common.AttachedSignal {
	return common.AttachedSignal{
		SignalRequest: common.SignalRequest{Index: index, HasIndex: true, Type: side},
		EntryPrice:    fixed.FromFloat64(100.0),
		AtrValue:      fixed.FromFloat64(2.0),
	}
}

func TestFilter_SameTypeOverlapSkipped(t *testing.T) {
	filter := NewFilter(NewOppositeSignalClose())

	kept, skipped := filter.Run([]common.AttachedSignal{
		attached(1, common.SideBuy),
		attached(3, common.SideBuy),
		attached(5, common.SideSell),
	})

	if len(kept) != 2 {
		t.Fatalf("Expected 2 kept, got %d", len(kept))
	}
	if kept[0].Index != 1 || kept[0].Type != common.SideBuy {
		t.Errorf("Expected BUY@1 kept first, got %s@%d", kept[0].Type, kept[0].Index)
	}
	if kept[1].Index != 5 || kept[1].Type != common.SideSell {
		t.Errorf("Expected SELL@5 kept second, got %s@%d", kept[1].Type, kept[1].Index)
	}

	if len(skipped) != 1 {
		t.Fatalf("Expected 1 skipped, got %d", len(skipped))
	}
	if skipped[0].Index != 3 {
		t.Errorf("Expected BUY@3 skipped, got index %d", skipped[0].Index)
	}
	if skipped[0].Notes != common.NoteOverlappingOpen {
		t.Errorf("Expected note %q, got %q", common.NoteOverlappingOpen, skipped[0].Notes)
	}
}

func TestFilter_OppositeSignalClosesAndOpens(t *testing.T) {
	filter := NewFilter(NewOppositeSignalClose())

	kept, skipped := filter.Run([]common.AttachedSignal{
		attached(1, common.SideBuy),
		attached(2, common.SideSell), // closes the BUY, opens a SELL
		attached(3, common.SideSell), // overlaps the open SELL
		attached(4, common.SideBuy),  // closes the SELL, opens a BUY
	})

	if len(kept) != 3 {
		t.Fatalf("Expected 3 kept, got %d", len(kept))
	}
	if len(skipped) != 1 || skipped[0].Index != 3 {
		t.Fatalf("Expected SELL@3 skipped, got %+v", skipped)
	}
}

func TestFilter_FirstSignalAlwaysKept(t *testing.T) {
	filter := NewFilter(NewOppositeSignalClose())

	kept, skipped := filter.Run([]common.AttachedSignal{
		attached(7, common.SideSell),
	})

	if len(kept) != 1 || len(skipped) != 0 {
		t.Fatalf("Expected the only signal kept, got kept=%d skipped=%d", len(kept), len(skipped))
	}
}

func TestFilter_SortsByIndex(t *testing.T) {
	filter := NewFilter(NewOppositeSignalClose())

	kept, skipped := filter.Run([]common.AttachedSignal{
		attached(5, common.SideBuy),
		attached(1, common.SideBuy),
	})

	if len(kept) != 1 || kept[0].Index != 1 {
		t.Fatalf("Expected BUY@1 kept after ordering, got %+v", kept)
	}
	if len(skipped) != 1 || skipped[0].Index != 5 {
		t.Fatalf("Expected BUY@5 skipped, got %+v", skipped)
	}
}

func TestFilter_UnresolvedPassThrough(t *testing.T) {
	filter := NewFilter(NewOppositeSignalClose())

	unresolved := common.AttachedSignal{
		SignalRequest: common.SignalRequest{Date: "2031-06-15", Type: common.SideBuy},
		Notes:         common.NoteDateNotInData,
	}

	kept, skipped := filter.Run([]common.AttachedSignal{
		attached(1, common.SideBuy),
		unresolved,
		attached(2, common.SideBuy),
	})

	// The unresolved signal neither blocks nor is blocked.
	if len(kept) != 2 {
		t.Fatalf("Expected 2 kept, got %d", len(kept))
	}
	if len(skipped) != 1 || skipped[0].Index != 2 {
		t.Fatalf("Expected BUY@2 skipped, got %+v", skipped)
	}
	found := false
	for _, s := range kept {
		if !s.HasIndex && s.Notes == common.NoteDateNotInData {
			found = true
		}
	}
	if !found {
		t.Error("Expected unresolved signal to pass through with its note")
	}
}

func priceTouchBars() []common.Bar {
	mk := func(high, low float64) common.Bar {
		return common.Bar{
			High: fixed.FromFloat64(high),
			Low:  fixed.FromFloat64(low),
		}
	}
	// Entry 100, atr 2, sl x1.5, tp x3 for a BUY puts sl at 97 and tp at 106.
	return []common.Bar{
		mk(101.0, 99.0), // 0: signal bar
		mk(102.0, 99.0), // 1: no touch
		mk(103.0, 98.0), // 2: no touch
		mk(107.0, 99.0), // 3: tp touched, position closes here
		mk(104.0, 98.0), // 4
		mk(105.0, 99.0), // 5
	}
}

func TestFilter_PriceTouchClose(t *testing.T) {
	bars := priceTouchBars()
	filter := NewFilter(NewPriceTouchClose(bars, fixed.FromFloat64(1.5), fixed.FromFloat64(3.0)))

	sig := func(index int, side common.Side) common.AttachedSignal {
		s := attached(index, side)
		s.EntryPrice = fixed.FromFloat64(100.0)
		return s
	}

	kept, skipped := filter.Run([]common.AttachedSignal{
		sig(0, common.SideBuy),
		sig(2, common.SideBuy), // before the close at bar 3
		sig(4, common.SideBuy), // after the close
	})

	if len(kept) != 2 {
		t.Fatalf("Expected 2 kept, got %d", len(kept))
	}
	if kept[0].Index != 0 || kept[1].Index != 4 {
		t.Errorf("Expected signals at 0 and 4 kept, got %d and %d", kept[0].Index, kept[1].Index)
	}
	if len(skipped) != 1 || skipped[0].Index != 2 {
		t.Fatalf("Expected signal at 2 skipped, got %+v", skipped)
	}
}

func TestFilter_PriceTouchBlocksWithoutClose(t *testing.T) {
	bars := priceTouchBars()[:3] // no bar ever touches sl or tp
	filter := NewFilter(NewPriceTouchClose(bars, fixed.FromFloat64(1.5), fixed.FromFloat64(3.0)))

	kept, skipped := filter.Run([]common.AttachedSignal{
		attached(0, common.SideBuy),
		attached(2, common.SideSell),
	})

	if len(kept) != 1 {
		t.Fatalf("Expected only the opener kept, got %d", len(kept))
	}
	if kept[0].Notes != common.NoteNoCloseInHistory {
		t.Errorf("Expected note %q on the opener, got %q", common.NoteNoCloseInHistory, kept[0].Notes)
	}
	if len(skipped) != 1 || skipped[0].Index != 2 {
		t.Fatalf("Expected the later signal blocked, got %+v", skipped)
	}
}

func TestFilter_PriceTouchBlocksOnMissingAtr(t *testing.T) {
	bars := priceTouchBars()
	filter := NewFilter(NewPriceTouchClose(bars, fixed.FromFloat64(1.5), fixed.FromFloat64(3.0)))

	opener := attached(0, common.SideBuy)
	opener.AtrValue = fixed.Absent

	kept, skipped := filter.Run([]common.AttachedSignal{
		opener,
		attached(4, common.SideSell),
	})

	if len(kept) != 1 {
		t.Fatalf("Expected only the opener kept, got %d", len(kept))
	}
	if len(skipped) != 1 {
		t.Fatalf("Expected the later signal blocked, got %d skipped", len(skipped))
	}
}
