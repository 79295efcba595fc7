package pipeline

import (
	"sort"

	"go.uber.org/zap"

	"github.com/jsvoboda/riskledger/pkg/common"
	"github.com/jsvoboda/riskledger/pkg/config"
	"github.com/jsvoboda/riskledger/pkg/indicators"
	"github.com/jsvoboda/riskledger/pkg/risk"
	"github.com/jsvoboda/riskledger/pkg/rounding"
	"github.com/jsvoboda/riskledger/pkg/signal"
	"github.com/jsvoboda/riskledger/pkg/utility"
)

// Result is the annotated ledger of one run plus the rounding warnings
// collected across it. Warnings are surfaced once at the end, never
// interleaved per row.
type Result struct {
	Records  []common.Record
	Warnings []string
}

// Run drives the linear batch pipeline: ATR annotation, signal attachment,
// single-open filtering, SL/TP derivation and tick rounding. Per-row data
// issues degrade to notes; only environment and configuration problems return
// an error.
func Run(logger *zap.Logger, bars []common.Bar, requests []common.SignalRequest, cfg config.Config) (Result, error) {
	annotated, err := indicators.Annotate(bars, cfg.AtrPeriod)
	if err != nil {
		return Result{}, err
	}

	attached, err := signal.Attach(annotated, requests, cfg.EntryPriceSource)
	if err != nil {
		return Result{}, err
	}

	filter := signal.NewFilter(closePolicy(cfg, annotated))
	kept, skipped := filter.Run(attached)
	logger.Info("position filter done",
		zap.Int("kept", len(kept)),
		zap.Int("skipped", len(skipped)))

	records := make([]common.Record, 0, len(kept)+len(skipped))
	for _, s := range kept {
		r := newRecord(s, cfg)
		// A pre-existing note from the signals source suppresses SL/TP for
		// the row; the note is already carried in Notes verbatim.
		if s.SignalRequest.Note == "" {
			var note string
			r.SlPrice, r.TpPrice, note = risk.Compute(
				s.EntryPrice, s.AtrValue,
				cfg.SlMultiplierPoint(), cfg.TpMultiplierPoint(), s.Type)
			r.Notes = common.JoinNotes(r.Notes, note)
		}
		records = append(records, r)
	}
	for _, s := range skipped {
		records = append(records, newRecord(s, cfg))
	}
	sortRecords(records)

	rounded, warnings, err := rounding.Apply(records, cfg.TickSizePoint(), rounding.NoRound)
	if err != nil {
		return Result{}, err
	}

	return Result{Records: rounded, Warnings: warnings}, nil
}

func newRecord(s common.AttachedSignal, cfg config.Config) common.Record {
	return common.Record{
		AttachedSignal:   s,
		AtrPeriod:        cfg.AtrPeriod,
		SlMultiplier:     cfg.SlMultiplierPoint(),
		TpMultiplier:     cfg.TpMultiplierPoint(),
		EntryPriceSource: cfg.EntryPriceSource,
		RunID:            utility.GetRunID(),
	}
}

// sortRecords restores bar order after kept and skipped rows are merged;
// unresolved rows go last.
func sortRecords(records []common.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].HasIndex != records[j].HasIndex {
			return records[i].HasIndex
		}
		return records[i].Index < records[j].Index
	})
}

func closePolicy(cfg config.Config, bars []common.Bar) signal.ClosePolicy {
	if cfg.ClosePolicy == config.ClosePolicyPriceTouch {
		return signal.NewPriceTouchClose(bars, cfg.SlMultiplierPoint(), cfg.TpMultiplierPoint())
	}
	return signal.NewOppositeSignalClose()
}
