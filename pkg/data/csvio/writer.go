package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/jsvoboda/riskledger/pkg/common"
)

// OutputColumns is the fixed column order of the annotated ledger.
var OutputColumns = []string{
	"date", "signal_type", "entry_price", "atr_value",
	"sl_price", "tp_price", "sl_price_rounded", "tp_price_rounded",
	"atr_period", "sl_multiplier", "tp_multiplier", "entry_price_source",
	"notes",
}

const priceScale = 2

// WriteRecords persists the ledger. Numeric fields carry exactly two decimal
// places, absent numerics serialize as an empty string.
func WriteRecords(path string, records []common.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create output file %q: %w", path, err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	w := csv.NewWriter(f)
	if err := w.Write(OutputColumns); err != nil {
		return fmt.Errorf("unable to write header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.Date,
			string(r.Type),
			r.EntryPrice.Text(priceScale),
			r.AtrValue.Text(priceScale),
			r.SlPrice.Text(priceScale),
			r.TpPrice.Text(priceScale),
			r.SlPriceRounded.Text(priceScale),
			r.TpPriceRounded.Text(priceScale),
			strconv.Itoa(r.AtrPeriod),
			r.SlMultiplier.Text(priceScale),
			r.TpMultiplier.Text(priceScale),
			r.EntryPriceSource,
			r.Notes,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("unable to write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}
