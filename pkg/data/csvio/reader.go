package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jsvoboda/riskledger/pkg/common"
	"github.com/jsvoboda/riskledger/pkg/utility"
	"github.com/jsvoboda/riskledger/pkg/utility/fixed"
)

var ErrMissingColumn = errors.New("missing required column")

const barReaderComponentName = "data.csvio.reader"

// Headers are matched case-insensitively; the date column additionally accepts
// the timestamp-style names produced by common downloaders. The alias table is
// resolved once at ingestion and never consulted by the numeric core.
var dateAliases = []string{"date", "timestamp", "time", "datetime", "date_time"}

type header map[string]int

func indexHeader(fields []string) header {
	h := make(header, len(fields))
	for i, f := range fields {
		name := strings.ToLower(strings.TrimSpace(f))
		if _, ok := h[name]; !ok {
			h[name] = i
		}
	}
	return h
}

func (h header) lookup(names ...string) (int, bool) {
	for _, n := range names {
		if i, ok := h[n]; ok {
			return i, true
		}
	}
	return 0, false
}

// LoadBars reads an OHLCV history. Required columns: date (or an alias),
// open, high, low, close, volume. Rows keep their file order; the loader does
// not sort.
func LoadBars(path string) ([]common.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open bars file %q: %w", path, err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	head, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("unable to read header of %q: %w", path, err)
	}
	cols := indexHeader(head)

	dateIdx, ok := cols.lookup(dateAliases...)
	if !ok {
		return nil, fmt.Errorf("%w: date (%s)", ErrMissingColumn, path)
	}
	priceIdx := make(map[string]int, 5)
	for _, name := range []string{"open", "high", "low", "close", "volume"} {
		i, ok := cols.lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s (%s)", ErrMissingColumn, name, path)
		}
		priceIdx[name] = i
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to read %q: %w", path, err)
	}

	bars := make([]common.Bar, 0, len(rows))
	for n, row := range rows {
		b := common.Bar{
			Source: barReaderComponentName,
			RunID:  utility.GetRunID(),
			Date:   strings.TrimSpace(row[dateIdx]),
		}
		if ts, err := time.Parse("2006-01-02", b.Date); err == nil {
			b.TimeStamp = ts
		}
		for name, idx := range priceIdx {
			p, err := fixed.FromString(strings.TrimSpace(row[idx]))
			if err != nil {
				return nil, fmt.Errorf("row %d of %q: bad %s value %q: %w", n+1, path, name, row[idx], err)
			}
			switch name {
			case "open":
				b.Open = p
			case "high":
				b.High = p
			case "low":
				b.Low = p
			case "close":
				b.Close = p
			case "volume":
				b.Volume = p
			}
		}
		bars = append(bars, b)
	}
	return bars, nil
}

// LoadSignals reads the raw signal requests. Either an index or a date column
// must be present, together with signal_type; a note column is optional and
// preserved verbatim.
func LoadSignals(path string) ([]common.SignalRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open signals file %q: %w", path, err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	head, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("unable to read header of %q: %w", path, err)
	}
	cols := indexHeader(head)

	typeIdx, ok := cols.lookup("signal_type", "type")
	if !ok {
		return nil, fmt.Errorf("%w: signal_type (%s)", ErrMissingColumn, path)
	}
	indexIdx, hasIndexCol := cols.lookup("index")
	dateIdx, hasDateCol := cols.lookup(dateAliases...)
	if !hasIndexCol && !hasDateCol {
		return nil, fmt.Errorf("%w: index or date (%s)", ErrMissingColumn, path)
	}
	noteIdx, hasNoteCol := cols.lookup("note", "notes")

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to read %q: %w", path, err)
	}

	requests := make([]common.SignalRequest, 0, len(rows))
	for n, row := range rows {
		side, err := common.ParseSide(row[typeIdx])
		if err != nil {
			return nil, fmt.Errorf("row %d of %q: %w", n+1, path, err)
		}
		req := common.SignalRequest{Type: side}

		if hasIndexCol {
			if raw := strings.TrimSpace(row[indexIdx]); raw != "" {
				idx, err := strconv.Atoi(raw)
				if err != nil {
					return nil, fmt.Errorf("row %d of %q: bad index %q: %w", n+1, path, raw, err)
				}
				req.Index, req.HasIndex = idx, true
			}
		}
		if hasDateCol {
			req.Date = strings.TrimSpace(row[dateIdx])
		}
		if hasNoteCol {
			req.Note = strings.TrimSpace(row[noteIdx])
		}
		requests = append(requests, req)
	}
	return requests, nil
}
