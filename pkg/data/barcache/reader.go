package barcache

import (
	"errors"
	"fmt"

	"github.com/jsvoboda/riskledger/pkg/common"
	"github.com/jsvoboda/riskledger/pkg/utility"
)

const barReaderComponentName = "data.barcache.reader"

// BarReader walks a bar cache sequentially from the first record.
type BarReader struct {
	source *Source[BinaryBar]
	symbol string
	idx    int64
}

func NewBarReader(source *Source[BinaryBar], symbol string) *BarReader {
	return &BarReader{
		source: source,
		symbol: symbol,
	}
}

func (r *BarReader) GetNext() (common.Bar, error) {
	var bar common.Bar
	var binBar BinaryBar

	if err := r.source.Read(r.idx, &binBar); err != nil {
		if errors.Is(err, ErrEof) {
			return bar, ErrEof
		}
		return bar, fmt.Errorf("error reading entry at index %d: %w", r.idx, err)
	}
	r.idx++

	binBar.ToModelBar(&bar)

	bar.Source = barReaderComponentName
	bar.Symbol = r.symbol
	bar.RunID = utility.GetRunID()

	return bar, nil
}

// ReadAll loads a whole cache file into memory in record order.
func ReadAll(path, symbol string) ([]common.Bar, error) {
	source := NewSource[BinaryBar](path)
	if err := source.Open(); err != nil {
		return nil, err
	}
	defer source.Close()

	count, err := source.EntryCount()
	if err != nil {
		return nil, err
	}

	bars := make([]common.Bar, 0, count)
	reader := NewBarReader(source, symbol)
	for {
		bar, err := reader.GetNext()
		if errors.Is(err, ErrEof) {
			break
		}
		if err != nil {
			return nil, err
		}
		bars = append(bars, bar)
	}
	return bars, nil
}
