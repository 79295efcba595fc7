package barcache

import (
	"fmt"
	"time"

	"github.com/jsvoboda/riskledger/pkg/common"
	"github.com/jsvoboda/riskledger/pkg/utility/fixed"
)

const dateLayout = "2006-01-02"

// BinaryBar is the fixed size on-disk layout of one bar: unix seconds of the
// bar date at UTC midnight followed by OHLCV as float64. 48 bytes per record,
// little endian.
type BinaryBar struct {
	TimeStamp int64
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

func (b BinaryBar) ToModelBar(out *common.Bar) {
	ts := time.Unix(b.TimeStamp, 0).UTC()
	out.Date = ts.Format(dateLayout)
	out.TimeStamp = ts
	out.Open = fixed.FromFloat64(b.Open)
	out.High = fixed.FromFloat64(b.High)
	out.Low = fixed.FromFloat64(b.Low)
	out.Close = fixed.FromFloat64(b.Close)
	out.Volume = fixed.FromFloat64(b.Volume)
}

func FromModelBar(b common.Bar) (BinaryBar, error) {
	ts, err := time.Parse(dateLayout, b.Date)
	if err != nil {
		return BinaryBar{}, fmt.Errorf("bar date %q is not %s: %w", b.Date, dateLayout, err)
	}

	open, _ := b.Open.Float64()
	high, _ := b.High.Float64()
	low, _ := b.Low.Float64()
	closePrice, _ := b.Close.Float64()
	volume, _ := b.Volume.Float64()

	return BinaryBar{
		TimeStamp: ts.Unix(),
		Open:      open,
		High:      high,
		Low:       low,
		Close:     closePrice,
		Volume:    volume,
	}, nil
}
