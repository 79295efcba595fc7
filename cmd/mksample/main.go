package main

import (
	"encoding/csv"
	"flag"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"
)

// mksample writes a deterministic OHLCV csv for smoke runs and examples.
func main() {
	var (
		outPath = flag.String("out", "sample_bars.csv", "output csv")
		rows    = flag.Int("rows", 120, "number of bars")
		seed    = flag.Int64("seed", 42, "rng seed")
	)
	flag.Parse()

	f, err := os.Create(*outPath)
	if err != nil {
		log.Fatal(err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	w := csv.NewWriter(f)
	if err := w.Write([]string{"date", "open", "high", "low", "close", "volume"}); err != nil {
		log.Fatal(err)
	}

	rng := rand.New(rand.NewSource(*seed))
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	price := 100.0

	for i := 0; i < *rows; i++ {
		open := price
		drift := (rng.Float64() - 0.48) * 2.0
		closePrice := open + drift
		high := max(open, closePrice) + rng.Float64()
		low := min(open, closePrice) - rng.Float64()
		volume := 1000 + rng.Float64()*9000

		row := []string{
			day.Format("2006-01-02"),
			format(open), format(high), format(low), format(closePrice),
			strconv.FormatFloat(volume, 'f', 0, 64),
		}
		if err := w.Write(row); err != nil {
			log.Fatal(err)
		}

		price = closePrice
		day = day.AddDate(0, 0, 1)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d bars to %s", *rows, *outPath)
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
