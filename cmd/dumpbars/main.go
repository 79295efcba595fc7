package main

import (
	"encoding/binary"
	"flag"
	"log"
	"os"

	"github.com/jsvoboda/riskledger/pkg/data/barcache"
	"github.com/jsvoboda/riskledger/pkg/data/csvio"
)

// dumpbars converts an OHLCV csv into the fixed-record binary cache read by
// annotate, so large histories skip csv parsing on every run.
func main() {
	var (
		inPath  = flag.String("in", "", "input bars csv")
		outPath = flag.String("out", "", "output .bin cache")
	)
	flag.Parse()

	if *inPath == "" || *outPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	bars, err := csvio.LoadBars(*inPath)
	if err != nil {
		log.Fatal(err)
	}

	binFile, err := os.Create(*outPath)
	if err != nil {
		log.Fatal(err)
	}
	defer func(binFile *os.File) {
		_ = binFile.Close()
	}(binFile)

	for _, bar := range bars {
		d, err := barcache.FromModelBar(bar)
		if err != nil {
			log.Fatal(err)
		}
		if err := binary.Write(binFile, binary.LittleEndian, d); err != nil {
			log.Fatal(err)
		}
	}

	log.Printf("wrote %d bars to %s", len(bars), *outPath)
}
