package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jsvoboda/riskledger/internal/dbg"
	"github.com/jsvoboda/riskledger/pkg/common"
	"github.com/jsvoboda/riskledger/pkg/config"
	"github.com/jsvoboda/riskledger/pkg/data/barcache"
	"github.com/jsvoboda/riskledger/pkg/data/csvio"
	"github.com/jsvoboda/riskledger/pkg/data/duckdb"
	"github.com/jsvoboda/riskledger/pkg/pipeline"
	"github.com/jsvoboda/riskledger/pkg/signal"
	"github.com/jsvoboda/riskledger/pkg/utility"
)

// Exit codes follow the batch convention: 2 for missing inputs or bad usage,
// 3 for processing failures. Per-row data issues never exit non-zero.
const (
	exitUsage      = 2
	exitProcessing = 3
)

func main() {
	var (
		barsPath    = flag.String("bars", "", "bar history: .csv, .bin cache, or .duckdb database")
		table       = flag.String("table", "", "bar table name, required for duckdb sources")
		signalsPath = flag.String("signals", "", "signal requests csv; omit to generate signals from price")
		configPath  = flag.String("config", "", "run configuration yaml (default config.yaml, or RISKLEDGER_CONFIG)")
		outPath     = flag.String("out", "", "annotated ledger output csv")
		debug       = flag.Bool("debug", false, "verbose console logging")
	)
	flag.Parse()

	logger := dbg.New(*debug)
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	// Optional .env for local runs; absence is fine.
	_ = godotenv.Load()

	if *configPath == "" {
		*configPath = os.Getenv("RISKLEDGER_CONFIG")
	}
	if *configPath == "" {
		*configPath = "config.yaml"
	}

	if *barsPath == "" || *outPath == "" {
		flag.Usage()
		os.Exit(exitUsage)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("unable to load configuration", zap.Error(err))
		os.Exit(exitUsage)
	}

	logger.Info("run started",
		zap.Stringer("run_id", utility.GetRunID()),
		zap.String("bars", *barsPath),
		zap.Int("atr_period", cfg.AtrPeriod))

	bars, err := loadBars(*barsPath, *table)
	if err != nil {
		logger.Error("unable to load bars", zap.Error(err))
		os.Exit(exitUsage)
	}

	var requests []common.SignalRequest
	if *signalsPath != "" {
		requests, err = csvio.LoadSignals(*signalsPath)
		if err != nil {
			logger.Error("unable to load signals", zap.Error(err))
			os.Exit(exitUsage)
		}
	} else {
		requests = signal.Generate(bars, cfg.GeneratorConfig())
		logger.Info("signals generated from price", zap.Int("count", len(requests)))
	}

	result, err := pipeline.Run(logger, bars, requests, cfg)
	if err != nil {
		logger.Error("pipeline failed", zap.Error(err))
		os.Exit(exitProcessing)
	}

	if err := csvio.WriteRecords(*outPath, result.Records); err != nil {
		logger.Error("unable to write ledger", zap.Error(err))
		os.Exit(exitProcessing)
	}

	// Rounding warnings are surfaced once at the end of the run.
	for _, w := range result.Warnings {
		logger.Warn(w)
	}
	logger.Info("run done",
		zap.Int("bars", len(bars)),
		zap.Int("signals", len(requests)),
		zap.Int("records", len(result.Records)),
		zap.String("out", *outPath))
}

func loadBars(path, table string) ([]common.Bar, error) {
	switch filepath.Ext(path) {
	case ".bin":
		return barcache.ReadAll(path, table)
	case ".duckdb", ".db":
		if table == "" {
			return nil, errors.New("duckdb sources need -table")
		}
		reader := duckdb.NewReader(path)
		if err := reader.Connect(); err != nil {
			return nil, err
		}
		defer reader.Close()

		var bars []common.Bar
		err := reader.LoadBars(context.Background(), table, func(bar common.Bar) error {
			bars = append(bars, bar)
			return nil
		})
		return bars, err
	default:
		return csvio.LoadBars(path)
	}
}
