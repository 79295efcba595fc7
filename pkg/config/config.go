package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jsvoboda/riskledger/pkg/signal"
	"github.com/jsvoboda/riskledger/pkg/utility/fixed"
)

var ErrInvalid = errors.New("invalid configuration")

const (
	ClosePolicyOppositeSignal = "opposite_signal"
	ClosePolicyPriceTouch     = "price_touch"
)

// Config is the resolved run configuration. TickSize is optional; any value
// that is not strictly positive disables tick rounding for the run instead of
// failing it.
type Config struct {
	AtrPeriod        int     `yaml:"atr_period"`
	SlMultiplier     float64 `yaml:"sl_multiplier"`
	TpMultiplier     float64 `yaml:"tp_multiplier"`
	TickSize         float64 `yaml:"tick_size"`
	EntryPriceSource string  `yaml:"entry_price_source"`
	ClosePolicy      string  `yaml:"close_policy"`

	SignalEngine SignalEngine `yaml:"signal_engine"`
}

// SignalEngine configures the built-in generator used when no signals file is
// given.
type SignalEngine struct {
	EmaShort          int     `yaml:"ema_short"`
	EmaLong           int     `yaml:"ema_long"`
	RsiPeriod         int     `yaml:"rsi_period"`
	RsiBuyThresh      float64 `yaml:"rsi_buy_thresh"`
	RsiSellThresh     float64 `yaml:"rsi_sell_thresh"`
	MinSignalDistance int     `yaml:"min_signal_distance"`
	MaxSignals        int     `yaml:"max_signals"`
}

func Default() Config {
	return Config{
		AtrPeriod:        14,
		SlMultiplier:     1.5,
		TpMultiplier:     3.0,
		EntryPriceSource: signal.SourceClose,
		ClosePolicy:      ClosePolicyOppositeSignal,
		SignalEngine: SignalEngine{
			EmaShort:          12,
			EmaLong:           26,
			RsiPeriod:         14,
			RsiBuyThresh:      30.0,
			RsiSellThresh:     70.0,
			MinSignalDistance: 5,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("unable to parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.AtrPeriod < 1 {
		return fmt.Errorf("%w: atr_period must be at least 1, got %d", ErrInvalid, c.AtrPeriod)
	}
	if !(c.SlMultiplier > 0) {
		return fmt.Errorf("%w: sl_multiplier must be positive, got %v", ErrInvalid, c.SlMultiplier)
	}
	if !(c.TpMultiplier > 0) {
		return fmt.Errorf("%w: tp_multiplier must be positive, got %v", ErrInvalid, c.TpMultiplier)
	}
	switch c.EntryPriceSource {
	case signal.SourceClose, signal.SourceOpen, signal.SourceHigh, signal.SourceLow, signal.SourceNextOpen:
	default:
		return fmt.Errorf("%w: unknown entry_price_source %q", ErrInvalid, c.EntryPriceSource)
	}
	switch c.ClosePolicy {
	case ClosePolicyOppositeSignal, ClosePolicyPriceTouch:
	default:
		return fmt.Errorf("%w: unknown close_policy %q", ErrInvalid, c.ClosePolicy)
	}
	return nil
}

// TickSizePoint returns the tick size as a fixed point, or an absent point
// when no usable tick size is configured.
func (c Config) TickSizePoint() fixed.Point {
	if math.IsNaN(c.TickSize) || math.IsInf(c.TickSize, 0) || c.TickSize <= 0 {
		return fixed.Absent
	}
	return fixed.FromFloat64(c.TickSize)
}

func (c Config) SlMultiplierPoint() fixed.Point {
	return fixed.FromFloat64(c.SlMultiplier)
}

func (c Config) TpMultiplierPoint() fixed.Point {
	return fixed.FromFloat64(c.TpMultiplier)
}

// GeneratorConfig maps the signal_engine section onto the generator settings.
func (c Config) GeneratorConfig() signal.GeneratorConfig {
	return signal.GeneratorConfig{
		EmaShort:          c.SignalEngine.EmaShort,
		EmaLong:           c.SignalEngine.EmaLong,
		RsiPeriod:         c.SignalEngine.RsiPeriod,
		RsiBuyThreshold:   fixed.FromFloat64(c.SignalEngine.RsiBuyThresh),
		RsiSellThreshold:  fixed.FromFloat64(c.SignalEngine.RsiSellThresh),
		MinSignalDistance: c.SignalEngine.MinSignalDistance,
		MaxSignals:        c.SignalEngine.MaxSignals,
	}
}
