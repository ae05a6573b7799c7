package decoder

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds the decoder's compile/construction-time tuning knobs
// (spec §4.1). These are not adjusted mid-decode.
type Config struct {
	// Beam is the base beam width in cost units.
	Beam float64
	// BeamSize is the target maximum live tokens per frame.
	BeamSize int
	// BeamDelta is the slack added when tightening the beam.
	BeamDelta float64
	// CutoffSamples is the target sample count for quantile estimation.
	CutoffSamples int
	// CutoffRandSeed seeds the deterministic sampling LCG.
	CutoffRandSeed uint64
}

// DefaultConfig returns the defaults from spec §4.1.
func DefaultConfig() Config {
	return Config{
		Beam:           16.0,
		BeamSize:       3000,
		BeamDelta:      0.5,
		CutoffSamples:  200,
		CutoffRandSeed: 7919,
	}
}

// configFile is the on-disk shape LoadConfig reads, kept separate from
// Config so a partial YAML file can omit fields without zeroing them.
type configFile struct {
	Beam           *float64 `mapstructure:"beam"`
	BeamSize       *int     `mapstructure:"beam_size"`
	BeamDelta      *float64 `mapstructure:"beam_delta"`
	CutoffSamples  *int     `mapstructure:"cutoff_samples"`
	CutoffRandSeed *uint64  `mapstructure:"cutoff_rand_seed"`
}

// LoadConfig reads a YAML tuning file via viper, overlaying it onto
// DefaultConfig. A missing file is not an error: DefaultConfig is
// returned unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("decoder: reading config %s: %w", path, err)
	}

	var file configFile
	if err := v.Unmarshal(&file); err != nil {
		return cfg, fmt.Errorf("decoder: parsing config %s: %w", path, err)
	}

	if file.Beam != nil {
		cfg.Beam = *file.Beam
	}
	if file.BeamSize != nil {
		cfg.BeamSize = *file.BeamSize
	}
	if file.BeamDelta != nil {
		cfg.BeamDelta = *file.BeamDelta
	}
	if file.CutoffSamples != nil {
		cfg.CutoffSamples = *file.CutoffSamples
	}
	if file.CutoffRandSeed != nil {
		cfg.CutoffRandSeed = *file.CutoffRandSeed
	}
	return cfg, nil
}
